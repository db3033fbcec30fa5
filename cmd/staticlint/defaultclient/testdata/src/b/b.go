package b

type fake struct{}

func (fake) Get(url string) {}

var http fake

func send() {
	http.Get("http://example.com")
}
