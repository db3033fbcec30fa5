package a

import (
	"net/http"
	"strings"
	"time"
)

func send() {
	http.Get("http://example.com")                                  // want "http.Get использует клиент без таймаута"
	http.Post("http://example.com", "text/plain", strings.NewReader("")) // want "http.Post использует клиент без таймаута"
	http.DefaultClient.Do(nil)                                      // want "http.DefaultClient использует клиент без таймаута"

	client := &http.Client{Timeout: time.Second}
	client.Get("http://example.com")
}
