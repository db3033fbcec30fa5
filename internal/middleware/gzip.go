package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// compressibleTypes - типы содержимого, ответы с которыми сжимаются
var compressibleTypes = []string{
	"application/json",
	"text/plain",
}

var gzipWriterPool = sync.Pool{
	New: func() any { return gzip.NewWriter(io.Discard) },
}

// CompressWriter сжимает тело ответа, если его Content-Type подходит для сжатия.
// Решение принимается при первой записи заголовков.
type CompressWriter struct {
	http.ResponseWriter
	gw          *gzip.Writer
	wroteHeader bool
}

func (cw *CompressWriter) WriteHeader(statusCode int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true

	h := cw.Header()
	if statusCode != http.StatusNoContent && statusCode != http.StatusNotModified &&
		h.Get("Content-Encoding") == "" && isCompressible(h.Get("Content-Type")) {
		h.Set("Content-Encoding", "gzip")
		h.Del("Content-Length")
		cw.gw = gzipWriterPool.Get().(*gzip.Writer)
		cw.gw.Reset(cw.ResponseWriter)
	}
	cw.ResponseWriter.WriteHeader(statusCode)
}

func (cw *CompressWriter) Write(data []byte) (int, error) {
	if !cw.wroteHeader {
		if cw.Header().Get("Content-Type") == "" {
			cw.Header().Set("Content-Type", http.DetectContentType(data))
		}
		cw.WriteHeader(http.StatusOK)
	}
	if cw.gw != nil {
		return cw.gw.Write(data)
	}
	return cw.ResponseWriter.Write(data)
}

// Close дописывает gzip-поток и возвращает writer в пул
func (cw *CompressWriter) Close() error {
	if cw.gw == nil {
		return nil
	}
	err := cw.gw.Close()
	gzipWriterPool.Put(cw.gw)
	cw.gw = nil
	return err
}

// GzipMiddleware распаковывает gzip-тело запроса и сжимает ответы
// для клиентов, передающих Accept-Encoding: gzip.
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			gr, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "Invalid gzip body", http.StatusBadRequest)
				return
			}
			defer gr.Close()
			r.Body = gr
			r.Header.Del("Content-Encoding")
			r.ContentLength = -1
		}

		if r.Method == http.MethodHead || !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Add("Vary", "Accept-Encoding")
		cw := &CompressWriter{ResponseWriter: w}
		defer cw.Close()

		next.ServeHTTP(cw, r)
	})
}

func isCompressible(contentType string) bool {
	for _, t := range compressibleTypes {
		if strings.HasPrefix(contentType, t) {
			return true
		}
	}
	return false
}
