package mw

import (
	"log"
	"net/http"
	"time"
)

// Logging — middleware: старт/финиш запроса, статус, размер, длительность
func Logging(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := RequestIDFromCtx(r.Context())
			start := time.Now()

			mw := &metaWriter{ResponseWriter: w}

			next.ServeHTTP(mw, r)

			dur := time.Since(start)
			l.Printf("lvl=info req_id=%s method=%s path=%q status=%d size=%d duration_ms=%d",
				reqID, r.Method, r.URL.Path, mw.status, mw.size, dur.Milliseconds())
		})
	}
}

// metaWriter запоминает статус и объём ответа для лога
type metaWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *metaWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *metaWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
