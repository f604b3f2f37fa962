package middleware

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
)

// bufferedWriter is an http.ResponseWriter that keeps headers, status and
// body in memory until flushTo copies them to the real response.
type bufferedWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: make(http.Header)}
}

func (w *bufferedWriter) Header() http.Header {
	return w.header
}

// WriteHeader keeps the first status, like net/http does.
func (w *bufferedWriter) WriteHeader(statusCode int) {
	if w.status == 0 {
		w.status = statusCode
	}
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

// Flush is a no-op; output leaves only through flushTo.
func (w *bufferedWriter) Flush() {}

// Status is the captured status, 200 when nothing was written.
func (w *bufferedWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Bytes returns the captured body.
func (w *bufferedWriter) Bytes() []byte {
	return w.body.Bytes()
}

// flushTo performs the single real write of the captured response.
func (w *bufferedWriter) flushTo(dst *echo.Response) error {
	for key, values := range w.header {
		dst.Header()[key] = values
	}
	dst.WriteHeader(w.Status())
	if w.body.Len() == 0 {
		return nil
	}
	_, err := dst.Write(w.body.Bytes())
	return err
}
