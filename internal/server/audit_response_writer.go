package server

import (
	"bytes"
	"net/http"
)

// maxAuditBody caps how much of a response is copied into the audit entry.
const maxAuditBody = 4 << 10

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	buffer      bytes.Buffer
}

func newResponseWriterWrapper(w http.ResponseWriter) *responseWriterWrapper {
	return &responseWriterWrapper{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if room := maxAuditBody - w.buffer.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		w.buffer.Write(b[:room])
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriterWrapper) GetStatusCode() int {
	return w.statusCode
}

func (w *responseWriterWrapper) GetBody() []byte {
	return w.buffer.Bytes()
}
