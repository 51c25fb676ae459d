package secure

import "net/http"

// Writer defers a header mutation until the wrapped handler commits its
// response, so the mutation sees whatever headers the handler set.
type Writer struct {
	http.ResponseWriter
	apply   func(http.Header)
	applied bool
}

// Decorate wraps w. apply runs exactly once: on the first WriteHeader,
// Write or Flush, or from Finish if the handler wrote nothing.
func Decorate(w http.ResponseWriter, apply func(http.Header)) *Writer {
	return &Writer{ResponseWriter: w, apply: apply}
}

func (w *Writer) commit() {
	if w.applied {
		return
	}
	w.applied = true
	w.apply(w.ResponseWriter.Header())
}

func (w *Writer) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *Writer) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *Writer) Flush() {
	w.commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Finish applies the mutation if the handler returned without writing.
func (w *Writer) Finish() { w.commit() }

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *Writer) Unwrap() http.ResponseWriter { return w.ResponseWriter }
