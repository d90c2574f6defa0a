package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all of its writers, e.g. a log file
// and stdout. A failing writer does not stop the others.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: append([]io.Writer(nil), writers...)}
}

// Write reports len(p) only when every writer took the whole buffer, otherwise
// the shortest write together with all the errors.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	n := len(p)
	var errs error
	for _, w := range cw.Writers {
		written, err := w.Write(p)
		if err == nil && written < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			n = min(n, written)
		}
	}
	return n, errs
}
