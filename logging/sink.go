package logging

import (
	"io"
	"os"
	"sync"
)

// stderrSink is the shared terminal destination of every logger. Tests and
// embedding hosts swap it with SetOutput.
type stderrSink struct {
	mu  sync.RWMutex
	out io.Writer
}

func (s *stderrSink) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.out.Write(p)
}

func (s *stderrSink) swap(w io.Writer) {
	s.mu.Lock()
	s.out = w
	s.mu.Unlock()
}

var sink = &stderrSink{out: os.Stderr}

// SetOutput redirects the terminal sink of all loggers, including those
// already created. Never point it at stdout inside an extension process:
// the stream transport answers there.
func SetOutput(w io.Writer) {
	sink.swap(w)
}

// Output returns the shared terminal sink.
func Output() io.Writer {
	return sink
}
