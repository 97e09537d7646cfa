// Package hostsink renders debug-channel text on a host, one line per
// call, the way the kernel console shows it.
package hostsink

import (
	"io"

	"github.com/munix-os/munix/internal/debuglog"
)

type Option func(*Sink)

// WithPrefix puts p in front of every line.
func WithPrefix(p string) Option {
	return func(s *Sink) { s.prefix = p }
}

// Sink writes each logged text to w. Like the kernel channel it has no
// error path for the caller: the first write error is kept for Err.
// Not safe for concurrent use.
type Sink struct {
	w      io.Writer
	prefix string
	buf    []byte
	count  int
	err    error
}

func New(w io.Writer, opts ...Option) *Sink {
	s := &Sink{w: w}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sink) Log(text debuglog.Text) {
	s.count++

	s.buf = append(s.buf[:0], s.prefix...)
	s.buf = append(s.buf, debuglog.String(text)...)
	s.buf = append(s.buf, '\n')

	if _, err := s.w.Write(s.buf); err != nil && s.err == nil {
		s.err = err
	}
}

// Count reports how many times Log was called.
func (s *Sink) Count() int { return s.count }

// Err returns the first write error, if any.
func (s *Sink) Err() error { return s.err }
