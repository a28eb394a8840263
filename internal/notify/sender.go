package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// WriterSender delivers notifications by printing them to a writer. It is
// the delivery path for terminal sessions.
type WriterSender struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterSender creates a sender printing to out.
func NewWriterSender(out io.Writer) *WriterSender {
	return &WriterSender{out: out}
}

func (s *WriterSender) Send(ctx context.Context, id, title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if body == "" {
		_, err := fmt.Fprintf(s.out, "\a%s\n", title)
		return err
	}
	_, err := fmt.Fprintf(s.out, "\a%s: %s\n", title, body)
	return err
}
