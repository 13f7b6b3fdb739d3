package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

var errDelivery = errors.New("delivery failed")

// SentMessage records one delivery attempt made through a FakeMailer.
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// FakeMailer is an in-memory Mailer that records every send. Set Err to make
// all sends fail, or FailTo to fail only sends addressed to one recipient.
type FakeMailer struct {
	mu   sync.Mutex
	sent []SentMessage

	Err    error
	FailTo string
}

// Name returns the provider's display name.
func (f *FakeMailer) Name() string { return "Fake" }

// Send records the message, or returns Err when configured to fail.
func (f *FakeMailer) Send(_ context.Context, to, subject, body string) error {
	if f.Err != nil {
		return f.Err
	}
	if f.FailTo != "" && to == f.FailTo {
		return errDelivery
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, SentMessage{To: to, Subject: subject, Body: body})
	return nil
}

// Sent returns a copy of the recorded messages.
func (f *FakeMailer) Sent() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

// WaitForSent polls until at least n messages have been recorded. Needed
// because budget notifications are fired asynchronously.
func (f *FakeMailer) WaitForSent(t *testing.T, n int) []SentMessage {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if msgs := f.Sent(); len(msgs) >= n {
			return msgs
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d sent messages, got %d", n, len(f.Sent()))
	return nil
}
