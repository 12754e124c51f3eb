package mailer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingSender struct{ calls int }

func (f *failingSender) Send(subject, body, from string, to []string) error {
	f.calls++
	return errors.New("smtp: connection refused")
}

func TestBestEffortSwallowsFailures(t *testing.T) {
	f := &failingSender{}
	assert.NotPanics(t, func() {
		BestEffort(f, "subject", "body", "loja@localhost", []string{"maria@example.com"})
	})
	assert.Equal(t, 1, f.calls)
}

func TestBestEffortSkipsEmptyRecipients(t *testing.T) {
	f := &failingSender{}
	BestEffort(f, "subject", "body", "loja@localhost", nil)
	BestEffort(f, "subject", "body", "loja@localhost", []string{""})
	assert.Equal(t, 0, f.calls)
}

func TestSMTPSenderDropsMailWhenUnconfigured(t *testing.T) {
	s := NewSMTP("", "", "", "")
	assert.NoError(t, s.Send("subject", "body", "loja@localhost", []string{"maria@example.com"}))
}
