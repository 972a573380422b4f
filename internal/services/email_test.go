package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubscheduler/internal/domain"
)

type fakeMailer struct {
	to, subject string
	err         error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	f.to, f.subject = to, subject
	return f.err
}

type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	f.name = name
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject:" + name, "<p>html</p>", "text", nil
}

func TestEmailService(t *testing.T) {
	ctx := context.Background()

	t.Run("welcome", func(t *testing.T) {
		m, r := &fakeMailer{}, &fakeRenderer{}
		s := NewEmailService(m, r)
		require.NoError(t, s.SendWelcomeMessage(ctx, &domain.WelcomeMessageEmailData{Email: "a@example.com"}))
		assert.Equal(t, "welcome", r.name)
		assert.Equal(t, "a@example.com", m.to)
		assert.Equal(t, "subject:welcome", m.subject)
	})

	t.Run("registration confirmation", func(t *testing.T) {
		m, r := &fakeMailer{}, &fakeRenderer{}
		s := NewEmailService(m, r)
		require.NoError(t, s.SendRegistrationConfirmation(ctx, &domain.RegistrationEmailData{Email: "b@example.com", EventName: "Open"}))
		assert.Equal(t, "registration_confirmation", r.name)
		assert.Equal(t, "b@example.com", m.to)
	})

	t.Run("nil data", func(t *testing.T) {
		s := NewEmailService(&fakeMailer{}, &fakeRenderer{})
		assert.Error(t, s.SendWelcomeMessage(ctx, nil))
		assert.Error(t, s.SendRegistrationConfirmation(ctx, nil))
	})

	t.Run("render failure", func(t *testing.T) {
		boom := errors.New("boom")
		m := &fakeMailer{}
		s := NewEmailService(m, &fakeRenderer{err: boom})
		err := s.SendWelcomeMessage(ctx, &domain.WelcomeMessageEmailData{Email: "a@example.com"})
		require.ErrorIs(t, err, boom)
		assert.Empty(t, m.to)
	})

	t.Run("send failure", func(t *testing.T) {
		boom := errors.New("boom")
		s := NewEmailService(&fakeMailer{err: boom}, &fakeRenderer{})
		err := s.SendWelcomeMessage(ctx, &domain.WelcomeMessageEmailData{Email: "a@example.com"})
		require.ErrorIs(t, err, boom)
	})
}
