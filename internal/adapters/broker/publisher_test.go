package broker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubscheduler/internal/domain"
)

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
	closed        bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	p := &Publisher{ch: ch, exchange: "club.scheduling", now: func() time.Time { return now }}

	msg := domain.RegistrationMessage{Kind: domain.EventKindTraining, EventID: "training-1", UserID: "user-1"}
	require.NoError(t, p.Publish(context.Background(), domain.TopicRegistrationCreated, msg))

	assert.Equal(t, "club.scheduling", ch.exchange)
	assert.Equal(t, domain.TopicRegistrationCreated, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, now, ch.msg.Timestamp)

	var got domain.RegistrationMessage
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, msg, got)
}

func TestPublisher_PublishErrors(t *testing.T) {
	boom := errors.New("channel closed")
	p := &Publisher{ch: &fakeChannel{err: boom}, exchange: "x", now: time.Now}

	err := p.Publish(context.Background(), domain.TopicEventCreated, domain.EventMessage{})
	require.ErrorIs(t, err, boom)

	err = p.Publish(context.Background(), domain.TopicEventCreated, make(chan int))
	require.Error(t, err)
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch}
	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(t, p.Publish(context.Background(), domain.TopicEventDeleted, nil))
}
