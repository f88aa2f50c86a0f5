package event

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrosmarzaro/todo-list-api/internal/domain"
	pkgkafka "github.com/sandrosmarzaro/todo-list-api/pkg/kafka"
)

type capturingPublisher struct {
	topics []string
	events []*pkgkafka.Event
}

func (c *capturingPublisher) Publish(_ context.Context, topic string, event *pkgkafka.Event) error {
	c.topics = append(c.topics, topic)
	c.events = append(c.events, event)
	return nil
}

func newTestProducer() (*Producer, *capturingPublisher) {
	pub := &capturingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProducer(pub, logger), pub
}

func TestTopics_BuiltFromHelper(t *testing.T) {
	assert.Equal(t, pkgkafka.Topic("user", "registered"), TopicUserRegistered)
	assert.Equal(t, "todoapi.user.registered", TopicUserRegistered)
	assert.Equal(t, "todoapi.user.updated", TopicUserUpdated)
	assert.Equal(t, "todoapi.user.deleted", TopicUserDeleted)
	assert.Equal(t, "todoapi.todo.created", TopicTodoCreated)
	assert.Equal(t, "todoapi.todo.completed", TopicTodoCompleted)
}

func TestPublishUserRegistered(t *testing.T) {
	producer, pub := newTestProducer()

	user := &domain.User{ID: "u-1", Username: "alice", Email: "alice@example.com"}
	err := producer.PublishUserRegistered(context.Background(), user)

	require.NoError(t, err)
	require.Len(t, pub.topics, 1)
	assert.Equal(t, TopicUserRegistered, pub.topics[0])
	assert.Equal(t, "u-1", pub.events[0].AggregateID)
	assert.Equal(t, AggregateTypeUser, pub.events[0].AggregateType)
	assert.Equal(t, SourceTodoAPI, pub.events[0].Source)
}

func TestPublishTodoCompleted(t *testing.T) {
	producer, pub := newTestProducer()

	todo := &domain.Todo{ID: "t-1", UserID: "u-1", Title: "ship it", State: domain.TodoStateDone}
	err := producer.PublishTodoCompleted(context.Background(), todo)

	require.NoError(t, err)
	require.Len(t, pub.topics, 1)
	assert.Equal(t, TopicTodoCompleted, pub.topics[0])
	assert.Equal(t, "t-1", pub.events[0].AggregateID)
	assert.Equal(t, AggregateTypeTodo, pub.events[0].AggregateType)
}
