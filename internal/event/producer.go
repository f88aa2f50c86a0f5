package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sandrosmarzaro/todo-list-api/internal/domain"
	pkgkafka "github.com/sandrosmarzaro/todo-list-api/pkg/kafka"
)

// Kafka topics for domain events.
var (
	TopicUserRegistered = pkgkafka.Topic(AggregateTypeUser, "registered")
	TopicUserUpdated    = pkgkafka.Topic(AggregateTypeUser, "updated")
	TopicUserDeleted    = pkgkafka.Topic(AggregateTypeUser, "deleted")
	TopicTodoCreated    = pkgkafka.Topic(AggregateTypeTodo, "created")
	TopicTodoCompleted  = pkgkafka.Topic(AggregateTypeTodo, "completed")
)

// Aggregate type constants.
const (
	AggregateTypeUser = "user"
	AggregateTypeTodo = "todo"
)

// Source identifier for events originating from this service.
const SourceTodoAPI = "todo-api"

// UserData is the payload for user lifecycle events.
type UserData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TodoData is the payload for todo lifecycle events.
type TodoData struct {
	ID     string           `json:"id"`
	UserID string           `json:"user_id"`
	Title  string           `json:"title"`
	State  domain.TodoState `json:"state"`
}

// Publisher is the subset of the Kafka producer the event layer needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	return p.publishUser(ctx, TopicUserRegistered, user)
}

// PublishUserUpdated publishes a user.updated event.
func (p *Producer) PublishUserUpdated(ctx context.Context, user *domain.User) error {
	return p.publishUser(ctx, TopicUserUpdated, user)
}

// PublishUserDeleted publishes a user.deleted event.
func (p *Producer) PublishUserDeleted(ctx context.Context, user *domain.User) error {
	return p.publishUser(ctx, TopicUserDeleted, user)
}

func (p *Producer) publishUser(ctx context.Context, topic string, user *domain.User) error {
	data := UserData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	event, err := pkgkafka.NewEvent(topic, user.ID, AggregateTypeUser, SourceTodoAPI, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published user event",
		slog.String("topic", topic),
		slog.String("user_id", user.ID),
	)

	return nil
}

// PublishTodoCreated publishes a todo.created event.
func (p *Producer) PublishTodoCreated(ctx context.Context, todo *domain.Todo) error {
	return p.publishTodo(ctx, TopicTodoCreated, todo)
}

// PublishTodoCompleted publishes a todo.completed event when a todo reaches
// the done state.
func (p *Producer) PublishTodoCompleted(ctx context.Context, todo *domain.Todo) error {
	return p.publishTodo(ctx, TopicTodoCompleted, todo)
}

func (p *Producer) publishTodo(ctx context.Context, topic string, todo *domain.Todo) error {
	data := TodoData{
		ID:     todo.ID,
		UserID: todo.UserID,
		Title:  todo.Title,
		State:  todo.State,
	}

	event, err := pkgkafka.NewEvent(topic, todo.ID, AggregateTypeTodo, SourceTodoAPI, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published todo event",
		slog.String("topic", topic),
		slog.String("todo_id", todo.ID),
	)

	return nil
}
