package domain

import (
	"time"
)

// TodoState is the workflow state of a todo item.
type TodoState string

const (
	TodoStateDraft TodoState = "draft"
	TodoStateTodo  TodoState = "todo"
	TodoStateDoing TodoState = "doing"
	TodoStateDone  TodoState = "done"
	TodoStateTrash TodoState = "trash"
)

// Valid reports whether s is one of the known todo states.
func (s TodoState) Valid() bool {
	switch s {
	case TodoStateDraft, TodoStateTodo, TodoStateDoing, TodoStateDone, TodoStateTrash:
		return true
	}
	return false
}

// Todo represents a single task owned by a user.
type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       TodoState `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoFilter holds the optional listing filters for a user's todos.
// Zero values mean the filter is not applied.
type TodoFilter struct {
	Title       string
	Description string
	State       TodoState
	Limit       int
	Offset      int
}
