package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sandrosmarzaro/todo-list-api/internal/domain"
	"github.com/sandrosmarzaro/todo-list-api/internal/service"
	"github.com/sandrosmarzaro/todo-list-api/pkg/pagination"
	"github.com/sandrosmarzaro/todo-list-api/pkg/validator"
)

// TodoService is the todo surface the handlers depend on.
type TodoService interface {
	Create(ctx context.Context, principal *domain.User, input service.CreateTodoInput) (*domain.Todo, error)
	List(ctx context.Context, principal *domain.User, filter domain.TodoFilter) (*pagination.Result[domain.Todo], error)
	Update(ctx context.Context, principal *domain.User, id string, input service.UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, principal *domain.User, id string) error
}

// TodoHandler handles HTTP requests for todo endpoints. All routes require
// an authenticated principal.
type TodoHandler struct {
	todos  TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a new todo HTTP handler.
func NewTodoHandler(todos TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todos: todos, logger: logger}
}

// --- Request DTOs ---

// CreateTodoRequest is the JSON request body for creating a todo.
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"max=510"`
	State       string `json:"state,omitempty"`
}

// UpdateTodoRequest is the JSON request body for a partial todo update.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=510"`
	State       *string `json:"state,omitempty"`
}

// --- Handlers ---

// Create handles POST /api/v1/todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "could not validate credentials")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	todo, err := h.todos.Create(r.Context(), principal, service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		State:       domain.TodoState(req.State),
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: todo})
}

// List handles GET /api/v1/todos with title, description, state, limit, and
// offset query filters.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "could not validate credentials")
		return
	}

	params := pagination.FromRequest(r)
	filter := domain.TodoFilter{
		Title:       r.URL.Query().Get("title"),
		Description: r.URL.Query().Get("description"),
		State:       domain.TodoState(r.URL.Query().Get("state")),
		Limit:       params.Limit,
		Offset:      params.Offset,
	}

	result, err := h.todos.List(r.Context(), principal, filter)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Update handles PATCH /api/v1/todos/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "could not validate credentials")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	input := service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.State != nil {
		state := domain.TodoState(*req.State)
		input.State = &state
	}

	todo, err := h.todos.Update(r.Context(), principal, chi.URLParam(r, "id"), input)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: todo})
}

// Delete handles DELETE /api/v1/todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "could not validate credentials")
		return
	}

	if err := h.todos.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		writeAppError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
