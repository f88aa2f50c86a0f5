package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrosmarzaro/todo-list-api/internal/domain"
	apperrors "github.com/sandrosmarzaro/todo-list-api/pkg/errors"
)

func newTodoTestFixture(t *testing.T) (*TodoRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewTodoRepository(mock)
	return repo, mock
}

func sampleTodo() *domain.Todo {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Todo{
		ID:          "9b0e0b52-1111-4f3a-8a1b-000000000002",
		UserID:      "4f6c2a6e-9d2e-4f3a-8a1b-000000000001",
		Title:       "buy groceries",
		Description: "milk, eggs, bread",
		State:       domain.TodoStateTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func todoColumns() []string {
	return []string{"id", "user_id", "title", "description", "state", "created_at", "updated_at"}
}

func todoRow(td *domain.Todo) *pgxmock.Rows {
	return pgxmock.NewRows(todoColumns()).AddRow(
		td.ID, td.UserID, td.Title, td.Description, td.State, td.CreatedAt, td.UpdatedAt,
	)
}

func TestTodoRepository_Create_Success(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	td := sampleTodo()

	mock.ExpectExec("INSERT INTO todos").
		WithArgs(td.ID, td.UserID, td.Title, td.Description, td.State, td.CreatedAt, td.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), td)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_GetForUser_Success(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	td := sampleTodo()

	mock.ExpectQuery("SELECT .+ FROM todos").
		WithArgs(td.ID, td.UserID).
		WillReturnRows(todoRow(td))

	got, err := repo.GetForUser(context.Background(), td.ID, td.UserID)
	require.NoError(t, err)
	assert.Equal(t, td, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_GetForUser_WrongOwner(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	td := sampleTodo()

	// The ownership predicate means another user's lookup matches no rows.
	mock.ExpectQuery("SELECT .+ FROM todos").
		WithArgs(td.ID, "someone-else").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetForUser(context.Background(), td.ID, "someone-else")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_List_NoFilters(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	td := sampleTodo()

	mock.ExpectQuery("SELECT .+ FROM todos WHERE user_id = \\$1 ORDER BY created_at DESC").
		WithArgs(td.UserID, 10, 0).
		WillReturnRows(todoRow(td))

	got, err := repo.List(context.Background(), td.UserID, domain.TodoFilter{Limit: 10, Offset: 0})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *td, got[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_List_AllFilters(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	td := sampleTodo()
	filter := domain.TodoFilter{
		Title:       "grocer",
		Description: "milk",
		State:       domain.TodoStateTodo,
		Limit:       5,
		Offset:      10,
	}

	mock.ExpectQuery("SELECT .+ FROM todos WHERE user_id = \\$1 AND title ILIKE \\$2 AND description ILIKE \\$3 AND state = \\$4").
		WithArgs(td.UserID, "%grocer%", "%milk%", domain.TodoStateTodo, 5, 10).
		WillReturnRows(todoRow(td))

	got, err := repo.List(context.Background(), td.UserID, filter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_List_Empty(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM todos").
		WithArgs("user-1", 10, 0).
		WillReturnRows(pgxmock.NewRows(todoColumns()))

	got, err := repo.List(context.Background(), "user-1", domain.TodoFilter{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, got, "empty page should be a non-nil slice")
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_Count_WithStateFilter(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM todos WHERE user_id = \$1 AND state = \$2`).
		WithArgs("user-1", domain.TodoStateDone).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), "user-1", domain.TodoFilter{State: domain.TodoStateDone, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_Update_Success(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	td := sampleTodo()

	mock.ExpectExec("UPDATE todos").
		WithArgs(td.Title, td.Description, td.State, pgxmock.AnyArg(), td.ID, td.UserID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), td)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	td := sampleTodo()

	mock.ExpectExec("UPDATE todos").
		WithArgs(td.Title, td.Description, td.State, pgxmock.AnyArg(), td.ID, td.UserID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), td)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_Delete_Success(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM todos").
		WithArgs("todo-1", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "todo-1", "user-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newTodoTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM todos").
		WithArgs("todo-1", "someone-else").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "todo-1", "someone-else")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
