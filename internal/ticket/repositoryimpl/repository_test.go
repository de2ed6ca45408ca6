package repositoryimpl

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/ticketboard/internal/ticket"
	"github.com/kazz187/ticketboard/pkg/cerr"
	"github.com/kazz187/ticketboard/pkg/storage"
)

// exerciseRepository runs the contract every ticket.Repository must satisfy.
func exerciseRepository(t *testing.T, repo ticket.Repository, projectID string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	epic := &ticket.Ticket{
		ProjectID: projectID, Title: "Epic", Type: ticket.TypeEpic,
		Status: ticket.StatusOpen, Priority: ticket.PriorityHigh, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, epic))
	require.NotZero(t, epic.ID)

	task := &ticket.Ticket{
		ProjectID: projectID, Title: "Task", Type: ticket.TypeTask, ParentID: ticket.IDPtr(epic.ID),
		Status: ticket.StatusOpen, Priority: ticket.PriorityMedium, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, task))
	assert.Greater(t, task.ID, epic.ID)

	other := &ticket.Ticket{
		ProjectID: projectID + "-other", Title: "Elsewhere", Type: ticket.TypeEpic,
		Status: ticket.StatusOpen, Priority: ticket.PriorityLow, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, other))

	got, err := repo.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Task", got.Title)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, epic.ID, *got.ParentID)
	assert.True(t, now.Equal(got.CreatedAt))

	list, err := repo.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, epic.ID, list[0].ID)
	assert.Equal(t, task.ID, list[1].ID)

	got.Status = ticket.StatusDone
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusDone, got.Status)

	missing := got.Clone()
	missing.ID = other.ID + 1000
	assert.True(t, cerr.IsCode(repo.Update(ctx, &missing), cerr.NotFound))

	require.NoError(t, repo.Delete(ctx, epic.ID))
	_, err = repo.Get(ctx, epic.ID)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
	assert.True(t, cerr.IsCode(repo.Delete(ctx, epic.ID), cerr.NotFound))

	list, err = repo.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, epic.ID, *list[0].ParentID)
}

func TestYAMLRepository(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	exerciseRepository(t, NewYAMLRepository(s), "p")
}

func TestYAMLRepository_IDsContinueAfterRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	first := NewYAMLRepository(s)
	for i := 0; i < 3; i++ {
		require.NoError(t, first.Create(ctx, &ticket.Ticket{ProjectID: "p", Title: "x", Type: ticket.TypeTask}))
	}
	require.NoError(t, first.Delete(ctx, 2))

	second := NewYAMLRepository(s)
	tk := &ticket.Ticket{ProjectID: "p", Title: "y", Type: ticket.TypeTask}
	require.NoError(t, second.Create(ctx, tk))
	assert.Equal(t, int64(4), tk.ID)
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("TICKETBOARD_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TICKETBOARD_TEST_POSTGRES_DSN is not set")
	}
	ctx := context.Background()
	repo, err := NewPostgresRepository(ctx, PostgresConfig{
		DSN:            dsn,
		MaxConns:       4,
		MinConns:       1,
		QueryTimeout:   5 * time.Second,
		MigrateTimeout: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	exerciseRepository(t, repo, "test-"+time.Now().Format("20060102150405.000000000"))
}

func TestYAMLRepository_Invalidate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	repo := NewYAMLRepository(s)
	require.NoError(t, repo.Create(ctx, &ticket.Ticket{ProjectID: "p", Title: "a", Type: ticket.TypeTask}))

	other := NewYAMLRepository(s)
	for i := 0; i < 2; i++ {
		require.NoError(t, other.Create(ctx, &ticket.Ticket{ProjectID: "p", Title: "b", Type: ticket.TypeTask}))
	}

	repo.Invalidate()
	tk := &ticket.Ticket{ProjectID: "p", Title: "c", Type: ticket.TypeTask}
	require.NoError(t, repo.Create(ctx, tk))
	assert.Equal(t, int64(4), tk.ID)
}
