package repositoryimpl

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/kazz187/ticketboard/internal/ticket"
	"github.com/kazz187/ticketboard/pkg/cerr"
)

var _ ticket.Repository = (*PostgresRepository)(nil)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	ticketColumns = `id, project_id, title, description, type, parent_id, status, priority, created_at, updated_at`

	insertTicketQuery = `
INSERT INTO tickets (project_id, title, description, type, parent_id, status, priority, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
	selectTicketQuery         = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	selectProjectTicketsQuery = `SELECT ` + ticketColumns + ` FROM tickets WHERE project_id = $1 ORDER BY id`
	updateTicketQuery         = `
UPDATE tickets SET title = $2, description = $3, status = $4, priority = $5, updated_at = $6
WHERE id = $1`
	deleteTicketQuery = `DELETE FROM tickets WHERE id = $1`
)

type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	QueryTimeout   time.Duration
	MigrateTimeout time.Duration
}

type PostgresRepository struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresRepository opens the pool and applies the embedded migrations.
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	connectCtx, cancelConnect := withTimeout(ctx, cfg.QueryTimeout)
	defer cancelConnect()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping pool: %w", err)
	}

	migrateCtx, cancelMigrate := withTimeout(ctx, cfg.MigrateTimeout)
	defer cancelMigrate()
	if err := migrate(migrateCtx, cfg.DSN); err != nil {
		pool.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "postgres ready", "max_conns", poolCfg.MaxConns)
	return &PostgresRepository{pool: pool, queryTimeout: cfg.QueryTimeout}, nil
}

func migrate(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open sql: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func (r *PostgresRepository) Close() {
	r.pool.Close()
}

func dbError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return cerr.NewError(cerr.NotFound, "ticket not found", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("%s: %w", op, err))
}

func (r *PostgresRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	err := r.pool.QueryRow(ctx, insertTicketQuery,
		t.ProjectID, t.Title, t.Description, string(t.Type), t.ParentID,
		string(t.Status), string(t.Priority), t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		return dbError("insert ticket", err)
	}
	return nil
}

func scanTicket(row pgx.Row) (*ticket.Ticket, error) {
	var (
		t                     ticket.Ticket
		typ, status, priority string
	)
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &typ, &t.ParentID,
		&status, &priority, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Type = ticket.Type(typ)
	t.Status = ticket.Status(status)
	t.Priority = ticket.Priority(priority)
	return &t, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*ticket.Ticket, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	t, err := scanTicket(r.pool.QueryRow(ctx, selectTicketQuery, id))
	if err != nil {
		return nil, dbError("get ticket", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]*ticket.Ticket, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, selectProjectTicketsQuery, projectID)
	if err != nil {
		return nil, dbError("list tickets", err)
	}
	defer rows.Close()

	var out []*ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, dbError("scan ticket", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list tickets", err)
	}
	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, updateTicketQuery,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority), t.UpdatedAt)
	if err != nil {
		return dbError("update ticket", err)
	}
	if tag.RowsAffected() == 0 {
		return cerr.NewError(cerr.NotFound, "ticket not found", nil)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, deleteTicketQuery, id)
	if err != nil {
		return dbError("delete ticket", err)
	}
	if tag.RowsAffected() == 0 {
		return cerr.NewError(cerr.NotFound, "ticket not found", nil)
	}
	return nil
}
