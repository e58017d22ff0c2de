package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/spriteforge/autopaint/internal/store"
	"github.com/spriteforge/autopaint/internal/store/model"
)

// DB defines the interface for database operations (satisfied by *sqlx.DB and *sqlx.Tx)
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository
type SqliteRepository struct {
	db       *sqlx.DB
	executor DB
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{
		db:       db,
		executor: db,
	}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) Sessions() store.SessionRepository {
	return &sessionRepo{db: r.executor}
}

type sessionRepo struct {
	db DB
}

func (r *sessionRepo) Log(ctx context.Context, session *model.Session) error {
	query := `
	INSERT INTO sessions (id, prompt, provider_id, status, error_message, has_code, latency_ms, created_at)
	VALUES (:id, :prompt, :provider_id, :status, :error_message, :has_code, :latency_ms, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, session)
	return err
}

func (r *sessionRepo) GetRecent(ctx context.Context, limit int) ([]model.Session, error) {
	var sessions []model.Session
	query := `SELECT * FROM sessions ORDER BY created_at DESC LIMIT ?`
	err := r.db.SelectContext(ctx, &sessions, query, limit)
	return sessions, err
}
