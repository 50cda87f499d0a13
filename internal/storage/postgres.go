package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/exercisetracker/internal"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS users (
	seq      BIGSERIAL PRIMARY KEY,
	id       TEXT NOT NULL UNIQUE,
	username TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS exercises (
	seq         BIGSERIAL PRIMARY KEY,
	id          TEXT NOT NULL UNIQUE,
	user_id     TEXT NOT NULL REFERENCES users (id),
	description TEXT NOT NULL,
	duration    DOUBLE PRECISION NOT NULL,
	date        TIMESTAMPTZ NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS exercises_user_date_idx ON exercises (user_id, date);
`

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Errorf("failed to ping postgres: %v", err)
		pool.Close()
		return nil, err
	}
	p := &PostgresStorage{pool: pool, logger: logger}
	if err := p.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// EnsureSchema creates the tables when they are missing. It never alters
// existing ones.
func (p *PostgresStorage) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		p.logger.Errorf("failed to create schema: %v", err)
		return fmt.Errorf("storage: schema: %w", err)
	}
	return nil
}

func (p *PostgresStorage) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}

// --- UserRepository ---
func (p *PostgresStorage) InsertUser(ctx context.Context, user *internal.User) error {
	id := uuid.NewString()
	_, err := p.pool.Exec(ctx, `INSERT INTO users (id, username) VALUES ($1, $2)`, id, user.Username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return internal.ErrUsernameTaken
		}
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	user.ID = id
	return nil
}

func (p *PostgresStorage) findOneUser(ctx context.Context, query string, arg string) (*internal.User, error) {
	var u internal.User
	if err := p.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		p.logger.Errorf("failed to find user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) FindUserByID(ctx context.Context, id string) (*internal.User, error) {
	return p.findOneUser(ctx, `SELECT id, username FROM users WHERE id = $1`, id)
}

func (p *PostgresStorage) FindUserByUsername(ctx context.Context, username string) (*internal.User, error) {
	return p.findOneUser(ctx, `SELECT id, username FROM users WHERE username = $1`, username)
}

func (p *PostgresStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, username FROM users ORDER BY seq`)
	if err != nil {
		p.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := []internal.User{}
	for rows.Next() {
		var u internal.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			p.logger.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// --- ExerciseRepository ---
func (p *PostgresStorage) InsertExercise(ctx context.Context, ex *internal.Exercise) error {
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}
	_, err := p.pool.Exec(ctx, `INSERT INTO exercises (id, user_id, description, duration, date, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		ex.ID, ex.UserID, ex.Description, ex.Duration, ex.Date, ex.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert exercise: %v", err)
		return err
	}
	return nil
}

// exerciseSQL builds the log query for f with positional arguments.
func exerciseSQL(f ExerciseFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT id, user_id, description, duration, date, created_at FROM exercises WHERE user_id = $1`)
	args := []any{f.UserID}
	if f.From != nil {
		args = append(args, *f.From)
		fmt.Fprintf(&b, ` AND date >= $%d`, len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		fmt.Fprintf(&b, ` AND date <= $%d`, len(args))
	}
	b.WriteString(` ORDER BY seq`)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, ` LIMIT $%d`, len(args))
	}
	return b.String(), args
}

func (p *PostgresStorage) FindExercises(ctx context.Context, f ExerciseFilter) ([]internal.Exercise, error) {
	query, args := exerciseSQL(f)
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query exercises: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.Exercise{}
	for rows.Next() {
		var ex internal.Exercise
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Description, &ex.Duration, &ex.Date, &ex.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan exercise: %v", err)
			return nil, err
		}
		ex.Date = ex.Date.UTC()
		ex.CreatedAt = ex.CreatedAt.UTC()
		out = append(out, ex)
	}
	return out, rows.Err()
}

// --- Compile-time assertions ---
var _ Store = (*PostgresStorage)(nil)
