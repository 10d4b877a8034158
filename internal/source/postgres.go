package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/thought"
)

// Postgres reads thoughts from the thoughts table.
type Postgres struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres creates a source with a pgx connection pool.
func NewPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("PostgreSQL connected")
	return &Postgres{db: pool, logger: logger}, nil
}

func (p *Postgres) Name() string { return "postgres" }

// Migrate reads and executes all .up.sql files from the migrations directory.
func (p *Postgres) Migrate(ctx context.Context, migrationsDir string) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(migrationsDir, f))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", f, err)
		}
		if _, err := p.db.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("exec migration %s: %w", f, err)
		}
		p.logger.Info("Migration applied", zap.String("file", f))
	}
	return nil
}

// Thoughts returns every row, oldest first.
func (p *Postgres) Thoughts(ctx context.Context) ([]thought.Thought, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, created_at, modality, content, embedding, activation
		 FROM thoughts ORDER BY created_at`)
	if err != nil {
		return nil, fetchError("query thoughts", err)
	}
	defer rows.Close()

	var thoughts []thought.Thought
	for rows.Next() {
		var (
			t        thought.Thought
			modality string
		)
		if err := rows.Scan(&t.ID, &t.Timestamp, &modality, &t.Content, &t.Embedding, &t.Activation); err != nil {
			return nil, fetchError("scan thought", err)
		}
		if t.Modality, err = thought.ParseModality(modality); err != nil {
			return nil, fetchError("thought "+t.ID, err)
		}
		thoughts = append(thoughts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fetchError("iterate thoughts", err)
	}
	return thoughts, nil
}

// Store upserts thoughts in one transaction.
func (p *Postgres) Store(ctx context.Context, thoughts []thought.Thought) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range thoughts {
		_, err := tx.Exec(ctx, `
			INSERT INTO thoughts (id, created_at, modality, content, embedding, activation)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				created_at = EXCLUDED.created_at,
				modality = EXCLUDED.modality,
				content = EXCLUDED.content,
				embedding = EXCLUDED.embedding,
				activation = EXCLUDED.activation`,
			t.ID, t.Timestamp, t.Modality.String(), t.Content, t.Embedding, t.Activation,
		)
		if err != nil {
			return fmt.Errorf("save thought %s: %w", t.ID, err)
		}
	}
	return tx.Commit(ctx)
}

// Close shuts down the connection pool.
func (p *Postgres) Close() {
	p.db.Close()
}
