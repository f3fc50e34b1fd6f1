package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"streamfront/internal/db"
)

// chaves conhecidas; o valor é sempre um blob json opaco
const (
	KeyScheduleURL    = "schedule_url"
	KeyProfileAbout   = "profile_about"
	KeyProfileCredits = "profile_credits"
)

// ErrUnavailable indica que o banco está fora do ar; diferente de "chave ausente",
// que é retornado como found=false sem erro.
var ErrUnavailable = errors.New("settings store unavailable")

type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Upsert(ctx context.Context, key string, value json.RawMessage) error
}

type Postgres struct {
	db *db.DB
}

func NewPostgres(dbConn *db.DB) *Postgres {
	return &Postgres{db: dbConn}
}

// Init cria a tabela settings se ainda não existir.
func (p *Postgres) Init(ctx context.Context) error {
	if p.db == nil {
		return ErrUnavailable
	}
	_, err := p.db.Pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	)
	if err != nil {
		return fmt.Errorf("settings init: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if p.db == nil {
		return nil, false, ErrUnavailable
	}

	var value []byte
	err := p.db.Pool.QueryRow(ctx,
		`SELECT value FROM settings WHERE key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return json.RawMessage(value), true, nil
}

// Upsert grava o valor inteiro; última escrita vence, sem merge nem versionamento.
func (p *Postgres) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	if p.db == nil {
		return ErrUnavailable
	}

	_, err := p.db.Pool.Exec(ctx,
		`INSERT INTO settings (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()`,
		key, []byte(value),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
