package storage

import (
	"context"
	"database/sql"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

const (
	MagicKey     = "setlogic_magic"
	MagicValue   = "setlogic"
	VersionKey   = "setlogic_version"
	VersionValue = "1"
)

// Adapter abstracts database-specific operations
type Adapter interface {
	Backend() Backend
	StoreID() string

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	// CreateStore creates the tables and writes the meta rows. It is
	// idempotent.
	CreateStore(ctx context.Context, db *sql.DB) error
	// OpenStore verifies that db holds a set store.
	OpenStore(ctx context.Context, db *sql.DB) error

	SQL() SQL
}

// SQL holds prepared SQL templates for common operations
type SQL struct {
	GetMeta string
	SetMeta string

	// UpsertSet takes (name, expression, now_ms) and returns set_id
	UpsertSet     string
	GetSetID      string
	GetSetInfo    string
	DeleteMembers string
	InsertMember  string
	ListMembers   string
	DeleteSet     string
	ListSets      string
}
