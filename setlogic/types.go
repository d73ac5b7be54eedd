package setlogic

import (
	"time"

	"github.com/rs/zerolog"
)

// SetInfo describes a stored set without its members
type SetInfo struct {
	Name        string `json:"name"`
	Expression  string `json:"expression,omitempty"` // empty unless produced by EvaluateInto
	Size        int    `json:"size"`
	CreatedAtMS int64  `json:"created_at_ms"`
	UpdatedAtMS int64  `json:"updated_at_ms"`
}

// StoreOptions configures store behavior
type StoreOptions struct {
	Now             func() time.Time
	LoadConcurrency int // max sets loaded in parallel by Bindings
	Logger          zerolog.Logger
}

// DefaultStoreOptions returns sensible defaults
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		Now:             time.Now,
		LoadConcurrency: DefaultLoadConcurrency,
		Logger:          zerolog.Nop(),
	}
}
