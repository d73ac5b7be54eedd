package setlogic

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nonibytes/setlogic/setlogic/idset"
	"github.com/nonibytes/setlogic/setlogic/query"
	"github.com/nonibytes/setlogic/setlogic/storage"
)

// Store is an open catalog of named identifier sets
type Store struct {
	adapter storage.Adapter
	db      *sql.DB
	opts    StoreOptions
	interp  *query.Interpreter
	logger  zerolog.Logger
}

// Create creates the store tables (if missing) and opens the store
func Create(ctx context.Context, adapter storage.Adapter, opts StoreOptions) (*Store, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}

	if err := adapter.CreateStore(ctx, db); err != nil {
		db.Close()
		return nil, Wrap(ErrSQL, "create store", err)
	}

	return newStore(adapter, db, opts), nil
}

// Open opens an existing store
func Open(ctx context.Context, adapter storage.Adapter, opts StoreOptions) (*Store, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}

	if err := adapter.OpenStore(ctx, db); err != nil {
		db.Close()
		return nil, Wrap(ErrSQL, "open store", err)
	}

	return newStore(adapter, db, opts), nil
}

func newStore(adapter storage.Adapter, db *sql.DB, opts StoreOptions) *Store {
	defaults := DefaultStoreOptions()
	if opts.Now == nil {
		opts.Now = defaults.Now
	}
	if opts.LoadConcurrency <= 0 {
		opts.LoadConcurrency = defaults.LoadConcurrency
	}
	logger := opts.Logger.With().
		Str("backend", string(adapter.Backend())).
		Str("store", adapter.StoreID()).
		Logger()

	return &Store{
		adapter: adapter,
		db:      db,
		opts:    opts,
		interp:  query.NewInterpreter(opts.Logger),
		logger:  logger,
	}
}

// ID identifies the underlying database (file path or postgres schema)
func (s *Store) ID() string {
	return s.adapter.StoreID()
}

// Close closes the store
func (s *Store) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return Wrap(ErrIO, "close database", err)
		}
	}
	return s.adapter.Close()
}

func (s *Store) nowMS() int64 {
	return s.opts.Now().UnixMilli()
}

// Put stores ids under name, replacing any previous members
func (s *Store) Put(ctx context.Context, name string, ids idset.Set) error {
	return s.put(ctx, name, "", ids)
}

func (s *Store) put(ctx context.Context, name, expression string, ids idset.Set) error {
	if !query.IsIdentifier(name) {
		return InvalidNameError(name)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	sqlt := s.adapter.SQL()

	var setID int64
	if err := tx.QueryRowContext(ctx, sqlt.UpsertSet, name, expression, s.nowMS()).Scan(&setID); err != nil {
		return Wrap(ErrSQL, "upsert set", err)
	}
	if _, err := tx.ExecContext(ctx, sqlt.DeleteMembers, setID); err != nil {
		return Wrap(ErrSQL, "clear members", err)
	}

	stmt, err := tx.PrepareContext(ctx, sqlt.InsertMember)
	if err != nil {
		return Wrap(ErrSQL, "prepare member insert", err)
	}
	defer stmt.Close()

	n := 0
	for id := range ids {
		if _, err := stmt.ExecContext(ctx, setID, id); err != nil {
			return Wrap(ErrSQL, "insert member", err)
		}
		n++
		if n%insertBatchLog == 0 {
			s.logger.Debug().Str("set", name).Int("inserted", n).Msg("storing set")
		}
	}

	if err := tx.Commit(); err != nil {
		return Wrap(ErrSQL, "commit", err)
	}

	s.logger.Debug().Str("set", name).Int("size", len(ids)).Msg("stored set")
	return nil
}

// Get returns the members of the named set
func (s *Store) Get(ctx context.Context, name string) (idset.Set, error) {
	sqlt := s.adapter.SQL()

	var setID int64
	err := s.db.QueryRowContext(ctx, sqlt.GetSetID, name).Scan(&setID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundError(name)
	}
	if err != nil {
		return nil, Wrap(ErrSQL, "get set", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlt.ListMembers, name)
	if err != nil {
		return nil, Wrap(ErrSQL, "list members", err)
	}
	defer rows.Close()

	out := idset.New()
	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			return nil, Wrap(ErrSQL, "scan member", err)
		}
		out.Add(member)
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "list members", err)
	}
	return out, nil
}

// Info returns metadata about the named set
func (s *Store) Info(ctx context.Context, name string) (SetInfo, error) {
	info := SetInfo{Name: name}
	err := s.db.QueryRowContext(ctx, s.adapter.SQL().GetSetInfo, name).
		Scan(&info.Expression, &info.CreatedAtMS, &info.UpdatedAtMS, &info.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return SetInfo{}, NotFoundError(name)
	}
	if err != nil {
		return SetInfo{}, Wrap(ErrSQL, "get set info", err)
	}
	return info, nil
}

// Delete removes the named set. It reports whether the set existed.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	sqlt := s.adapter.SQL()

	var setID int64
	err = tx.QueryRowContext(ctx, sqlt.GetSetID, name).Scan(&setID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, Wrap(ErrSQL, "get set", err)
	}

	if _, err := tx.ExecContext(ctx, sqlt.DeleteMembers, setID); err != nil {
		return false, Wrap(ErrSQL, "delete members", err)
	}
	if _, err := tx.ExecContext(ctx, sqlt.DeleteSet, name); err != nil {
		return false, Wrap(ErrSQL, "delete set", err)
	}
	if err := tx.Commit(); err != nil {
		return false, Wrap(ErrSQL, "commit", err)
	}
	return true, nil
}

// List returns every stored set ordered by name
func (s *Store) List(ctx context.Context) ([]SetInfo, error) {
	rows, err := s.db.QueryContext(ctx, s.adapter.SQL().ListSets)
	if err != nil {
		return nil, Wrap(ErrSQL, "list sets", err)
	}
	defer rows.Close()

	var out []SetInfo
	for rows.Next() {
		var info SetInfo
		if err := rows.Scan(&info.Name, &info.Expression, &info.CreatedAtMS, &info.UpdatedAtMS, &info.Size); err != nil {
			return nil, Wrap(ErrSQL, "scan set", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "list sets", err)
	}
	return out, nil
}

// Bindings loads the named sets concurrently. Names missing from the store
// are left out of the result so that evaluation reports them as unbound.
func (s *Store) Bindings(ctx context.Context, names []string) (query.Bindings, error) {
	loaded := make([]idset.Set, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.LoadConcurrency)
	for i, name := range names {
		g.Go(func() error {
			ids, err := s.Get(gctx, name)
			if IsKind(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			loaded[i] = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bindings := make(query.Bindings, len(names))
	for i, name := range names {
		if loaded[i] != nil {
			bindings[name] = loaded[i]
		}
	}
	s.logger.Trace().Strs("requested", names).Int("loaded", len(bindings)).Msg("loaded bindings")
	return bindings, nil
}

// Evaluate parses expression and evaluates it against the stored sets
func (s *Store) Evaluate(ctx context.Context, expression string) (idset.Set, error) {
	_, result, err := s.evaluate(ctx, expression)
	return result, err
}

// EvaluateInto evaluates expression and stores the result under target,
// recording the canonical expression alongside it.
func (s *Store) EvaluateInto(ctx context.Context, expression, target string) (idset.Set, error) {
	if !query.IsIdentifier(target) {
		return nil, InvalidNameError(target)
	}

	node, result, err := s.evaluate(ctx, expression)
	if err != nil {
		return nil, err
	}
	if err := s.put(ctx, target, node.String(), result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) evaluate(ctx context.Context, expression string) (query.Node, idset.Set, error) {
	node, err := s.interp.Parse(expression)
	if err != nil {
		return nil, nil, Wrap(ErrQueryParse, "parse expression", err)
	}

	bindings, err := s.Bindings(ctx, query.Leaves(node))
	if err != nil {
		return nil, nil, err
	}

	result, err := s.interp.Evaluate(node, bindings)
	if err != nil {
		var be *query.BindingError
		if errors.As(err, &be) {
			return nil, nil, &Error{Kind: ErrBinding, Message: "set is not stored", Name: be.Name, Cause: err}
		}
		return nil, nil, Wrap(ErrQueryParse, "evaluate expression", err)
	}

	s.logger.Debug().
		Str("expression", node.String()).
		Int("size", result.Len()).
		Msg("evaluated expression")
	return node, result, nil
}
