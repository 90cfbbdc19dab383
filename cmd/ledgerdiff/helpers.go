package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/harperclay/ledgerdiff/internal/config"
	"github.com/harperclay/ledgerdiff/internal/credits"
	"github.com/harperclay/ledgerdiff/internal/engine"
	"github.com/harperclay/ledgerdiff/internal/model"
	"github.com/harperclay/ledgerdiff/internal/ofx"
	"github.com/harperclay/ledgerdiff/internal/rules"
	"github.com/harperclay/ledgerdiff/internal/service"
	"github.com/harperclay/ledgerdiff/internal/storage"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/ledgerdiff/ledgerdiff.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveOwner builds the owner scope from the --user/--session flags. With
// neither set, rules and history belong to the default local user.
func resolveOwner() (model.Owner, error) {
	user := viper.GetString("owner.user")
	session := viper.GetString("owner.session")

	if user != "" && session != "" {
		return model.Owner{}, fmt.Errorf("--user and --session are mutually exclusive")
	}
	if session != "" {
		return model.SessionOwner(session), nil
	}
	if user == "" {
		user = "local"
	}
	return model.UserOwner(user), nil
}

// autoSource routes each statement to the right parser by file extension:
// OFX/QFX downloads parse locally, everything else goes through the remote
// parse service.
type autoSource struct {
	local  service.StatementSource
	remote service.StatementSource
}

func (s *autoSource) Parse(ctx context.Context, name string, r io.Reader) ([]model.Transaction, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ofx", ".qfx":
		return s.local.Parse(ctx, name, r)
	default:
		if s.remote == nil {
			return nil, fmt.Errorf("only OFX/QFX files can be parsed without a configured parse service (got %s)", name)
		}
		return s.remote.Parse(ctx, name, r)
	}
}

// newStatementSource builds the dispatching source. The remote client is
// optional; without one, only OFX input works.
func newStatementSource() service.StatementSource {
	src := &autoSource{local: ofx.NewParser()}
	if remote, err := config.LoadParseConfig(); err == nil {
		src.remote = remote
	}
	return src
}

// newEngine wires storage, parsers, the rule store, and the credit ledger
// for the resolved owner.
func newEngine(store service.Storage, owner model.Owner) (*engine.Engine, error) {
	ruleStore, err := rules.NewStore(owner, store)
	if err != nil {
		return nil, err
	}
	return engine.New(store, newStatementSource(), ruleStore, credits.NewLedger(store), owner)
}
