package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/routetable"
	"github.com/dmitrymomot/folio/pkg/routing"
)

var errEmptyRouteTable = errors.New("folio: route table has no routes")

// core is what both serve and match need: content, routes and the router.
type core struct {
	store  *content.Store
	tables *routetable.Store
	router *routing.Router
	types  []content.Type
}

func buildCore(ctx context.Context, cfg config, log *slog.Logger, observer routing.Observer) (*core, error) {
	types, err := content.LoadTypes(os.DirFS(filepath.Dir(cfg.TypesFile)), filepath.Base(cfg.TypesFile))
	switch {
	case errors.Is(err, content.ErrTypesMissing):
		log.WarnContext(ctx, "content types file missing, preview patterns disabled",
			slog.String("path", cfg.TypesFile))
	case err != nil:
		return nil, err
	}

	store := content.NewStore(os.DirFS(cfg.ContentDir),
		content.WithTypes(types),
		content.WithTaxonomies(cfg.Taxonomies...),
		content.WithStoreLogger(log),
	)
	if err := store.Reload(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	table, err := routetable.LoadFile(cfg.RoutesFile)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	tables := routetable.NewStore(table)

	opts := []routing.Option{
		routing.WithContentTypes(types),
		routing.WithTrailingSlash(cfg.slashPolicy()),
		routing.WithPreviewSecret(cfg.PreviewSecret),
		routing.WithLogger(log),
	}
	if observer != nil {
		opts = append(opts, routing.WithObserver(observer))
	}
	router, err := routing.New(tables, store, opts...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &core{store: store, tables: tables, router: router, types: types}, nil
}

// routesCheck fails readiness until the indexer has produced routes.
func (c *core) routesCheck(context.Context) error {
	if c.tables.Snapshot().Len() == 0 {
		return errEmptyRouteTable
	}
	return nil
}
