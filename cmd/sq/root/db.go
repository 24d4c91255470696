package root

import (
	"context"

	"stormquest/internal/catalog"
	"stormquest/internal/engine"
	"stormquest/internal/storage"
)

func (a *app) openService(ctx context.Context) (*engine.Service, func(), error) {
	cat, err := catalog.Load(a.cfg.CatalogPath, a.log)
	if err != nil {
		return nil, nil, err
	}
	st, err := storage.NewByEngine(ctx, a.cfg.Store, a.cfg.DataPath)
	if err != nil {
		return nil, nil, err
	}
	a.log.Debug("store opened", "path", a.cfg.DataPath)

	opts := []engine.Option{engine.WithLogger(a.log)}
	if a.now != nil {
		opts = append(opts, engine.WithClock(a.now))
	}
	svc := engine.Open(ctx, cat, st, opts...)
	cleanup := func() {
		if err := st.Close(); err != nil {
			a.log.Warn("close store", "error", err)
		}
		a.log.Sync()
	}
	return svc, cleanup, nil
}
