package database

import (
	"context"
	"fmt"

	"utsavdarshan/config"
	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/memstore"
	"utsavdarshan/internal/mongostore"
	"utsavdarshan/internal/repository"
	"utsavdarshan/internal/service"

	"github.com/sirupsen/logrus"
)

// OpenStore connects the backend named by cfg.Driver and prepares its
// schema or indexes.
func OpenStore(ctx context.Context, cfg *config.StoreConfig) (service.Store, error) {
	switch cfg.Driver {
	case domain.StoreMongo:
		db, err := NewMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		st := mongostore.New(db)
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = st.Close(context.Background())
			return nil, fmt.Errorf("mongodb indexes: %w", err)
		}
		return st, nil
	case domain.StoreMySQL, domain.StorePostgres:
		db, err := NewDB(cfg)
		if err != nil {
			return nil, err
		}
		st := repository.NewStore(db)
		if err := AutoMigrate(db); err != nil {
			_ = st.Close(context.Background())
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logrus.WithField("driver", cfg.Driver).Info("connected to SQL database")
		return st, nil
	case domain.StoreMemory:
		logrus.Warn("using in-memory store; data is lost on restart")
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
