package storage

import (
	"context"
	"fmt"

	"github.com/minimal-api/internal/config"
)

// Stores bundles the repositories selected by the configured driver.
type Stores struct {
	Administrators AdministratorStore
	Vehicles       VehicleStore
	Pinger         Pinger
	close          func() error
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the configured backend and prepares its schema.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return &Stores{
			Administrators: NewMemoryAdministrators(),
			Vehicles:       NewMemoryVehicles(),
			Pinger:         MemoryPinger{},
		}, nil

	case config.DriverPostgres:
		db, err := NewDatabase(cfg)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return &Stores{
			Administrators: NewAdministratorRepository(db),
			Vehicles:       NewVehicleRepository(db),
			Pinger:         db,
			close:          db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
