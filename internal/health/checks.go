package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-inventory-reorder/pkg/config"

	"github.com/hellofresh/health-go/v5"
)

// NewHealthHandler wires the readiness checks served on /health.
func NewHealthHandler(cfg *config.Config, db *sql.DB) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.App.Name,
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: func(ctx context.Context) error {
					if err := db.PingContext(ctx); err != nil {
						return fmt.Errorf("ping database: %w", err)
					}
					return nil
				},
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
