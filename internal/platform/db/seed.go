package db

import (
	"context"
	"log/slog"

	"hrms/internal/domain/employee"
)

// Seed loads the demo workforce into an empty employees table.
func Seed(ctx context.Context, store employee.StoreAPI) error {
	existing, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	fixtures := employee.Fixtures()
	for _, emp := range fixtures {
		if err := store.Upsert(ctx, emp); err != nil {
			return err
		}
	}
	slog.Info("seeded employees", "count", len(fixtures))
	return nil
}
