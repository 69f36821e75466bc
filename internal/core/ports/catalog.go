package ports

import (
	"context"

	"github.com/jneverifica/firmas-system/internal/core/domain"
)

// CatalogSource loads the external record catalog. Implementations read the
// whole catalog per call; callers filter by organization as needed.
type CatalogSource interface {
	Load(ctx context.Context) ([]domain.CatalogRecord, error)
}
