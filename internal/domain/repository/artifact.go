package repository

import (
	"context"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
)

// ArtifactRepository stores pickup artifacts, one row per order. Save replaces
// any previous issue so only the latest payload is honored.
type ArtifactRepository interface {
	Save(ctx context.Context, artifact *model.PickupArtifact) error
	GetByOrder(ctx context.Context, orderID int64) (*model.PickupArtifact, error)
}
