package shooting

import "context"

// Repository describes shooting persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, item Shooting) (Shooting, error)
	ListBySeason(ctx context.Context, season string) ([]Shooting, error)
}
