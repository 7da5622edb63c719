package goalkeeping

import "context"

// Repository describes goalkeeping persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, item Goalkeeping) (Goalkeeping, error)
	ListBySeason(ctx context.Context, season string) ([]Goalkeeping, error)
}
