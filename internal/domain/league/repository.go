package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	FindByNameAndNation(ctx context.Context, name, nation string) (League, bool, error)
	FindByName(ctx context.Context, name string) (League, bool, error)
	Create(ctx context.Context, item League) (League, error)
}
