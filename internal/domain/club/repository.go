package club

import "context"

// Repository describes club persistence needs from use cases.
type Repository interface {
	// ListByNameAndNation returns every club matching (name, nation)
	// case-insensitively across all leagues, ordered by id.
	ListByNameAndNation(ctx context.Context, name, nation string) ([]Club, error)
	Create(ctx context.Context, item Club) (Club, error)
	UpdateLeague(ctx context.Context, clubID, leagueID int64) error
}
