package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// Upsert inserts or updates the row keyed by (ReferenceID, ClubID, Season).
	Upsert(ctx context.Context, item Player) (Player, error)
	// FindLatestByReference returns the (referenceID, clubID) row with the
	// greatest season.
	FindLatestByReference(ctx context.Context, referenceID string, clubID int64) (Player, bool, error)
	// ListByClubSeason returns the club's players for one season ordered by id.
	ListByClubSeason(ctx context.Context, clubID int64, season string) ([]Player, error)
	CountByClubSeason(ctx context.Context, clubID int64, season string) (int, error)
}

// DetailsRepository persists profile details keyed by player id.
type DetailsRepository interface {
	Upsert(ctx context.Context, item Details) (Details, error)
	GetByPlayerID(ctx context.Context, playerID int64) (Details, bool, error)
}
