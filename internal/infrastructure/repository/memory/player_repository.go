package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
)

type playerRepository struct {
	u *unit
}

func (r playerRepository) Upsert(_ context.Context, item player.Player) (player.Player, error) {
	if err := r.u.check(); err != nil {
		return player.Player{}, err
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, err
	}

	for i, existing := range r.u.data.players {
		if existing.ReferenceID == item.ReferenceID && existing.ClubID == item.ClubID && existing.Season == item.Season {
			item.ID = existing.ID
			r.u.data.players[i] = item
			return item, nil
		}
	}

	item.ID = r.u.data.newID()
	r.u.data.players = append(r.u.data.players, item)
	return item, nil
}

func (r playerRepository) FindLatestByReference(_ context.Context, referenceID string, clubID int64) (player.Player, bool, error) {
	if err := r.u.check(); err != nil {
		return player.Player{}, false, err
	}

	var (
		found  player.Player
		exists bool
	)
	for _, item := range r.u.data.players {
		if item.ReferenceID != referenceID || item.ClubID != clubID {
			continue
		}
		if !exists || item.Season > found.Season {
			found, exists = item, true
		}
	}
	return found, exists, nil
}

func (r playerRepository) ListByClubSeason(_ context.Context, clubID int64, season string) ([]player.Player, error) {
	if err := r.u.check(); err != nil {
		return nil, err
	}
	out := make([]player.Player, 0)
	for _, item := range r.u.data.players {
		if item.ClubID == clubID && item.Season == season {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b player.Player) int { return int(a.ID - b.ID) })
	return out, nil
}

func (r playerRepository) CountByClubSeason(ctx context.Context, clubID int64, season string) (int, error) {
	items, err := r.ListByClubSeason(ctx, clubID, season)
	return len(items), err
}

type detailsRepository struct {
	u *unit
}

func (r detailsRepository) Upsert(_ context.Context, item player.Details) (player.Details, error) {
	if err := r.u.check(); err != nil {
		return player.Details{}, err
	}
	if err := item.Validate(); err != nil {
		return player.Details{}, err
	}

	for i, existing := range r.u.data.details {
		if existing.PlayerID == item.PlayerID {
			item.ID = existing.ID
			r.u.data.details[i] = item
			return item, nil
		}
	}

	item.ID = r.u.data.newID()
	r.u.data.details = append(r.u.data.details, item)
	return item, nil
}

func (r detailsRepository) GetByPlayerID(_ context.Context, playerID int64) (player.Details, bool, error) {
	if err := r.u.check(); err != nil {
		return player.Details{}, false, err
	}
	for _, item := range r.u.data.details {
		if item.PlayerID == playerID {
			return item, true, nil
		}
	}
	return player.Details{}, false, nil
}

type goalkeepingRepository struct {
	u *unit
}

func (r goalkeepingRepository) Upsert(_ context.Context, item goalkeeping.Goalkeeping) (goalkeeping.Goalkeeping, error) {
	if err := r.u.check(); err != nil {
		return goalkeeping.Goalkeeping{}, err
	}
	if err := item.Validate(); err != nil {
		return goalkeeping.Goalkeeping{}, err
	}

	for i, existing := range r.u.data.goalkeeping {
		if existing.ReferenceID == item.ReferenceID && existing.Season == item.Season {
			item.ID = existing.ID
			r.u.data.goalkeeping[i] = item
			return item, nil
		}
	}

	item.ID = r.u.data.newID()
	r.u.data.goalkeeping = append(r.u.data.goalkeeping, item)
	return item, nil
}

func (r goalkeepingRepository) ListBySeason(_ context.Context, season string) ([]goalkeeping.Goalkeeping, error) {
	if err := r.u.check(); err != nil {
		return nil, err
	}
	out := make([]goalkeeping.Goalkeeping, 0)
	for _, item := range r.u.data.goalkeeping {
		if strings.EqualFold(item.Season, season) {
			out = append(out, item)
		}
	}
	return out, nil
}

type shootingRepository struct {
	u *unit
}

func (r shootingRepository) Upsert(_ context.Context, item shooting.Shooting) (shooting.Shooting, error) {
	if err := r.u.check(); err != nil {
		return shooting.Shooting{}, err
	}
	if err := item.Validate(); err != nil {
		return shooting.Shooting{}, err
	}

	for i, existing := range r.u.data.shooting {
		if existing.ReferenceID == item.ReferenceID && existing.Season == item.Season {
			item.ID = existing.ID
			r.u.data.shooting[i] = item
			return item, nil
		}
	}

	item.ID = r.u.data.newID()
	r.u.data.shooting = append(r.u.data.shooting, item)
	return item, nil
}

func (r shootingRepository) ListBySeason(_ context.Context, season string) ([]shooting.Shooting, error) {
	if err := r.u.check(); err != nil {
		return nil, err
	}
	out := make([]shooting.Shooting, 0)
	for _, item := range r.u.data.shooting {
		if strings.EqualFold(item.Season, season) {
			out = append(out, item)
		}
	}
	return out, nil
}
