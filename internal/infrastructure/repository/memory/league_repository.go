package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/league"
)

type leagueRepository struct {
	u *unit
}

func (r leagueRepository) FindByNameAndNation(_ context.Context, name, nation string) (league.League, bool, error) {
	if err := r.u.check(); err != nil {
		return league.League{}, false, err
	}
	want := league.League{Name: name, Nation: nation}
	for _, item := range r.u.data.leagues {
		if league.SameIdentity(item, want) {
			return item, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r leagueRepository) FindByName(_ context.Context, name string) (league.League, bool, error) {
	if err := r.u.check(); err != nil {
		return league.League{}, false, err
	}
	for _, item := range r.u.data.leagues {
		if strings.EqualFold(item.Name, strings.TrimSpace(name)) {
			return item, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r leagueRepository) Create(ctx context.Context, item league.League) (league.League, error) {
	if err := r.u.check(); err != nil {
		return league.League{}, err
	}
	if err := item.Validate(); err != nil {
		return league.League{}, err
	}
	if _, exists, _ := r.FindByNameAndNation(ctx, item.Name, item.Nation); exists {
		return league.League{}, fmt.Errorf("league %q (%s) already exists", item.Name, item.Nation)
	}

	item.ID = r.u.data.newID()
	r.u.data.leagues = append(r.u.data.leagues, item)
	return item, nil
}

type clubRepository struct {
	u *unit
}

func (r clubRepository) ListByNameAndNation(_ context.Context, name, nation string) ([]club.Club, error) {
	if err := r.u.check(); err != nil {
		return nil, err
	}
	out := make([]club.Club, 0, 1)
	for _, item := range r.u.data.clubs {
		if strings.EqualFold(item.Name, strings.TrimSpace(name)) && strings.EqualFold(item.Nation, strings.TrimSpace(nation)) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r clubRepository) Create(ctx context.Context, item club.Club) (club.Club, error) {
	if err := r.u.check(); err != nil {
		return club.Club{}, err
	}
	if err := item.Validate(); err != nil {
		return club.Club{}, err
	}
	existing, _ := r.ListByNameAndNation(ctx, item.Name, item.Nation)
	if len(existing) > 0 {
		return club.Club{}, fmt.Errorf("club %q (%s) already exists", item.Name, item.Nation)
	}

	item.ID = r.u.data.newID()
	r.u.data.clubs = append(r.u.data.clubs, item)
	return item, nil
}

func (r clubRepository) UpdateLeague(_ context.Context, clubID, leagueID int64) error {
	if err := r.u.check(); err != nil {
		return err
	}
	for i := range r.u.data.clubs {
		if r.u.data.clubs[i].ID == clubID {
			r.u.data.clubs[i].LeagueID = leagueID
			return nil
		}
	}
	return fmt.Errorf("club %d not found", clubID)
}
