package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/league"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
)

var ErrTxDone = errors.New("memory transaction already finished")

type dataset struct {
	nextID      int64
	leagues     []league.League
	clubs       []club.Club
	players     []player.Player
	details     []player.Details
	goalkeeping []goalkeeping.Goalkeeping
	shooting    []shooting.Shooting
}

func (d *dataset) clone() *dataset {
	return &dataset{
		nextID:      d.nextID,
		leagues:     slices.Clone(d.leagues),
		clubs:       slices.Clone(d.clubs),
		players:     slices.Clone(d.players),
		details:     slices.Clone(d.details),
		goalkeeping: slices.Clone(d.goalkeeping),
		shooting:    slices.Clone(d.shooting),
	}
}

func (d *dataset) newID() int64 {
	d.nextID++
	return d.nextID
}

// Store is an in-process import store. Each import works on a private copy
// of the committed data that replaces it on Commit. Imports are serialized,
// which gives them the isolation a single-node database would.
type Store struct {
	txLock sync.Mutex

	mu   sync.RWMutex
	data *dataset
}

// NewStore seeds the default league the importer falls back to.
func NewStore(defaultLeagueName string) *Store {
	data := &dataset{}
	if defaultLeagueName != "" {
		data.leagues = append(data.leagues, league.League{
			ID:        data.newID(),
			Name:      defaultLeagueName,
			IsDefault: true,
		})
	}
	return &Store{data: data}
}

func (s *Store) BeginImport(ctx context.Context) (usecase.ImportUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.txLock.Lock()

	s.mu.RLock()
	working := s.data.clone()
	s.mu.RUnlock()

	return &unit{store: s, data: working}, nil
}

func (s *Store) snapshot() *dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

func (s *Store) Leagues() []league.League {
	return s.snapshot().leagues
}

func (s *Store) Clubs() []club.Club {
	return s.snapshot().clubs
}

func (s *Store) Players() []player.Player {
	return s.snapshot().players
}

func (s *Store) PlayerDetails() []player.Details {
	return s.snapshot().details
}

func (s *Store) Goalkeeping() []goalkeeping.Goalkeeping {
	return s.snapshot().goalkeeping
}

func (s *Store) Shooting() []shooting.Shooting {
	return s.snapshot().shooting
}

type unit struct {
	store *Store
	data  *dataset
	done  bool
}

func (u *unit) Leagues() league.Repository              { return leagueRepository{u} }
func (u *unit) Clubs() club.Repository                  { return clubRepository{u} }
func (u *unit) Players() player.Repository              { return playerRepository{u} }
func (u *unit) PlayerDetails() player.DetailsRepository { return detailsRepository{u} }
func (u *unit) Goalkeeping() goalkeeping.Repository     { return goalkeepingRepository{u} }
func (u *unit) Shooting() shooting.Repository           { return shootingRepository{u} }

func (u *unit) Commit() error {
	if u.done {
		return ErrTxDone
	}
	u.done = true

	u.store.mu.Lock()
	u.store.data = u.data
	u.store.mu.Unlock()

	u.store.txLock.Unlock()
	return nil
}

func (u *unit) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	u.data = nil
	u.store.txLock.Unlock()
	return nil
}

func (u *unit) check() error {
	if u.done {
		return ErrTxDone
	}
	return nil
}
