package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	usecasemock "github.com/riskibarqy/fbref-crawler/internal/mocks/usecase"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExtractionService_CachesPagePerURL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fetcher := usecasemock.NewPageFetcher(t)
	fetcher.On("Fetch", mock.Anything, arsenalURL).Return(okPage(arsenalURL), nil).Once()

	service := usecase.NewExtractionService(fetcher, arsenalParser(), 0, logging.NewNop())

	players, err := service.Extract(ctx, usecase.ExtractPlayers, usecase.ExtractionRequest{URL: arsenalURL, Selector: "stats_standard_9"})
	require.NoError(t, err)
	assert.Equal(t, 2, players.Count)
	assert.Equal(t, 200, players.StatusCode)

	keepers, err := service.Extract(ctx, usecase.ExtractGoalkeeping, usecase.ExtractionRequest{URL: arsenalURL, Selector: "stats_keeper_9"})
	require.NoError(t, err)
	assert.Equal(t, 1, keepers.Count)
}

func TestExtractionService_Details(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewPageFetcher(t)
	fetcher.On("Fetch", mock.Anything, sakaURL).Return(okPage(sakaURL), nil).Once()

	service := usecase.NewExtractionService(fetcher, arsenalParser(), 0, logging.NewNop())

	got, err := service.Extract(context.Background(), usecase.ExtractDetails, usecase.ExtractionRequest{URL: sakaURL})
	require.NoError(t, err)
	details, ok := got.Records.(player.Details)
	require.True(t, ok)
	assert.Equal(t, "Bukayo Ayoyinka Temidayo Saka", details.FullName)
}

func TestExtractionService_ValidatesRequest(t *testing.T) {
	t.Parallel()

	fetcher := usecasemock.NewPageFetcher(t)
	service := usecase.NewExtractionService(fetcher, arsenalParser(), 0, logging.NewNop())

	cases := []struct {
		name string
		kind usecase.ExtractionKind
		req  usecase.ExtractionRequest
	}{
		{name: "missing url", kind: usecase.ExtractPlayers, req: usecase.ExtractionRequest{Selector: "stats_standard_9"}},
		{name: "bad url", kind: usecase.ExtractPlayers, req: usecase.ExtractionRequest{URL: "not a url", Selector: "stats_standard_9"}},
		{name: "missing selector", kind: usecase.ExtractShooting, req: usecase.ExtractionRequest{URL: arsenalURL}},
		{name: "unknown kind", kind: usecase.ExtractionKind("passing"), req: usecase.ExtractionRequest{URL: arsenalURL, Selector: "x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Extract(context.Background(), tc.kind, tc.req)
			if !errors.Is(err, usecase.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestExtractionService_FetchErrorIsNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fetcher := usecasemock.NewPageFetcher(t)
	fetcher.
		On("Fetch", mock.Anything, arsenalURL).
		Return(usecase.FetchedPage{StatusCode: 429}, fmt.Errorf("fetch: %w", usecase.ErrFetchRateLimited)).
		Once()
	fetcher.On("Fetch", mock.Anything, arsenalURL).Return(okPage(arsenalURL), nil).Once()

	service := usecase.NewExtractionService(fetcher, arsenalParser(), 0, logging.NewNop())
	req := usecase.ExtractionRequest{URL: arsenalURL, Selector: "matchlogs_for"}

	_, err := service.Extract(ctx, usecase.ExtractMatchLogs, req)
	if !errors.Is(err, usecase.ErrFetchRateLimited) {
		t.Fatalf("expected ErrFetchRateLimited, got %v", err)
	}

	got, err := service.Extract(ctx, usecase.ExtractMatchLogs, req)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
}

func TestParseExtractionKind(t *testing.T) {
	t.Parallel()

	kind, err := usecase.ParseExtractionKind(" Squads ")
	require.NoError(t, err)
	assert.Equal(t, usecase.ExtractSquads, kind)

	_, err = usecase.ParseExtractionKind("defense")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}
