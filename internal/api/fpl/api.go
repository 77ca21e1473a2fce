package fpl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/fplcheck/internal/models"
)

var ErrNoCurrentGameweek = errors.New("no gameweek is flagged as current")

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) Bootstrap(ctx context.Context) (*models.BootstrapResponse, error) {
	var resp models.BootstrapResponse
	if err := a.client.Get(ctx, "/bootstrap-static/", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "fetching bootstrap")
	}
	return &resp, nil
}

func (a *API) Fixtures(ctx context.Context, gameweek int) ([]models.Fixture, error) {
	var fixtures []models.Fixture
	params := map[string]string{
		"event": strconv.Itoa(gameweek),
	}
	if err := a.client.Get(ctx, "/fixtures/", params, &fixtures); err != nil {
		return nil, errors.Wrapf(err, "fetching fixtures for gameweek %d", gameweek)
	}
	return fixtures, nil
}

func (a *API) Live(ctx context.Context, gameweek int) (*models.LiveResponse, error) {
	var resp models.LiveResponse
	endpoint := fmt.Sprintf("/event/%d/live/", gameweek)
	if err := a.client.Get(ctx, endpoint, nil, &resp); err != nil {
		return nil, errors.Wrapf(err, "fetching live stats for gameweek %d", gameweek)
	}
	return &resp, nil
}

func (a *API) EntryPicks(ctx context.Context, entryID, gameweek int) (*models.PicksResponse, error) {
	var resp models.PicksResponse
	endpoint := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gameweek)
	if err := a.client.Get(ctx, endpoint, nil, &resp); err != nil {
		return nil, errors.Wrapf(err, "fetching picks for entry %d", entryID)
	}
	return &resp, nil
}

// CurrentGameweek returns the id of the event flagged is_current.
func CurrentGameweek(bootstrap *models.BootstrapResponse) (int, error) {
	for _, event := range bootstrap.Events {
		if event.IsCurrent {
			return event.ID, nil
		}
	}
	return 0, ErrNoCurrentGameweek
}
