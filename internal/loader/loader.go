// Package loader fills a registry from the remote tournament data set:
// teams.json, stadiums.json and matches.json under one base URL. Product
// prices are taxed once here; nothing downstream taxes them again at load.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iliyamo/venue-simulator/internal/inventory"
	"github.com/iliyamo/venue-simulator/internal/logger"
	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/pricing"
	"github.com/iliyamo/venue-simulator/internal/repository"
)

const maxBodyBytes = 8 << 20

// Client downloads the data set.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *logger.Logger
}

func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: timeout}, Log: log}
}

// Stats counts what a load added.
type Stats struct {
	Teams    int
	Venues   int
	Matches  int
	Products int
}

// Load fetches teams, then stadiums, then matches and registers them in
// that order; matches reference the other two by identifier. The registry
// is left partially filled when an error is returned.
func (c *Client) Load(ctx context.Context, reg *repository.Registry) (Stats, error) {
	var st Stats

	var teams []apiTeam
	if err := c.get(ctx, "teams.json", &teams); err != nil {
		return st, err
	}
	for _, t := range teams {
		if err := model.Validate(t); err != nil {
			return st, fmt.Errorf("team %q: %w", t.ID, err)
		}
		if err := reg.AddTeam(&model.Team{ID: string(t.ID), Code: t.Code, Name: t.Name, Group: t.Group}); err != nil {
			return st, err
		}
		st.Teams++
	}

	var stadiums []apiStadium
	if err := c.get(ctx, "stadiums.json", &stadiums); err != nil {
		return st, err
	}
	for _, s := range stadiums {
		v, n, err := s.venue()
		if err != nil {
			return st, err
		}
		if err := reg.AddVenue(v); err != nil {
			return st, err
		}
		st.Venues++
		st.Products += n
	}

	var matches []apiMatch
	if err := c.get(ctx, "matches.json", &matches); err != nil {
		return st, err
	}
	for _, m := range matches {
		home, err := reg.Team(string(m.Home.ID))
		if err != nil {
			return st, fmt.Errorf("match %q home: %w", m.ID, err)
		}
		away, err := reg.Team(string(m.Away.ID))
		if err != nil {
			return st, fmt.Errorf("match %q away: %w", m.ID, err)
		}
		venue, err := reg.Venue(int(m.StadiumID))
		if err != nil {
			return st, fmt.Errorf("match %q: %w", m.ID, err)
		}
		match := &model.Match{
			ID:     string(m.ID),
			Number: int(m.Number),
			Home:   home,
			Away:   away,
			Date:   m.Date,
			Group:  m.Group,
			Venue:  venue,
		}
		if err := reg.AddMatch(match); err != nil {
			return st, err
		}
		st.Matches++
	}

	c.Log.Info(c.Log.WithFields(ctx, map[string]any{
		"teams": st.Teams, "venues": st.Venues, "matches": st.Matches, "products": st.Products,
	}), "data set loaded")
	return st, nil
}

func (c *Client) get(ctx context.Context, name string, dst any) error {
	url := c.BaseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", name, resp.Status)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	c.Log.Debug(c.Log.WithField(ctx, "url", url), "fetched")
	return nil
}

// venue converts a stadium, taxing every product price once.
func (s apiStadium) venue() (*model.Venue, int, error) {
	if err := model.Validate(s); err != nil {
		return nil, 0, fmt.Errorf("stadium %d: %w", s.ID, err)
	}
	products := 0
	stands := make([]*model.Stand, 0, len(s.Restaurants))
	for _, r := range s.Restaurants {
		cat, err := inventory.NewCatalogue()
		if err != nil {
			return nil, 0, err
		}
		for _, p := range r.Products {
			variant, err := inventory.ParseVariant(p.Additional)
			if err != nil {
				return nil, 0, fmt.Errorf("stadium %d restaurant %q: %w", s.ID, r.Name, err)
			}
			prod, err := inventory.NewProduct(p.Name, string(p.Quantity), pricing.WithLoadTax(p.Price), int(p.Stock), variant)
			if err != nil {
				return nil, 0, fmt.Errorf("stadium %d restaurant %q: %w", s.ID, r.Name, err)
			}
			if err := cat.Add(prod); err != nil {
				return nil, 0, fmt.Errorf("stadium %d restaurant %q: %w", s.ID, r.Name, err)
			}
			products++
		}
		stands = append(stands, model.NewStand(r.Name, cat))
	}
	return model.NewVenue(int(s.ID), s.Name, s.City, s.Capacity[0], s.Capacity[1], stands), products, nil
}
