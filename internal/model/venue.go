package model

import (
	"fmt"
	"strings"

	"github.com/iliyamo/venue-simulator/internal/inventory"
	"github.com/iliyamo/venue-simulator/internal/seatgrid"
)

// Stand is a concession stand (restaurant) inside a venue.
type Stand struct {
	Name      string
	Catalogue *inventory.Catalogue
}

// NewStand builds a stand around an existing catalogue. A nil catalogue
// becomes an empty one.
func NewStand(name string, c *inventory.Catalogue) *Stand {
	if c == nil {
		c, _ = inventory.NewCatalogue()
	}
	return &Stand{Name: name, Catalogue: c}
}

// Venue is a stadium. Its two seat grids are created once from the
// zone capacities and shared by every match played there.
//
// Fields:
//  ID      – identifier assigned by the remote data source.
//  Name    – stadium name, used by the match search.
//  City    – host city.
//  General – seat grid of the general zone.
//  VIP     – seat grid of the VIP zone.
//  Stands  – concession stands in display order.
type Venue struct {
	ID      int
	Name    string
	City    string
	General *seatgrid.Grid
	VIP     *seatgrid.Grid
	Stands  []*Stand
}

// NewVenue creates a venue with fresh grids for the given capacities.
func NewVenue(id int, name, city string, general, vip int, stands []*Stand) *Venue {
	return &Venue{
		ID:      id,
		Name:    name,
		City:    city,
		General: seatgrid.FromCapacity(general),
		VIP:     seatgrid.FromCapacity(vip),
		Stands:  stands,
	}
}

// Grid returns the seat grid of a zone.
func (v *Venue) Grid(zone Zone) *seatgrid.Grid {
	if zone == ZoneVIP {
		return v.VIP
	}
	return v.General
}

// Capacity returns the seat count of each zone.
func (v *Venue) Capacity() (general, vip int) {
	return v.General.Capacity(), v.VIP.Capacity()
}

// HasConcessionStock reports whether any stand has anything left to sell.
func (v *Venue) HasConcessionStock() bool {
	for _, s := range v.Stands {
		if s.Catalogue.HasStock() {
			return true
		}
	}
	return false
}

// StandByName finds a stand by exact name.
func (v *Venue) StandByName(name string) (*Stand, bool) {
	for _, s := range v.Stands {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Products flattens every stand catalogue in stand order.
func (v *Venue) Products() []*inventory.Product {
	var out []*inventory.Product
	for _, s := range v.Stands {
		out = append(out, s.Catalogue.All()...)
	}
	return out
}

// Describe renders the venue for menus.
func (v *Venue) Describe() string {
	g, vip := v.Capacity()
	names := make([]string, len(v.Stands))
	for i, s := range v.Stands {
		names[i] = s.Name
	}
	return fmt.Sprintf("-Name: %s\n-City: %s\n-Capacity: %d general, %d VIP\n-Restaurants: %s\n",
		v.Name, v.City, g, vip, strings.Join(names, ", "))
}

// StandRecord is the persisted form of a stand.
type StandRecord struct {
	Name     string                    `json:"name" validate:"required"`
	Products []inventory.ProductRecord `json:"products" validate:"dive"`
}

// VenueRecord is the persisted form of a venue. Seat state is not stored;
// it is rebuilt from the persisted tickets.
type VenueRecord struct {
	ID       int           `json:"id"`
	Name     string        `json:"name" validate:"required"`
	City     string        `json:"city"`
	Capacity [2]int        `json:"capacity"`
	Stands   []StandRecord `json:"restaurants" validate:"dive"`
}

func (v *Venue) ToRecord() VenueRecord {
	g, vip := v.Capacity()
	r := VenueRecord{ID: v.ID, Name: v.Name, City: v.City, Capacity: [2]int{g, vip}}
	for _, s := range v.Stands {
		sr := StandRecord{Name: s.Name}
		for _, p := range s.Catalogue.All() {
			sr.Products = append(sr.Products, p.ToRecord())
		}
		r.Stands = append(r.Stands, sr)
	}
	return r
}

// VenueFromRecord rebuilds a venue with empty grids.
func VenueFromRecord(r VenueRecord) (*Venue, error) {
	stands := make([]*Stand, 0, len(r.Stands))
	for _, sr := range r.Stands {
		c, err := inventory.NewCatalogue()
		if err != nil {
			return nil, err
		}
		for _, pr := range sr.Products {
			p, err := inventory.ProductFromRecord(pr)
			if err != nil {
				return nil, fmt.Errorf("venue %d stand %q: %w", r.ID, sr.Name, err)
			}
			if err := c.Add(p); err != nil {
				return nil, fmt.Errorf("venue %d stand %q: %w", r.ID, sr.Name, err)
			}
		}
		stands = append(stands, NewStand(sr.Name, c))
	}
	return NewVenue(r.ID, r.Name, r.City, r.Capacity[0], r.Capacity[1], stands), nil
}
