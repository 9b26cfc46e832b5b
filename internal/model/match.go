package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Match is one fixture. Tickets for a match occupy seats in its venue.
//
// Fields:
//  ID     – identifier assigned by the remote data source.
//  Number – fixture number.
//  Home   – home team.
//  Away   – away team.
//  Date   – ISO date, YYYY-MM-DD.
//  Group  – tournament group.
//  Venue  – stadium where the match is played.
type Match struct {
	ID     string
	Number int
	Home   *Team
	Away   *Team
	Date   string
	Group  string
	Venue  *Venue
}

// Title is the short "home vs away" label.
func (m *Match) Title() string {
	return fmt.Sprintf("%s vs %s", m.Home.Name, m.Away.Name)
}

// Day returns the day of month of the match date, or 0 when the date is
// not in YYYY-MM-DD form.
func (m *Match) Day() int {
	parts := strings.Split(m.Date, "-")
	if len(parts) != 3 {
		return 0
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0
	}
	return d
}

// Involves reports whether a team whose name contains country plays in
// the match, ignoring case.
func (m *Match) Involves(country string) bool {
	q := strings.ToLower(strings.TrimSpace(country))
	return strings.Contains(strings.ToLower(m.Home.Name), q) ||
		strings.Contains(strings.ToLower(m.Away.Name), q)
}

// Describe renders the match for menus.
func (m *Match) Describe() string {
	return fmt.Sprintf("-Home: %s\n-Away: %s\n-Date: %s\n-Stadium: %s\n",
		m.Home.Name, m.Away.Name, m.Date, m.Venue.Name)
}

// MatchRecord is the persisted form of a match. Teams and venue are
// stored by identifier.
type MatchRecord struct {
	ID      string `json:"id" validate:"required"`
	Number  int    `json:"number"`
	HomeID  string `json:"home" validate:"required"`
	AwayID  string `json:"away" validate:"required"`
	Date    string `json:"date"`
	Group   string `json:"group"`
	VenueID int    `json:"stadium_id"`
}

func (m *Match) ToRecord() MatchRecord {
	return MatchRecord{
		ID:      m.ID,
		Number:  m.Number,
		HomeID:  m.Home.ID,
		AwayID:  m.Away.ID,
		Date:    m.Date,
		Group:   m.Group,
		VenueID: m.Venue.ID,
	}
}

// MatchFromRecord rebuilds a match from already resolved references.
func MatchFromRecord(r MatchRecord, home, away *Team, venue *Venue) *Match {
	return &Match{
		ID:     r.ID,
		Number: r.Number,
		Home:   home,
		Away:   away,
		Date:   r.Date,
		Group:  r.Group,
		Venue:  venue,
	}
}
