package repository

import (
	"strconv"
	"strings"

	"github.com/iliyamo/venue-simulator/internal/model"
)

// MatchesByCountry returns matches where either team name contains
// country, ignoring case.
func (r *Registry) MatchesByCountry(country string) []*model.Match {
	if strings.TrimSpace(country) == "" {
		return nil
	}
	var out []*model.Match
	for _, m := range r.matches {
		if m.Involves(country) {
			out = append(out, m)
		}
	}
	return out
}

// MatchesByVenue returns matches played at a venue whose name contains
// query, ignoring case.
func (r *Registry) MatchesByVenue(query string) []*model.Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []*model.Match
	for _, m := range r.matches {
		if strings.Contains(strings.ToLower(m.Venue.Name), q) {
			out = append(out, m)
		}
	}
	return out
}

// MatchesByDate returns matches on a date. The query is either a full
// YYYY-MM-DD date or just the day of month.
func (r *Registry) MatchesByDate(query string) []*model.Match {
	q := strings.TrimSpace(query)
	day, err := strconv.Atoi(q)
	byDay := err == nil
	var out []*model.Match
	for _, m := range r.matches {
		if (byDay && m.Day() == day) || (!byDay && m.Date == q) {
			out = append(out, m)
		}
	}
	return out
}
