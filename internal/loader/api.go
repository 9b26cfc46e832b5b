package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

type apiTeam struct {
	ID    flexString `json:"id" validate:"required"`
	Code  string     `json:"code"`
	Name  string     `json:"name" validate:"required"`
	Group string     `json:"group"`
}

type apiProduct struct {
	Name       string          `json:"name"`
	Quantity   flexString      `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Stock      flexInt         `json:"stock"`
	Additional string          `json:"adicional"`
}

type apiRestaurant struct {
	Name     string       `json:"name"`
	Products []apiProduct `json:"products"`
}

type apiStadium struct {
	ID          flexInt         `json:"id"`
	Name        string          `json:"name" validate:"required"`
	City        string          `json:"city"`
	Capacity    []int           `json:"capacity" validate:"len=2,dive,gte=0"`
	Restaurants []apiRestaurant `json:"restaurants"`
}

type apiTeamRef struct {
	ID flexString `json:"id"`
}

type apiMatch struct {
	ID        flexString `json:"id"`
	Number    flexInt    `json:"number"`
	Home      apiTeamRef `json:"home"`
	Away      apiTeamRef `json:"away"`
	Date      string     `json:"date"`
	Group     string     `json:"group"`
	StadiumID flexInt    `json:"stadium_id"`
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("want string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// flexInt accepts a JSON number or a numeric string.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(s))
	if err != nil {
		return fmt.Errorf("want integer, got %s", b)
	}
	*f = flexInt(n)
	return nil
}
