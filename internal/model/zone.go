package model

import (
	"fmt"
	"strings"
)

// Zone is a seating area of a venue. Each zone has its own seat grid
// and its own ticket price.
type Zone string

const (
	ZoneGeneral Zone = "General"
	ZoneVIP     Zone = "VIP"
)

// Zones lists every zone in menu order.
var Zones = []Zone{ZoneGeneral, ZoneVIP}

// ParseZone accepts a zone name in any letter case.
func ParseZone(s string) (Zone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "general":
		return ZoneGeneral, nil
	case "vip":
		return ZoneVIP, nil
	}
	return "", fmt.Errorf("unknown zone %q", s)
}
