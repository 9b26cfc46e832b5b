package model

import "fmt"

// Team is a national team taking part in the tournament.
//
// Fields:
//  ID    – identifier assigned by the remote data source.
//  Code  – three letter country code.
//  Name  – country name, used by the match search.
//  Group – tournament group letter.
type Team struct {
	ID    string
	Code  string
	Name  string
	Group string
}

// Describe renders the team for menus.
func (t *Team) Describe() string {
	return fmt.Sprintf("-Name: %s\n-Code: %s\n-Group: %s\n", t.Name, t.Code, t.Group)
}

// TeamRecord is the persisted form of a team.
type TeamRecord struct {
	ID    string `json:"id" validate:"required"`
	Code  string `json:"code"`
	Name  string `json:"name" validate:"required"`
	Group string `json:"group"`
}

func (t *Team) ToRecord() TeamRecord {
	return TeamRecord{ID: t.ID, Code: t.Code, Name: t.Name, Group: t.Group}
}

func TeamFromRecord(r TeamRecord) *Team {
	return &Team{ID: r.ID, Code: r.Code, Name: r.Name, Group: r.Group}
}
