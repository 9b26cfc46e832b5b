package console

import "github.com/iliyamo/venue-simulator/internal/model"

func (c *Console) matchesMenu() error {
	for {
		c.banner("MATCHES AND VENUES")
		c.println("1. Teams\n2. Venues\n3. Matches\n4. Search matches\n5. Back")
		opt, err := c.choose("Choose an option: ", 5)
		if err != nil {
			return err
		}
		switch opt {
		case 1:
			for i, t := range c.reg.Teams() {
				c.printf("%d.\n%s", i+1, t.Describe())
			}
		case 2:
			for i, v := range c.reg.Venues() {
				c.printf("%d.\n%s", i+1, v.Describe())
			}
		case 3:
			c.listMatches(c.reg.Matches())
		case 4:
			if err := c.searchMatches(); err != nil {
				return err
			}
		case 5:
			return nil
		}
	}
}

func (c *Console) searchMatches() error {
	for {
		c.banner("MATCH SEARCH")
		c.println("1. By country\n2. By venue\n3. By date\n4. Back")
		opt, err := c.choose("Choose an option: ", 4)
		if err != nil {
			return err
		}
		var found []*model.Match
		switch opt {
		case 1:
			q, err := c.askText("Country: ")
			if err != nil {
				return err
			}
			found = c.reg.MatchesByCountry(q)
		case 2:
			q, err := c.askText("Venue name: ")
			if err != nil {
				return err
			}
			found = c.reg.MatchesByVenue(q)
		case 3:
			q, err := c.askText("Day of month or YYYY-MM-DD: ")
			if err != nil {
				return err
			}
			found = c.reg.MatchesByDate(q)
		case 4:
			return nil
		}
		if len(found) == 0 {
			c.println("\nNo matches found.")
			continue
		}
		c.listMatches(found)
	}
}

func (c *Console) listMatches(matches []*model.Match) {
	if len(matches) == 0 {
		c.println("\nNo matches loaded.")
		return
	}
	for i, m := range matches {
		c.printf("%d.\n%s", i+1, m.Describe())
	}
}
