// Package console is the text front end of the simulator. It owns every
// prompt and re-prompt loop and hands validated input to the service
// desks; nothing below this package reads from the terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/iliyamo/venue-simulator/internal/loader"
	"github.com/iliyamo/venue-simulator/internal/logger"
	"github.com/iliyamo/venue-simulator/internal/persistence"
	"github.com/iliyamo/venue-simulator/internal/repository"
	"github.com/iliyamo/venue-simulator/internal/service"
)

// Source fills an empty registry from the remote data set.
type Source interface {
	Load(ctx context.Context, reg *repository.Registry) (loader.Stats, error)
}

// Console drives the menus over one registry.
type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	reg   *repository.Registry
	desks *service.Desks
	src   Source
	store persistence.Store
	log   *logger.Logger
}

// Options wires a console. Registry, Desks, Source and Store are required.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Registry *repository.Registry
	Desks    *service.Desks
	Source   Source
	Store    persistence.Store
	Log      *logger.Logger
}

func New(opts Options) *Console {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Console{
		in:    bufio.NewScanner(opts.In),
		out:   opts.Out,
		reg:   opts.Registry,
		desks: opts.Desks,
		src:   opts.Source,
		store: opts.Store,
		log:   log,
	}
}

// Run shows the startup menu until the user exits. Running out of input
// ends the session like choosing exit, without saving.
func (c *Console) Run(ctx context.Context) error {
	err := c.startup(ctx)
	if errors.Is(err, io.EOF) {
		c.println("\nInput closed. Goodbye.")
		return nil
	}
	return err
}

func (c *Console) startup(ctx context.Context) error {
	for {
		c.banner("WELCOME")
		c.println("1. Load from API\n2. Load saved data\n3. Exit")
		opt, err := c.choose("Choose an option: ", 3)
		if err != nil {
			return err
		}
		switch opt {
		case 1:
			if !c.loadRemote(ctx) {
				continue
			}
		case 2:
			if !c.loadSaved(ctx) {
				continue
			}
		case 3:
			c.println("Thanks for using the simulator.")
			return nil
		}
		if err := c.mainMenu(ctx); err != nil {
			return err
		}
	}
}

func (c *Console) loadRemote(ctx context.Context) bool {
	c.println("Please wait...")
	c.reg.Reset()
	stats, err := c.src.Load(ctx, c.reg)
	if err != nil {
		c.log.Error(ctx, "load remote data set", err)
		c.printf("\nCould not load the data set: %v\n", err)
		c.reg.Reset()
		return false
	}
	c.log.Info(c.log.WithFields(ctx, map[string]any{
		"teams": stats.Teams, "venues": stats.Venues, "matches": stats.Matches, "products": stats.Products,
	}), "data set loaded")
	c.printf("\n...Loaded %d teams, %d venues, %d matches and %d products.\n",
		stats.Teams, stats.Venues, stats.Matches, stats.Products)
	return true
}

func (c *Console) loadSaved(ctx context.Context) bool {
	snap, err := c.store.Load(ctx)
	if errors.Is(err, persistence.ErrNoSnapshot) {
		c.println("\nThere is no saved data yet.")
		return false
	}
	if err != nil {
		c.log.Error(ctx, "load snapshot", err)
		c.printf("\nCould not read the saved data: %v\n", err)
		return false
	}
	c.reg.Reset()
	if err := persistence.Restore(snap, c.reg); err != nil {
		c.log.Error(ctx, "restore snapshot", err)
		c.printf("\nSaved data is damaged: %v\n", err)
		c.reg.Reset()
		return false
	}
	c.println("\nSaved data loaded.")
	return true
}

func (c *Console) mainMenu(ctx context.Context) error {
	for {
		c.banner("VENUE SIMULATOR")
		c.println("1. Matches and venues\n2. Ticket sales\n3. Attendance\n4. Restaurant catalogue\n" +
			"5. Restaurant sales\n6. Indicators\n7. Save and exit")
		opt, err := c.choose("Choose an option: ", 7)
		if err != nil {
			return err
		}
		switch opt {
		case 1:
			err = c.matchesMenu()
		case 2:
			err = c.ticketsMenu(ctx)
		case 3:
			err = c.attendanceMenu(ctx)
		case 4:
			err = c.catalogueMenu()
		case 5:
			err = c.concessionMenu(ctx)
		case 6:
			err = c.indicatorsMenu()
		case 7:
			if c.saveAndReset(ctx) {
				return nil
			}
		}
		if err != nil {
			return err
		}
	}
}

// saveAndReset persists the registry and clears it. On failure the data
// stays in memory so the user can retry.
func (c *Console) saveAndReset(ctx context.Context) bool {
	if err := c.store.Save(ctx, persistence.Capture(c.reg)); err != nil {
		c.log.Error(ctx, "save snapshot", err)
		c.printf("\nCould not save: %v\n", err)
		return false
	}
	c.reg.Reset()
	c.println("\nData saved.")
	return true
}

func (c *Console) banner(title string) {
	c.printf("\n==============================\n%s\n==============================\n", title)
}

func (c *Console) println(s string) { fmt.Fprintln(c.out, s) }

func (c *Console) printf(format string, args ...any) { fmt.Fprintf(c.out, format, args...) }
