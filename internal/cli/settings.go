package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"organizador/internal/core"
)

type settingsCmd struct {
	app *App

	month  string
	person string
	card   string
	theme  string
	query  string
	view   string

	monthSet, personSet, cardSet, themeSet, querySet, viewSet bool
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change the persisted view settings" }
func (*settingsCmd) Usage() string {
	return `organizador settings [-month YYYY-MM] [-person <name>] [-card <card>] [-theme <theme>] [-q <text>]

  Without flags the current settings are printed. Each given flag replaces
  only that setting; everything else is preserved.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Selected month.")
	f.StringVar(&c.person, "person", "", "Selected person.")
	f.StringVar(&c.card, "card", "", "Selected card.")
	f.StringVar(&c.theme, "theme", "", "UI theme name.")
	f.StringVar(&c.query, "q", "", "Saved search query.")
	f.StringVar(&c.view, "view", "", "Selected view name.")
}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "month":
			c.monthSet = true
		case "person":
			c.personSet = true
		case "card":
			c.cardSet = true
		case "theme":
			c.themeSet = true
		case "q":
			c.querySet = true
		case "view":
			c.viewSet = true
		}
	})

	svc, err := c.app.Service()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var patch core.SettingsPatch
	if c.monthSet {
		patch.SelectedMonth = &c.month
	}
	if c.personSet {
		patch.SelectedPerson = &c.person
	}
	if c.cardSet {
		patch.SelectedCard = &c.card
	}
	if c.themeSet {
		patch.Theme = &c.theme
	}
	if c.querySet {
		patch.Query = &c.query
	}
	if c.viewSet {
		patch.View = &c.view
	}

	settings, err := svc.PatchSettings(ctx, patch)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("month:  %s\n", settings.SelectedMonth)
	fmt.Printf("person: %s\n", settings.SelectedPerson)
	fmt.Printf("card:   %s\n", settings.SelectedCard)
	fmt.Printf("theme:  %s\n", settings.Theme)
	fmt.Printf("query:  %s\n", settings.Query)
	fmt.Printf("view:   %s\n", settings.View)
	return subcommands.ExitSuccess
}
