package main

import (
	"fmt"
	"text/tabwriter"

	tccexport "github.com/alnah/go-tccexport"
)

// runProfiles lists the available formatting profiles.
func runProfiles(args []string, env *Environment) error {
	flags, err := parseProfilesFlags(args)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(flags, env)
	if err != nil {
		return err
	}

	loader, err := tccexport.NewProfileLoader(cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	names, err := loader.ListProfiles()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPAGE\tFONT\tDESCRIPTION")
	for _, name := range names {
		p, err := loader.LoadProfile(name)
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t(invalid: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %gpt\t%s\n",
			name, p.Pages.PageSize, p.Document.FontFamily, float64(p.Document.FontSize)/2, p.Description)
	}
	return tw.Flush()
}
