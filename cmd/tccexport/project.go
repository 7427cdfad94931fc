package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"
)

// runProject dispatches the project subcommands.
func runProject(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printProjectUsage(env.Stderr)
		return fmt.Errorf("%w: missing project subcommand", ErrUsage)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "save", "list", "show", "delete":
	case "help", "-h", "--help":
		printProjectUsage(env.Stdout)
		return nil
	default:
		return fmt.Errorf("%w: unknown project subcommand %q", ErrUsage, sub)
	}

	flags, positional, err := parseProjectFlags(sub, rest)
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}

	s, err := openStore(storePath(flags.db, cfg))
	if err != nil {
		return err
	}
	defer s.Close()

	switch sub {
	case "save":
		if len(positional) != 1 {
			return fmt.Errorf("%w: project save takes exactly one manuscript file", ErrUsage)
		}
		m, err := readManuscript(positional[0])
		if err != nil {
			return err
		}
		id, err := s.Save(ctx, flags.id, m)
		if err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Saved project %s\n", id)
		}
		return nil

	case "list":
		summaries, err := s.List(ctx)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			if !flags.common.quiet {
				fmt.Fprintln(env.Stdout, "No projects")
			}
			return nil
		}
		tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tCOURSE\tCHAPTERS\tUPDATED")
		for _, p := range summaries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				p.ID, p.Title, p.CourseName, p.Chapters, p.UpdatedAt.Local().Format(time.DateTime))
		}
		return tw.Flush()

	case "show":
		id, err := projectID(flags, positional)
		if err != nil {
			return err
		}
		p, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		m := p.Manuscript
		fmt.Fprintf(env.Stdout, "Title:   %s\n", m.Title)
		fmt.Fprintf(env.Stdout, "Course:  %s\n", m.CourseName)
		if m.Style != "" {
			fmt.Fprintf(env.Stdout, "Style:   %s\n", m.Style)
		}
		fmt.Fprintf(env.Stdout, "Updated: %s\n", p.UpdatedAt.Local().Format(time.DateTime))
		fmt.Fprintf(env.Stdout, "Words:   %d\n\n", m.WordCount())

		tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ORDER\tID\tTITLE\tWORDS")
		for _, ch := range m.Sorted().Chapters {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", ch.Order, ch.ID, ch.Title, ch.WordCount())
		}
		return tw.Flush()

	default: // delete
		id, err := projectID(flags, positional)
		if err != nil {
			return err
		}
		if err := s.Delete(ctx, id); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Deleted project %s\n", id)
		}
		return nil
	}
}

// projectID takes the project ID from --id or the single positional arg.
func projectID(flags *projectFlags, positional []string) (string, error) {
	switch {
	case len(positional) == 1 && flags.id == "":
		return positional[0], nil
	case len(positional) == 0 && flags.id != "":
		return flags.id, nil
	}
	return "", fmt.Errorf("%w: expected one project ID", ErrUsage)
}
