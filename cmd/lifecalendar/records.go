package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored calculation and its progress",
		Long: `Show a stored calculation by its id or id prefix, with the share of the
estimated life that has passed as of today.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			c, err := repo.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			faint := color.New(color.Faint)
			color.New(color.Bold).Fprintf(out, "Calculation %s\n", c.ShortID())
			fmt.Fprintf(out, "  %s\n", faint.Sprint(c.ID))
			fmt.Fprintf(out, "Date of birth:       %s (%s)\n", c.DateOfBirth.Format(config.DateFormatFullDash), c.Gender)
			fmt.Fprintf(out, "Estimated lifespan:  %.2f years %s\n", c.EstimatedYears,
				faint.Sprintf("(base %.2f)", c.BaseAge))
			printProgress(out, engine.NewProgress(c.DateOfBirth, c.DeathDate(), a.clock.Now()))
			fmt.Fprintf(out, "Calendar:            %s\n", fmt.Sprintf(config.FormatPDFPath, c.ID))
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored calculations",
		Long: `List stored calculations, newest first.

Each line shows: ID  CREATED  BIRTH  YEARS  FINAL DAY

The ID is an 8-character prefix you can use with show, delete and
calendar --id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			all, err := repo.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, "No calculations found.")
				return nil
			}
			faint := color.New(color.Faint)
			for _, c := range all {
				fmt.Fprintf(out, "%s %s %s %6.2f %s\n",
					faint.Sprint(c.ShortID()),
					faint.Sprint(c.CreatedAt.Local().Format("2006-01-02 15:04")),
					c.DateOfBirth.Format(config.DateFormatFullDash),
					c.EstimatedYears,
					c.DeathDate().Format(config.DateFormatFullDash))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, config.FlagLimit, "n", config.DefaultListLimit, config.FlagDescLimit)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored calculation",
		Long: `Delete a stored calculation by its id or id prefix.

This permanently deletes the calculation. If the prefix matches several
calculations, an error is returned.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			c, err := repo.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := repo.Delete(cmd.Context(), c.ID); err != nil {
				return err
			}
			color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted %s\n", c.ShortID())
			return nil
		},
	}
}
