package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifecalendar/internal/calendar"
	"github.com/tartampluch/go-lifecalendar/internal/calendar/raster"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
)

// stdoutPath selects standard output as the document destination.
const stdoutPath = "-"

type calendarOptions struct {
	birth  string
	vcard  string
	years  float64
	death  string
	id     string
	format string
	output string
	page   int
}

func newCalendarCmd(a *app) *cobra.Command {
	var opts calendarOptions

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Write the life calendar as PDF, PNG or iCalendar",
		Long: `Write the life calendar between a date of birth and an estimated final day.

The date of birth comes from --birth, from the BDAY field of the first card
in a vCard file (--vcard), or from a stored calculation (--id). The final day
is --death, or the date of birth plus --years mean years.

FORMATS:

  pdf   one A4 page per year, one numbered circle per day (default)
  png   raster preview of one year page (--page, 0 stacks up to 10 pages)
  ics   one all-day event at the start of every year plus the final day

EXAMPLES:

  lifecalendar calendar --birth 1990-05-20 --years 77.05
  lifecalendar calendar --vcard me.vcf --death 2067-06-07 -o life.pdf
  lifecalendar calendar --id 3f2a9c1e --format png --page 37 -o year37.png
  lifecalendar calendar --birth 1990-05-20 --format ics -o - > life.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, death, name, err := a.resolveRange(cmd, opts)
			if err != nil {
				return err
			}

			l, err := calendar.NewLayout(birth, death)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrLayoutFailed, err)
			}

			data, ext, err := a.renderDocument(l, opts)
			if err != nil {
				return err
			}

			path := opts.output
			if path == "" {
				path = config.DocumentPrefix + name + ext
			}
			if path == stdoutPath {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
			}

			slog.Info(config.MsgDocWritten,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyFile, path,
				config.LogKeyFormat, opts.format,
				config.LogKeyPages, len(l.Pages),
				config.LogKeyDays, l.TotalDays,
				config.LogKeySizeBytes, len(data),
			)
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Wrote %s ", path)
			fmt.Fprintf(cmd.OutOrStdout(), "(%d days, %d year pages)\n", l.TotalDays, len(l.Pages))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.birth, config.FlagBirth, "", config.FlagDescBirth)
	f.StringVar(&opts.vcard, config.FlagVCard, "", config.FlagDescVCard)
	f.Float64Var(&opts.years, config.FlagYears, a.settings.BaseAge, config.FlagDescYears)
	f.StringVar(&opts.death, config.FlagDeath, "", config.FlagDescDeath)
	f.StringVar(&opts.id, config.FlagID, "", config.FlagDescID)
	f.StringVarP(&opts.format, config.FlagFormat, "f", config.FormatPDF, config.FlagDescFormat)
	f.StringVarP(&opts.output, config.FlagOutput, "o", "", config.FlagDescOutput)
	f.IntVar(&opts.page, config.FlagPage, 1, config.FlagDescPage)
	cmd.MarkFlagsMutuallyExclusive(config.FlagBirth, config.FlagVCard, config.FlagID)
	cmd.MarkFlagsMutuallyExclusive(config.FlagYears, config.FlagDeath)
	return cmd
}

// resolveRange returns the life span to draw and the name used in the
// default output file.
func (a *app) resolveRange(cmd *cobra.Command, opts calendarOptions) (time.Time, time.Time, string, error) {
	if opts.id != "" {
		repo, err := a.openRepo()
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
		c, err := repo.Get(cmd.Context(), opts.id)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
		return c.DateOfBirth, c.DeathDate(), c.ShortID(), nil
	}

	var birth time.Time
	switch {
	case opts.birth != "":
		dob, err := engine.ParseDate(opts.birth)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
		birth = dob
	case opts.vcard != "":
		f, err := os.Open(opts.vcard)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
		defer func() { _ = f.Close() }()
		_, dob, err := engine.BirthDateFromVCard(f)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
		birth = dob
	default:
		return time.Time{}, time.Time{}, "", errors.New(config.ErrBirthRequired)
	}

	death, err := parseDateFlag(opts.death)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	if death.IsZero() {
		if opts.years < 0 {
			return time.Time{}, time.Time{}, "", &engine.DomainError{Field: config.FlagYears, Value: opts.years, Reason: config.ErrInvalidRange}
		}
		death = engine.DeathDate(birth, opts.years)
	}

	span := float64(engine.DaysBetween(birth, death)) / config.DaysPerYear
	if span > config.MaxLifespanYears {
		return time.Time{}, time.Time{}, "", &engine.DomainError{Field: config.FlagDeath, Value: span, Reason: config.ErrLifespanTooLong}
	}
	return birth, death, birth.Format(config.DateFormatFullBasic), nil
}

// renderDocument encodes l in the requested format and returns the file extension.
func (a *app) renderDocument(l calendar.Layout, opts calendarOptions) ([]byte, string, error) {
	switch opts.format {
	case config.FormatPDF:
		data, err := calendar.RenderPDF(l)
		return data, config.ExtPDF, err

	case config.FormatICS:
		data, err := calendar.ICS(l, a.clock.Now())
		return data, config.ExtICS, err

	case config.FormatPNG:
		target := l
		if opts.page == 0 && len(l.Pages) > config.MaxRasterPages {
			return nil, "", fmt.Errorf("%s: %d pages, at most %d with --%s 0; pick one with --%s or use pdf",
				config.ErrTooManyPages, len(l.Pages), config.MaxRasterPages, config.FlagPage, config.FlagPage)
		}
		if opts.page != 0 {
			sub, err := l.Page(opts.page)
			if err != nil {
				return nil, "", err
			}
			target = sub
		}
		surface, err := raster.New(target.Geometry.Width, target.Geometry.Height)
		if err != nil {
			return nil, "", err
		}
		data, err := calendar.RenderBytes(target, surface)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", config.ErrRenderFailed, err)
		}
		return data, config.ExtPNG, nil
	}
	return nil, "", fmt.Errorf("%s: %q", config.ErrUnknownFormat, opts.format)
}
