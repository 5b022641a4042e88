package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
	"github.com/tartampluch/go-lifecalendar/internal/store"
)

// profileFlags collects the lifestyle answers from the command line.
type profileFlags struct {
	exercise int
	smoking  string
	weight   float64
	height   float64
	diet     string
	alcohol  string
	health   string
}

func (f *profileFlags) bind(fs *pflag.FlagSet) {
	fs.IntVar(&f.exercise, config.FlagExercise, 0, config.FlagDescExercise)
	fs.StringVar(&f.smoking, config.FlagSmoking, "none", config.FlagDescSmoking)
	fs.Float64Var(&f.weight, config.FlagWeight, 0, config.FlagDescWeight)
	fs.Float64Var(&f.height, config.FlagHeight, 0, config.FlagDescHeight)
	fs.StringVar(&f.diet, config.FlagDiet, "moderate", config.FlagDescDiet)
	fs.StringVar(&f.alcohol, config.FlagAlcohol, "none", config.FlagDescAlcohol)
	fs.StringVar(&f.health, config.FlagHealth, "no", config.FlagDescHealth)
}

func (f *profileFlags) profile() engine.Profile {
	return engine.Profile{
		ExerciseMinutesPerWeek: f.exercise,
		Smoking:                engine.ParseSmokingStatus(f.smoking),
		WeightKg:               f.weight,
		HeightCm:               f.height,
		Diet:                   engine.ParseDietQuality(f.diet),
		Alcohol:                engine.ParseAlcoholConsumption(f.alcohol),
		HealthIssues:           engine.ParseHealthStatus(f.health),
	}
}

func newEstimateCmd(a *app) *cobra.Command {
	var (
		pf      profileFlags
		baseAge float64
		birth   string
		gender  string
		save    bool
	)

	cmd := &cobra.Command{
		Use:     "estimate",
		Aliases: []string{"est"},
		Short:   "Estimate life expectancy from lifestyle answers",
		Long: `Estimate life expectancy from lifestyle answers.

Each answer gets a sub-score, from -10 for daily smoking up to +5 for 150 or
more minutes of exercise a week. The sub-scores are weighted and added to the
base age (75 years unless --base-age or LIFECAL_BASE_AGE says otherwise). The
result never drops below 50 years.

Answers may be given in English or Persian (for example --smoking روزانه).

EXAMPLES:

  lifecalendar estimate --weight 70 --height 175 --exercise 200 --diet healthy
  lifecalendar estimate --weight 70 --height 175 --birth 1990-05-20 --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			p := pf.profile()
			if err := p.Validate(); err != nil {
				return err
			}

			v, err := engine.Score(p)
			if err != nil {
				return err
			}
			years := engine.Estimate(baseAge, v)
			printBreakdown(out, v, baseAge, years)

			if birth == "" {
				if save {
					return fmt.Errorf("--%s: %s", config.FlagSave, config.ErrBirthRequired)
				}
				return nil
			}

			dob, err := engine.ParseDate(birth)
			if err != nil {
				return err
			}
			c, err := store.NewCalculation(p, dob, gender, baseAge, a.clock.Now())
			if err != nil {
				return err
			}
			printProgress(out, engine.NewProgress(c.DateOfBirth, c.DeathDate(), a.clock.Now()))

			if !save {
				return nil
			}
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			if err := repo.Create(cmd.Context(), c); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(out, "✓ Saved as %s\n", c.ShortID())
			fmt.Fprintf(out, "  %s\n", color.New(color.Faint).Sprint(c.ID))
			return nil
		},
	}

	pf.bind(cmd.Flags())
	cmd.Flags().Float64Var(&baseAge, config.FlagBaseAge, a.settings.BaseAge, config.FlagDescBaseAge)
	cmd.Flags().StringVar(&birth, config.FlagBirth, "", config.FlagDescBirth)
	cmd.Flags().StringVar(&gender, config.FlagGender, config.DefaultGender, config.FlagDescGender)
	cmd.Flags().BoolVar(&save, config.FlagSave, false, config.FlagDescSave)
	_ = cmd.MarkFlagRequired(config.FlagWeight)
	_ = cmd.MarkFlagRequired(config.FlagHeight)
	return cmd
}

func printBreakdown(w io.Writer, v engine.ScoreVector, baseAge, years float64) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	rows := []struct {
		name   string
		score  int
		weight float64
	}{
		{"exercise", v.Exercise, config.WeightExercise},
		{"smoking", v.Smoking, config.WeightSmoking},
		{"bmi", v.BMI, config.WeightBMI},
		{"diet", v.Diet, config.WeightDiet},
		{"alcohol", v.Alcohol, config.WeightAlcohol},
		{"health", v.Health, config.WeightHealth},
	}

	bold.Fprintln(w, "Score breakdown")
	for _, r := range rows {
		c := color.New(color.FgYellow)
		switch {
		case r.score > 0:
			c = color.New(color.FgGreen)
		case r.score < 0:
			c = color.New(color.FgRed)
		}
		fmt.Fprintf(w, "  %-9s %s %s\n",
			r.name,
			c.Sprintf("%+d", r.score),
			faint.Sprintf("× %.2f = %+.2f", r.weight, float64(r.score)*r.weight))
	}
	fmt.Fprintf(w, "  %-9s %s\n", "base age", faint.Sprintf("%.2f", baseAge))
	bold.Fprintf(w, "Estimated lifespan: %.2f years\n", years)
}

func printProgress(w io.Writer, p engine.Progress) {
	faint := color.New(color.Faint)
	fmt.Fprintf(w, "Estimated final day: %s\n", p.DeathDate.Format(config.DateFormatFullDash))
	fmt.Fprintf(w, "Life elapsed:        %.2f%%\n", p.LifePercentage)
	fmt.Fprintf(w, "Remaining:           %dy %dm %dd %s\n",
		p.Remaining.Years, p.Remaining.Months, p.Remaining.Days,
		faint.Sprintf("(as of %s)", p.Today.Format(config.DateFormatFullDash)))
}

// parseDateFlag parses an optional date flag; empty yields the zero time.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return engine.ParseDate(value)
}
