package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-zodiac/internal/export"
	"github.com/litescript/ls-zodiac/internal/numerology"
)

// system resolves the --system flag against the configured default.
func (a *app) system(flag string) numerology.System {
	if flag != "" {
		return numerology.ParseSystem(flag)
	}
	return a.cfg.NumerologySystem()
}

func newNumerologyCmd(a *app) *cobra.Command {
	var (
		name, birth, target, sys string
		asJSON                   bool
	)
	cmd := &cobra.Command{
		Use:   "numerology",
		Short: "Compute a numerology card from a name and birth date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			born, err := parseDate(birth)
			if err != nil {
				return err
			}

			var when time.Time
			if cmd.Flags().Changed("target") {
				when, err = parseDate(target)
				if err != nil {
					return err
				}
			} else {
				now := a.now()
				when = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			}

			card := export.BuildNumerologyCard(name, born, when, a.system(sys))
			out := cmd.OutOrStdout()
			if asJSON {
				r := export.NewReading(time.Time{}, "numerology")
				r.Numerology = card
				return r.WriteJSON(out)
			}
			export.WriteNumerologyCard(out, card)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&birth, "birth", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&target, "target", "", "Date for personal cycles (default today)")
	cmd.Flags().StringVar(&sys, "system", "", "Letter system (pythagorean, chaldean)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("birth")
	return cmd
}

func newCompatCmd(a *app) *cobra.Command {
	var (
		aName, aBirth, bName, bBirth string
		category, sys                string
		asJSON                       bool
	)
	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Score numerology compatibility between two people",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if aName == "" || bName == "" {
				return errors.New("--a-name and --b-name are required")
			}
			aBorn, err := parseDate(aBirth)
			if err != nil {
				return err
			}
			bBorn, err := parseDate(bBirth)
			if err != nil {
				return err
			}

			for _, name := range []string{aName, bName} {
				if !numerology.HasLetters(name) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %q has no letters a-z; name numbers are skipped\n", name)
				}
			}

			system := a.system(sys)
			pa := numerology.NewProfile(aName, aBorn, system)
			pb := numerology.NewProfile(bName, bBorn, system)
			result := numerology.CalculateCompatibility(pa, pb, numerology.ParseCategory(category))

			out := cmd.OutOrStdout()
			if asJSON {
				r := export.NewReading(time.Time{}, "compatibility")
				r.Compatibility = &result
				return r.WriteJSON(out)
			}
			export.WriteCompatibility(out, aName, bName, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&aName, "a-name", "", "First person's full name")
	cmd.Flags().StringVar(&aBirth, "a-birth", "", "First person's birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&bName, "b-name", "", "Second person's full name")
	cmd.Flags().StringVar(&bBirth, "b-birth", "", "Second person's birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "platonic", "Relationship (romantic, platonic, business, family)")
	cmd.Flags().StringVar(&sys, "system", "", "Letter system (pythagorean, chaldean)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	_ = cmd.MarkFlagRequired("a-birth")
	_ = cmd.MarkFlagRequired("b-birth")
	return cmd
}
