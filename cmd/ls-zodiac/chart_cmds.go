package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/litescript/ls-zodiac/internal/chart"
	"github.com/litescript/ls-zodiac/internal/chartfile"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/export"
)

// fetchPositions asks the configured provider for positions at t.
func (a *app) fetchPositions(ctx context.Context, p ephem.Provider, t time.Time) ([]chart.Position, time.Duration, error) {
	start := time.Now()
	positions, err := p.Positions(ctx, t, a.cfg.ObserverLocation())
	elapsed := time.Since(start)
	if err != nil {
		a.logger.Error("fetch failed", zap.String("provider", p.Name()), zap.Error(err))
		return nil, elapsed, fmt.Errorf("%s positions: %w", p.Name(), err)
	}
	a.logger.Debug("fetch complete",
		zap.String("provider", p.Name()),
		zap.Int("bodies", len(positions)),
		zap.Duration("took", elapsed))
	return positions, elapsed, nil
}

func newPositionsCmd(a *app) *cobra.Command {
	var (
		at      string
		asJSON  bool
		savePth string
	)
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Print body positions for a moment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseMoment(at, a.now)
			if err != nil {
				return err
			}
			p := a.newProvider()
			positions, _, err := a.fetchPositions(cmd.Context(), p, t)
			if err != nil {
				return err
			}

			if savePth != "" {
				c := &chartfile.Chart{
					Name:      "Transits " + t.Format("2006-01-02 15:04"),
					Born:      t,
					Observer:  a.cfg.ObserverLocation(),
					Positions: positions,
				}
				if err := chartfile.Save(savePth, c); err != nil {
					return err
				}
				a.logger.Info("chart saved", zap.String("path", savePth))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				r := export.NewReading(t, p.Name())
				r.Positions = export.ExportPositions(positions)
				return r.WriteJSON(out)
			}
			export.WritePositionTable(out, fmt.Sprintf("Positions @ %s (%s)", t.Format(time.RFC3339), p.Name()), positions)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Moment to cast (RFC3339 or YYYY-MM-DD, default now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().StringVar(&savePth, "save", "", "Also save the positions as a chart file (.yaml, .toml or .json)")
	return cmd
}

func newAspectsCmd(a *app) *cobra.Command {
	var (
		natalPath   string
		transitPath string
		at          string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "aspects",
		Short: "Find aspects within a chart or from transits to it",
		Long: "With only --natal, lists aspects among the chart's own bodies. " +
			"With --transit or --at, lists aspects from those positions to the natal chart.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			natal, err := chartfile.Load(natalPath)
			if err != nil {
				return err
			}

			var (
				aspects []chart.Aspect
				title   string
				source  string
				moment  time.Time
			)
			switch {
			case transitPath != "":
				transit, err := chartfile.Load(transitPath)
				if err != nil {
					return err
				}
				p := ephem.NewStaticProvider(transit.Name, transit.Positions)
				moment = transit.Born
				positions, _, err := a.fetchPositions(cmd.Context(), p, moment)
				if err != nil {
					return err
				}
				aspects = chart.CalculateAspects(positions, natal.Positions, true)
				title = fmt.Sprintf("%s → %s", transit.Name, natal.Name)
				source = p.Name()
			case cmd.Flags().Changed("at"):
				moment, err = parseMoment(at, a.now)
				if err != nil {
					return err
				}
				p := a.newProvider()
				positions, _, err := a.fetchPositions(cmd.Context(), p, moment)
				if err != nil {
					return err
				}
				aspects = chart.CalculateAspects(positions, natal.Positions, true)
				title = fmt.Sprintf("Transits @ %s → %s", moment.Format(time.RFC3339), natal.Name)
				source = p.Name()
			default:
				aspects = chart.ChartAspects(natal.Positions)
				title = natal.Name
				source = natal.Name
			}

			out := cmd.OutOrStdout()
			if asJSON {
				r := export.NewReading(moment, source)
				r.Aspects = export.ExportAspects(aspects)
				return r.WriteJSON(out)
			}
			export.WriteAspectTable(out, title, aspects)
			return nil
		},
	}
	cmd.Flags().StringVar(&natalPath, "natal", "", "Natal chart file")
	cmd.Flags().StringVar(&transitPath, "transit", "", "Transit chart file")
	cmd.Flags().StringVar(&at, "at", "", "Cast transits from the provider at this moment")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	_ = cmd.MarkFlagRequired("natal")
	cmd.MarkFlagsMutuallyExclusive("transit", "at")
	return cmd
}

func newSynastryCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "synastry <chart-a> <chart-b>",
		Short: "Find aspects between two charts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := chartfile.Load(args[0])
			if err != nil {
				return err
			}
			second, err := chartfile.Load(args[1])
			if err != nil {
				return err
			}

			aspects := chart.CalculateAspects(first.Positions, second.Positions, true)
			out := cmd.OutOrStdout()
			if asJSON {
				r := export.NewReading(time.Time{}, first.Name+" & "+second.Name)
				r.Aspects = export.ExportAspects(aspects)
				return r.WriteJSON(out)
			}
			export.WriteAspectTable(out, fmt.Sprintf("%s × %s", first.Name, second.Name), aspects)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newIngressesCmd(a *app) *cobra.Command {
	var (
		from, to string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "ingresses",
		Short: "List bodies that changed sign between two moments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t1, err := parseMoment(from, a.now)
			if err != nil {
				return err
			}
			t2, err := parseMoment(to, a.now)
			if err != nil {
				return err
			}
			if !t2.After(t1) {
				return errors.New("--to must be after --from")
			}

			p := a.newProvider()
			before, _, err := a.fetchPositions(cmd.Context(), p, t1)
			if err != nil {
				return err
			}
			after, _, err := a.fetchPositions(cmd.Context(), p, t2)
			if err != nil {
				return err
			}

			msgs := chart.DetectIngresses(before, after)
			out := cmd.OutOrStdout()
			if asJSON {
				r := export.NewReading(t2, p.Name())
				r.Ingresses = msgs
				return r.WriteJSON(out)
			}

			fmt.Fprintf(out, "Ingresses %s → %s (%s)\n", t1.Format(time.RFC3339), t2.Format(time.RFC3339), p.Name())
			if len(msgs) == 0 {
				fmt.Fprintln(out, "No ingresses")
				return nil
			}
			for _, m := range msgs {
				fmt.Fprintln(out, "  "+m)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Start moment (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End moment (default now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
