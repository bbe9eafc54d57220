package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-zodiac/internal/chartfile"
	"github.com/litescript/ls-zodiac/internal/config"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/export"
	"github.com/litescript/ls-zodiac/internal/state"
	"github.com/litescript/ls-zodiac/internal/ui"
)

// notifier receives state changes. *tea.Program satisfies it.
type notifier interface {
	Send(msg tea.Msg)
}

type discardNotifier struct{}

func (discardNotifier) Send(tea.Msg) {}

func newWatchCmd(a *app) *cobra.Command {
	var (
		natalPath string
		headless  bool
		beep      bool
		refresh   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Track transits live against a natal chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interval := a.cfg.Watch.Refresh
			if cmd.Flags().Changed("refresh") {
				interval = config.ClampRefresh(refresh)
			}

			stateCfg := state.DefaultConfig()
			stateCfg.RefreshInterval = interval
			stateCfg.MaxEvents = a.cfg.Watch.MaxEvents
			stateMgr := state.NewManager(stateCfg)

			ctx := cmd.Context()
			var n notifier = discardNotifier{}
			var p *tea.Program
			if !headless {
				p = tea.NewProgram(ui.New(stateMgr), tea.WithAltScreen(), tea.WithContext(ctx))
				n = p
			}

			if natalPath != "" {
				stop, err := a.watchNatal(natalPath, stateMgr, n)
				if err != nil {
					return err
				}
				defer stop()
			}

			provider := a.newProvider()
			if headless {
				return a.runHeadless(ctx, cmd.OutOrStdout(), provider, stateMgr, beep)
			}

			// Start fetch loop in background
			go a.runFetchLoop(ctx, provider, stateMgr, p)

			// Run TUI (blocks until quit)
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&natalPath, "natal", "", "Natal chart file to measure transits against (reloaded on change)")
	cmd.Flags().BoolVar(&headless, "headless", false, "Print events line by line instead of the TUI")
	cmd.Flags().BoolVar(&beep, "beep", false, "Beep on new events (headless, TTY only)")
	cmd.Flags().DurationVar(&refresh, "refresh", 0, "Refresh interval (1m to 24h)")
	return cmd
}

// watchNatal loads the natal chart into state and keeps it current.
func (a *app) watchNatal(path string, stateMgr *state.Manager, n notifier) (func(), error) {
	natal, err := chartfile.Load(path)
	if err != nil {
		return nil, err
	}
	stateMgr.SetNatal(natal.Name, natal.Positions)

	w, err := chartfile.NewWatcher(path, a.logger)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	if err := w.Start(); err != nil {
		return nil, err
	}

	go func() {
		for r := range w.Reloads {
			if r.Err != nil {
				n.Send(ui.ErrorMsg{Error: r.Err})
				continue
			}
			stateMgr.SetNatal(r.Chart.Name, r.Chart.Positions)
			n.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
		}
	}()
	return w.Stop, nil
}

func (a *app) runFetchLoop(ctx context.Context, provider ephem.Provider, stateMgr *state.Manager, n notifier) {
	// Do initial fetch immediately
	a.doFetch(ctx, provider, stateMgr, n)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("fetch loop shutting down")
			return
		case <-ticker.C:
			a.doFetch(ctx, provider, stateMgr, n)
		}
	}
}

func (a *app) doFetch(ctx context.Context, provider ephem.Provider, stateMgr *state.Manager, n notifier) error {
	t := a.now().UTC()
	positions, took, err := a.fetchPositions(ctx, provider, t)
	if err != nil {
		stateMgr.Update(nil, took, err)
		n.Send(ui.ErrorMsg{Error: err})
		return err
	}

	stateMgr.Update(&state.Transit{Timestamp: t, Source: provider.Name(), Positions: positions}, took, nil)
	n.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
	return nil
}

// runHeadless prints the first snapshot, then each new event as it happens.
func (a *app) runHeadless(ctx context.Context, out io.Writer, provider ephem.Provider, stateMgr *state.Manager, beep bool) error {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	if err := a.doFetch(ctx, provider, stateMgr, discardNotifier{}); err != nil {
		return err
	}
	snap := stateMgr.Snapshot()
	export.WritePositionTable(out, fmt.Sprintf("Transits @ %s (%s)", snap.Transit.Timestamp.Format(time.RFC3339), snap.Transit.Source), snap.Transit.Positions)
	if snap.Head != nil {
		fmt.Fprintf(out, "\nStrongest: %s %s natal %s (orb %.2f°)\n",
			snap.Head.Planet1.Name, snap.Head.Type, snap.Head.Planet2.Name, snap.Head.Orb)
	}
	fmt.Fprintln(out)

	lastSeen := snap.Transit.Timestamp
	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := a.doFetch(ctx, provider, stateMgr, discardNotifier{}); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			lastSeen = printNewEvents(out, stateMgr.Snapshot().Events, lastSeen, beep && isTTY)
		}
	}
}

// printNewEvents writes events newer than since and returns the latest
// timestamp printed.
func printNewEvents(out io.Writer, events []state.Event, since time.Time, beep bool) time.Time {
	var fresh []state.Event
	for _, e := range events {
		if e.Timestamp.After(since) {
			fresh = append(fresh, e)
			since = e.Timestamp
		}
	}
	if len(fresh) == 0 {
		return since
	}
	export.WriteEvents(out, fresh)
	if beep {
		fmt.Fprint(out, "\a")
	}
	return since
}
