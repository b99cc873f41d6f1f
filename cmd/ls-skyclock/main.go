// Command ls-skyclock is a terminal astronomical clock: sun and moon on a
// dial, lunar phase, and a true-sunrise alarm.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-skyclock/internal/alarm"
	"github.com/litescript/ls-skyclock/internal/almanac"
	"github.com/litescript/ls-skyclock/internal/astro"
	"github.com/litescript/ls-skyclock/internal/audio"
	"github.com/litescript/ls-skyclock/internal/geoloc"
	"github.com/litescript/ls-skyclock/internal/logging"
	"github.com/litescript/ls-skyclock/internal/moonphase"
	"github.com/litescript/ls-skyclock/internal/sky"
	"github.com/litescript/ls-skyclock/internal/state"
	"github.com/litescript/ls-skyclock/internal/store"
	"github.com/litescript/ls-skyclock/internal/ui"
)

// CLI flags for headless mode
var (
	nowMode       bool
	reportMode    bool
	watchInterval time.Duration
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	lat := flag.Float64("lat", math.NaN(), "Observer latitude (skips geolocation)")
	lon := flag.Float64("lon", math.NaN(), "Observer longitude (skips geolocation)")
	dbPath := flag.String("db", store.DefaultPath(), "Path to the settings database")
	flag.BoolVar(&nowMode, "now", false, "Print a one-line sky summary and exit")
	flag.BoolVar(&reportMode, "report", false, "Print the day's almanac table and exit")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 30s)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// A fixed location on the command line bypasses the async lookup.
	var fixed *geoloc.Result
	if !math.IsNaN(*lat) && !math.IsNaN(*lon) {
		fixed = &geoloc.Result{Point: geoloc.Point{Latitude: *lat, Longitude: *lon}}
	}

	if nowMode || reportMode {
		runHeadless(ctx, fixed, logger)
		return
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening settings database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	// The alt screen owns stderr's terminal; log beside the database instead.
	logPath := filepath.Join(filepath.Dir(*dbPath), "skyclock.log")
	if err := logger.ToFile(logPath); err != nil {
		logger.SetOutput(io.Discard)
	}

	var tone alarm.Tone = audio.NewBell(nil)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		tone = silentTone{}
	}

	provider := almanac.Local{}
	scheduler := alarm.NewScheduler(provider, st, tone, logger)
	mgr := state.NewManager(provider, scheduler, logger)

	// Rehydrate a persisted alarm. A malformed value reads as absent.
	if target, ok, err := st.LoadAlarm(); err != nil {
		logger.Warn("Loading persisted alarm: %v", err)
	} else if ok {
		mgr.RestoreAlarm(target, time.Now())
	}

	p := tea.NewProgram(ui.New(mgr), tea.WithAltScreen())

	// One-shot location acquisition; the TUI renders a placeholder until it
	// resolves or falls back.
	go func() {
		res := resolveLocation(ctx, fixed)
		p.Send(ui.LocatedMsg{Result: res})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// silentTone replaces the bell when stdout is not a terminal.
type silentTone struct{}

func (silentTone) Start() {}
func (silentTone) Stop()  {}

func resolveLocation(ctx context.Context, fixed *geoloc.Result) geoloc.Result {
	if fixed != nil {
		return *fixed
	}
	return geoloc.Resolve(ctx, geoloc.NewIPLocator())
}

// runHeadless handles --now and --report without starting the TUI.
func runHeadless(ctx context.Context, fixed *geoloc.Result, logger *logging.Logger) {
	res := resolveLocation(ctx, fixed)
	if res.Fallback {
		logger.Warn("%s", res.Advisory)
	}
	obs := astro.Observer{LatDeg: res.Point.Latitude, LonDeg: res.Point.Longitude}

	outputOnce := func() {
		now := time.Now()
		snap := almanac.Local{}.Compute(now, obs)
		phase := moonphase.Compute(now)

		if nowMode {
			writeNowLine(os.Stdout, now, snap, phase)
			return
		}
		writeReport(os.Stdout, now, obs, snap, phase)
	}

	outputOnce()
	if watchInterval == 0 {
		return
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if reportMode {
				fmt.Println()
			}
			outputOnce()
		}
	}
}

func writeNowLine(w io.Writer, now time.Time, snap almanac.Snapshot, phase moonphase.State) {
	sunAltDeg := snap.Sun.Alt * 180 / math.Pi
	moonAltDeg := snap.Moon.Alt * 180 / math.Pi
	fmt.Fprintf(w, "%s | %s | sun %+.1f° | moon %+.1f° (%.0f%% lit) | %c %s\n",
		now.Format("15:04:05"),
		sky.Classify(snap.Sun.Alt),
		sunAltDeg,
		moonAltDeg,
		snap.MoonIllumination*100,
		phase.Phase.Glyph(),
		phase.Phase)
}

func writeReport(w io.Writer, now time.Time, obs astro.Observer, snap almanac.Snapshot, phase moonphase.State) {
	clock := func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("15:04")
	}

	fmt.Fprintf(w, "Almanac for %.4f, %.4f on %s\n", obs.LatDeg, obs.LonDeg, now.Format("2006-01-02"))
	fmt.Fprintf(w, "  Sunrise      %s\n", clock(snap.Sunrise))
	fmt.Fprintf(w, "  Solar noon   %s\n", clock(snap.SolarNoon))
	fmt.Fprintf(w, "  Sunset       %s\n", clock(snap.Sunset))
	if snap.Moonrise != nil {
		fmt.Fprintf(w, "  Moonrise     %s\n", clock(*snap.Moonrise))
	}
	if snap.Moonset != nil {
		fmt.Fprintf(w, "  Moonset      %s\n", clock(*snap.Moonset))
	}
	fmt.Fprintf(w, "  Illumination %.0f%%\n", snap.MoonIllumination*100)
	fmt.Fprintf(w, "  Phase        %s (%.1f days)\n", phase.Phase, phase.AgeDays)
}
