package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
	"github.com/alkias2/SolunarBase/internal/infra/astro"
	"github.com/alkias2/SolunarBase/internal/infra/localstore"
)

var forecastFlags struct {
	Lat        float64
	Lon        float64
	Date       string
	Timezone   string
	Resolution string
	NoCache    bool
	Verbose    bool
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Compute the solunar activity forecast for one day",
	Example: `  solunarctl forecast --lat 59.33 --lon 18.07
  solunarctl forecast --lat 27.95 --lon -82.46 --date 2025-03-01 --tz America/New_York`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		if forecastFlags.Verbose {
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		}

		date := forecastFlags.Date
		if date == "" {
			date = time.Now().UTC().Format("2006-01-02")
		}

		cache, closeStore := openLocalStore(logger)
		if closeStore != nil {
			defer closeStore()
		}

		svc := solunar.NewService(
			solunar.Config{},
			astro.NewProvider(),
			cache,
			nil,
			logger,
		)
		result, err := svc.Forecast(cmd.Context(), solunar.Request{
			Latitude:   forecastFlags.Lat,
			Longitude:  forecastFlags.Lon,
			Date:       date,
			Timezone:   forecastFlags.Timezone,
			Resolution: solunar.Resolution(forecastFlags.Resolution),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printSummary(out, result)
		printPeriods(out, result)
		printActivity(out, result)
		if forecastFlags.Verbose && !result.Stats.IsZero() {
			fmt.Fprintf(cmd.ErrOrStderr(), "computed %d slices from %d altitude samples in %dms\n",
				result.Stats.SlicesScored, result.Stats.AltitudeSamples, result.Stats.ElapsedMillis)
		}
		return nil
	},
}

func init() {
	forecastCmd.Flags().Float64Var(&forecastFlags.Lat, "lat", 0, "latitude in decimal degrees")
	forecastCmd.Flags().Float64Var(&forecastFlags.Lon, "lon", 0, "longitude in decimal degrees")
	forecastCmd.Flags().StringVar(&forecastFlags.Date, "date", "", "forecast date YYYY-MM-DD (default: today)")
	forecastCmd.Flags().StringVar(&forecastFlags.Timezone, "tz", "", "IANA time zone for local times (default: UTC)")
	forecastCmd.Flags().StringVar(&forecastFlags.Resolution, "resolution", "", "slice resolution: hour or quarter")
	forecastCmd.Flags().BoolVar(&forecastFlags.NoCache, "no-cache", false, "bypass the local forecast store")
	forecastCmd.Flags().BoolVar(&forecastFlags.Verbose, "verbose", false, "log engine activity to stderr")
	_ = forecastCmd.MarkFlagRequired("lat")
	_ = forecastCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(forecastCmd)
}

// openLocalStore opens the bbolt forecast store under the user config dir.
// Failures degrade to no caching rather than aborting the command.
func openLocalStore(logger *slog.Logger) (solunar.Cache, func()) {
	if forecastFlags.NoCache {
		return nil, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		logger.Warn("user config dir unavailable, caching disabled", "error", err)
		return nil, nil
	}
	store, err := localstore.Open(filepath.Join(base, "solunarctl", "forecasts.db"))
	if err != nil {
		logger.Warn("local store unavailable, caching disabled", "error", err)
		return nil, nil
	}
	return store, func() { _ = store.Close() }
}

func printSummary(w io.Writer, result solunar.Result) {
	fmt.Fprintf(w, "Solunar forecast for %s at (%.4f, %.4f) [%s]\n",
		result.Date, result.Latitude, result.Longitude, result.Timezone)
	fmt.Fprintf(w, "Moon: %s (%.0f%% illuminated)   Rating: %s (avg %.1f)\n\n",
		phaseLabel(result.MoonPhase.Phase), result.MoonPhase.Illumination*100,
		result.Rating, result.AverageScore)
}

func printPeriods(w io.Writer, result solunar.Result) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"PERIOD", "KIND", "START", "CENTER", "END"})
	tw.SetBorder(true)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	for _, p := range result.MajorPeriods {
		tw.Append([]string{"Major", kindLabel(p.Kind), clock(p.LocalStart), clock(p.LocalCenter), clock(p.LocalEnd)})
	}
	for _, p := range result.MinorPeriods {
		tw.Append([]string{"Minor", kindLabel(p.Kind), clock(p.LocalStart), clock(p.LocalCenter), clock(p.LocalEnd)})
	}
	tw.Render()
	fmt.Fprintln(w)
}

func printActivity(w io.Writer, result solunar.Result) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"TIME", "SCORE", "ACTIVITY"})
	tw.SetBorder(true)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	tw.SetAutoWrapText(false)

	for _, s := range result.Samples {
		tw.Append([]string{
			fmt.Sprintf("%02d:%02d", s.Hour, s.Minute),
			fmt.Sprintf("%d", s.Score),
			strings.Repeat("#", s.Score/5),
		})
	}
	tw.Render()
}

func kindLabel(kind solunar.PeriodKind) string {
	switch kind {
	case solunar.PeriodUpperTransit:
		return "Upper transit"
	case solunar.PeriodLowerTransit:
		return "Lower transit"
	case solunar.PeriodMoonrise:
		return "Moonrise"
	case solunar.PeriodMoonset:
		return "Moonset"
	default:
		return string(kind)
	}
}

func phaseLabel(phase solunar.MoonPhase) string {
	label := strings.ReplaceAll(string(phase), "_", " ")
	if label == "" {
		return "unknown"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// clock reduces an RFC3339 local timestamp to HH:MM for table display.
func clock(rfc3339 string) string {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return t.Format("15:04")
}
