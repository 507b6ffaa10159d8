// Package main implements the solunarctl CLI, a local front end for the
// solunar forecast engine. Forecasts are computed in-process; no server is
// required.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/alkias2/SolunarBase/pkg/errors"
)

var rootCmd = &cobra.Command{
	Use:   "solunarctl",
	Short: "Solunar activity forecasts on the command line",
	Long: `solunarctl predicts wildlife and fish activity for a day by combining
lunar transit timing with moon phase and daylight influences.

Quick start:
  solunarctl forecast --lat 59.33 --lon 18.07 --date 2025-06-15
  solunarctl forecast --lat -33.86 --lon 151.21 --tz Australia/Sydney --resolution quarter`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if code := apperrors.CodeOf(err); code != "" {
			fmt.Fprintf(os.Stderr, "Error (%s): %v\n", code, err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
