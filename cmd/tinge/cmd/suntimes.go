package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tingeapp/tinge/internal/suntime"
)

var (
	suntimesLat float64
	suntimesLon float64
)

var suntimesCmd = &cobra.Command{
	Use:   "suntimes",
	Short: "Show today's sunrise and sunset",
	Long: `Compute sunrise and sunset for the configured location (or --lat/--lon)
using the NOAA solar approximation. These are the times sunrise scheduling
mode switches between light and dark themes.`,
	RunE: runSuntimes,
}

func init() {
	suntimesCmd.Flags().Float64Var(&suntimesLat, "lat", 0, "latitude in degrees (overrides config)")
	suntimesCmd.Flags().Float64Var(&suntimesLon, "lon", 0, "longitude in degrees (overrides config)")
	suntimesCmd.MarkFlagsRequiredTogether("lat", "lon")
	rootCmd.AddCommand(suntimesCmd)
}

func runSuntimes(cmd *cobra.Command, args []string) error {
	lat, lon := suntimesLat, suntimesLon
	if !cmd.Flags().Changed("lat") {
		if !cfg.Location.Set() {
			return fmt.Errorf("no location configured; set location.latitude/longitude or pass --lat/--lon")
		}
		lat, lon = cfg.Location.Latitude, cfg.Location.Longitude
	}

	now := time.Now()
	times := suntime.Times(lat, lon, now)

	fmt.Printf("Location: %.4f, %.4f\n", lat, lon)
	fmt.Printf("Sunrise:  %s\n", times.Sunrise.Format("15:04 MST"))
	fmt.Printf("Sunset:   %s\n", times.Sunset.Format("15:04 MST"))
	if suntime.IsDaytime(lat, lon, now) {
		fmt.Println("It is currently daytime.")
	} else {
		fmt.Println("It is currently nighttime.")
	}
	return nil
}
