package main

import (
	"fmt"

	"github.com/PrincessGod/plc/pkg/analysis"
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/spf13/cobra"
)

var (
	lon1, lat1, h1 float64
	lon2, lat2, h2 float64
	cameraHeight   float64
)

var distanceCmd = &cobra.Command{
	Use:   "distance",
	Short: "Measure the distance between two geodetic positions",
	Long: `Measure the distance between two positions given in degrees and meters.
Below the configured camera height threshold the straight chord is used,
above it the distance over the ellipsoid surface.`,
	Args: cobra.NoArgs,
	RunE: runDistance,
}

func init() {
	rootCmd.AddCommand(distanceCmd)

	distanceCmd.Flags().Float64Var(&lon1, "lon1", 0.0, "Longitude of the first position in degrees")
	distanceCmd.Flags().Float64Var(&lat1, "lat1", 0.0, "Latitude of the first position in degrees")
	distanceCmd.Flags().Float64Var(&h1, "h1", 0.0, "Height of the first position in meters")
	distanceCmd.Flags().Float64Var(&lon2, "lon2", 0.0, "Longitude of the second position in degrees")
	distanceCmd.Flags().Float64Var(&lat2, "lat2", 0.0, "Latitude of the second position in degrees")
	distanceCmd.Flags().Float64Var(&h2, "h2", 0.0, "Height of the second position in meters")
	distanceCmd.Flags().Float64Var(&cameraHeight, "camera-height", 1000.0, "Height of the viewpoint in meters")

	distanceCmd.MarkFlagsRequiredTogether("lon1", "lat1", "lon2", "lat2")
}

func runDistance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	calc := cfg.Calculator()

	a := calc.Ellipsoid.PointFromCartographic(geodesy.FromDegrees(lon1, lat1, h1))
	b := calc.Ellipsoid.PointFromCartographic(geodesy.FromDegrees(lon2, lat2, h2))

	chord := a.Cartesian().Distance(b.Cartesian())
	surface := calc.SurfaceDistance(a, b)
	selected := calc.Distance(a, b, cameraHeight)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, heading("Distance Measurement"))
	fmt.Fprintf(out, "  From: %s\n", a.Cartographic())
	fmt.Fprintf(out, "  To:   %s\n\n", b.Cartographic())
	fmt.Fprintf(out, "  Chord:    %.3f m\n", chord)
	fmt.Fprintf(out, "  Surface:  %.3f m\n", surface)

	method := "chord"
	if cameraHeight >= calc.GeoDistanceCameraHeight {
		method = "surface"
	}
	fmt.Fprintf(out, "  Selected: %s (%s at camera height %.0f m)\n", analysis.FormatLength(selected), method, cameraHeight)
	fmt.Fprintf(out, "  Midpoint: %s\n", calc.Midpoint(a, b).Cartographic())
	return nil
}
