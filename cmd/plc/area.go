package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PrincessGod/plc/pkg/analysis"
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/spf13/cobra"
)

var (
	areaPoints  []string
	areaFlatten bool
)

var areaCmd = &cobra.Command{
	Use:   "area",
	Short: "Measure the area of a polygon",
	Long: `Measure the area of a polygon given as lon,lat[,height] vertices.
The polygon is triangulated in its best fitting plane; degenerate input has no area.`,
	Example: `  plc area --point 116.39,39.9 --point 116.391,39.9 --point 116.391,39.901`,
	Args:    cobra.NoArgs,
	RunE:    runArea,
}

func init() {
	rootCmd.AddCommand(areaCmd)

	areaCmd.Flags().StringArrayVarP(&areaPoints, "point", "p", nil, "Vertex as lon,lat[,height] (repeatable)")
	areaCmd.Flags().BoolVar(&areaFlatten, "flatten", false, "Project the vertices onto the ellipsoid first")
	_ = areaCmd.MarkFlagRequired("point")
}

func parsePosition(s string) (geodesy.Cartographic, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return geodesy.Cartographic{}, fmt.Errorf("invalid position %q: expected lon,lat[,height]", s)
	}

	values := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geodesy.Cartographic{}, fmt.Errorf("invalid position %q: %w", s, err)
		}
		values[i] = v
	}
	return geodesy.FromDegrees(values[0], values[1], values[2]), nil
}

func runArea(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	calc := cfg.Calculator()

	vertices := make([]geodesy.Point, 0, len(areaPoints))
	for _, s := range areaPoints {
		c, err := parsePosition(s)
		if err != nil {
			return err
		}
		vertices = append(vertices, calc.Ellipsoid.PointFromCartographic(c))
	}
	if areaFlatten {
		vertices = calc.Flatten(vertices)
	}

	area := calc.PolygonArea(vertices)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, heading("Area Measurement"))
	fmt.Fprintf(out, "  Vertices: %d\n", len(vertices))
	fmt.Fprintf(out, "  Area:     %.3f m² (%s)\n", area, analysis.FormatArea(area))
	if center, ok := calc.PolygonCenter(vertices); ok {
		fmt.Fprintf(out, "  Center:   %s\n", center.Cartographic())
	}
	return nil
}
