package geo

import (
	"context"
	"math"
)

// RoofFace is one declared roof plane with its installed panel count.
type RoofFace struct {
	Panels      int
	TiltDegrees *float64
	Orientation string
	Shading     string
}

// shadingDerates reduce the estimated output of obstructed faces. Unknown
// keys derate nothing.
var shadingDerates = map[string]float64{
	"none":  1.0,
	"some":  0.9,
	"a_lot": 0.8,
}

func derateFor(shading string) float64 {
	if d, ok := shadingDerates[shading]; ok {
		return d
	}
	return 1.0
}

// TotalAnnualYield resolves the postcode's coordinates once, queries the
// per-face yield sequentially for every face with installed panels, applies
// the shading derate and sums on raw floats. The caller rounds the total.
// Returns nil when no roof faces were declared.
func (c *Client) TotalAnnualYield(ctx context.Context, postcode string, roofs []RoofFace, panelWatt int) (*float64, error) {
	if len(roofs) == 0 {
		return nil, nil
	}

	loc, err := c.ResolveLatLon(ctx, postcode)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, face := range roofs {
		if face.Panels <= 0 {
			continue
		}

		tilt := defaultTiltDeg
		if face.TiltDegrees != nil && isFinite(*face.TiltDegrees) {
			tilt = *face.TiltDegrees
		}

		peakKwp := float64(face.Panels) * float64(panelWatt) / 1000.0
		yield, err := c.AnnualYieldForFace(ctx, loc, tilt, OrientationToAngle(face.Orientation), peakKwp)
		if err != nil {
			return nil, err
		}

		total += yield * derateFor(face.Shading)
	}

	total = math.Round(total)
	return &total, nil
}
