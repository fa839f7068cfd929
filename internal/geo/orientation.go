package geo

import "strings"

// OrientationToAngle maps a compass label to a signed azimuth in degrees
// using the PVGIS convention: 0 is due south, negative values are east of
// south, positive values west of south, and ±180 is north. Abbreviated
// ("SE"), spelled-out ("southeast") and underscored ("south_east") forms are
// accepted; anything unrecognized defaults to due south rather than failing.
func OrientationToAngle(orientation string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(orientation))
	normalized = strings.ReplaceAll(normalized, "_", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, " ", "")

	switch normalized {
	case "s", "south":
		return 0
	case "se", "southeast":
		return -45
	case "sw", "southwest":
		return 45
	case "e", "east":
		return -90
	case "w", "west":
		return 90
	case "ne", "northeast":
		return -135
	case "nw", "northwest":
		return 135
	case "n", "north":
		return 180
	default:
		return 0
	}
}
