package postcode

// Region is the climate bucket a postcode area resolves to. YieldKWhPerKWp is
// the assumed annual generation per installed kWp for the bucket, and
// PriceMultiplier scales installation costs for the local market.
type Region struct {
	Key            string
	YieldKWhPerKWp float64
	PriceMultiplier float64
}

// DefaultRegion is used when a postcode area matches no known region.
var DefaultRegion = Region{Key: "default", YieldKWhPerKWp: 975, PriceMultiplier: 1.0}

type regionEntry struct {
	region Region
	areas  []string
}

// regionTable is ordered; the first entry containing the area wins. Areas
// shared between plausible buckets (e.g. the London compass districts) are
// claimed by the earlier entry.
var regionTable = []regionEntry{
	{
		region: Region{Key: "london", YieldKWhPerKWp: 950, PriceMultiplier: 1.1},
		areas: []string{
			"E", "EC", "N", "NW", "SE", "SW", "W", "WC",
			"BR", "CR", "DA", "EN", "HA", "IG", "KT", "RM", "SM", "TW", "UB", "WD",
		},
	},
	{
		region: Region{Key: "scotland", YieldKWhPerKWp: 850, PriceMultiplier: 0.95},
		areas: []string{
			"AB", "DD", "DG", "EH", "FK", "G", "HS", "IV", "KA", "KW", "KY",
			"ML", "PA", "PH", "TD", "ZE",
		},
	},
	{
		region: Region{Key: "wales", YieldKWhPerKWp: 950, PriceMultiplier: 1.0},
		areas:  []string{"CF", "LD", "LL", "NP", "SA", "SY"},
	},
	{
		region: Region{Key: "northern_ireland", YieldKWhPerKWp: 900, PriceMultiplier: 1.0},
		areas:  []string{"BT"},
	},
	{
		region: Region{Key: "south_west", YieldKWhPerKWp: 1050, PriceMultiplier: 1.0},
		areas: []string{
			"BA", "BH", "BS", "DT", "EX", "GL", "PL", "SN", "SP", "TA", "TQ", "TR",
		},
	},
	{
		region: Region{Key: "south_east", YieldKWhPerKWp: 1000, PriceMultiplier: 1.0},
		areas: []string{
			"AL", "BN", "CB", "CM", "CO", "CT", "GU", "HP", "IP", "LU", "ME",
			"MK", "NR", "OX", "PO", "RG", "RH", "SG", "SL", "SO", "SS", "TN",
		},
	},
	{
		region: Region{Key: "midlands", YieldKWhPerKWp: 950, PriceMultiplier: 1.0},
		areas: []string{
			"B", "CV", "DE", "DY", "HR", "LE", "LN", "NG", "NN", "PE", "ST",
			"TF", "WR", "WS", "WV",
		},
	},
	{
		region: Region{Key: "north", YieldKWhPerKWp: 900, PriceMultiplier: 1.0},
		areas: []string{
			"BB", "BD", "BL", "CA", "CH", "CW", "DH", "DL", "DN", "FY", "HD",
			"HG", "HU", "HX", "L", "LA", "LS", "M", "NE", "OL", "PR", "S",
			"SK", "SR", "TS", "WA", "WF", "WN", "YO",
		},
	},
}

// RegionFor looks up the region for a normalized postcode. First match in the
// static table wins; unmatched areas fall back to DefaultRegion.
func RegionFor(normalized string) Region {
	area := Area(normalized)
	if area == "" {
		return DefaultRegion
	}
	for _, entry := range regionTable {
		for _, a := range entry.areas {
			if a == area {
				return entry.region
			}
		}
	}
	return DefaultRegion
}
