package viz

import "math"

type regionPoint struct {
	X float64
	Y float64
}

// Named-region coordinates on an abstract map grid. Regions not listed sit at
// the origin, so unknown pairs still produce a finite estimate.
var regionCoords = map[string]regionPoint{
	"village":   {X: 2, Y: 3},
	"town":      {X: 3, Y: 1},
	"city":      {X: 6, Y: 2},
	"forest":    {X: 5, Y: 7},
	"mountain":  {X: 9, Y: 4},
	"river":     {X: 4, Y: 5},
	"castle":    {X: 1, Y: 1},
	"coast":     {X: 0, Y: 8},
	"ruins":     {X: 8, Y: 9},
	"crossroad": {X: 4, Y: 2},
}

// msPerDistanceUnit converts map-grid distance into travel time.
const msPerDistanceUnit = 1000

// RegionDistance returns the Euclidean distance between two named regions on
// the map grid.
func RegionDistance(from, to string) float64 {
	a := regionCoords[from]
	b := regionCoords[to]
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// crossRegionEffects pairs the first region of each multi-region node against
// every subsequent one.
func crossRegionEffects(nodes []*Node) []CrossRegionEffect {
	var out []CrossRegionEffect
	for _, n := range nodes {
		if len(n.Regions) < 2 {
			continue
		}
		first := n.Regions[0]
		for _, other := range n.Regions[1:] {
			distance := RegionDistance(first, other)
			out = append(out, CrossRegionEffect{
				NodeID:       n.ID,
				FromRegion:   first,
				ToRegion:     other,
				Distance:     distance,
				TravelTimeMs: int64(distance * msPerDistanceUnit),
			})
		}
	}
	return out
}
