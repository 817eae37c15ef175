package domain

// RouteType represents the driving profile of a trip.
type RouteType string

const (
	RouteCity    RouteType = "city"
	RouteMixed   RouteType = "mixed"
	RouteHighway RouteType = "highway"
)

// Valid reports whether the route type is one of the known profiles.
func (r RouteType) Valid() bool {
	switch r {
	case RouteCity, RouteMixed, RouteHighway:
		return true
	}
	return false
}

// Multiplier returns the consumption multiplier for the route profile.
// City driving burns more per km, highway less. Unknown values fall back
// to the mixed profile.
func (r RouteType) Multiplier() float64 {
	switch r {
	case RouteCity:
		return 1.15
	case RouteHighway:
		return 0.90
	default:
		return 1.0
	}
}
