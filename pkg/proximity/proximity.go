package proximity

// Label returns a display label for how close a pandal is, from closeness (0-100).
// Closeness = (1 - distance/radius) * 100; 100 = at the search point, 0 = at the edge.
func Label(closenessPct float64) string {
	switch {
	case closenessPct >= 75:
		return "Very Close"
	case closenessPct >= 50:
		return "Walkable"
	case closenessPct >= 25:
		return "Nearby"
	default:
		return "Within Range"
	}
}

// Closeness computes (1 - distance/radius) * 100, clamped to [0, 100].
// Both arguments must use the same unit.
func Closeness(distance, radius float64) float64 {
	if radius <= 0 || distance >= radius {
		return 0
	}
	p := (1 - distance/radius) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
