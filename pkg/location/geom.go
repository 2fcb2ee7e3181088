package location

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
)

// SRID of WGS84 coordinates.
const SRID = 4326

var ErrNotPoint = errors.New("geometry is not a point")

// Geom converts p into a go-geom XY point (x = lon, y = lat).
func (p Point) Geom() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{p.Lon, p.Lat}).SetSRID(SRID)
}

// FromGeom extracts a validated Point from a go-geom geometry.
func FromGeom(g geom.T) (Point, error) {
	gp, ok := g.(*geom.Point)
	if !ok || gp == nil {
		return Point{}, ErrNotPoint
	}
	if gp.Empty() {
		return Point{}, fmt.Errorf("%w: empty", ErrNotPoint)
	}
	p := Point{Lon: gp.X(), Lat: gp.Y()}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}
