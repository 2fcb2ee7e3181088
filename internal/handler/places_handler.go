package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/service"
	"utsavdarshan/pkg/geocode"
	"utsavdarshan/pkg/location"

	"github.com/gin-gonic/gin"
)

const placesRadiusMeters = 1000

// PlaceFinder looks up amenities around a point.
type PlaceFinder interface {
	NearbyPlaces(ctx context.Context, center location.Point, radiusMeters int, types []string) ([]geocode.Place, error)
}

type PlacesHandler struct {
	dir    *service.DirectoryService
	places PlaceFinder
}

// NewPlacesHandler accepts a nil finder; lookups then answer 503.
func NewPlacesHandler(dir *service.DirectoryService, places PlaceFinder) *PlacesHandler {
	return &PlacesHandler{dir: dir, places: places}
}

// NearbyPlaces lists hospitals, police stations and similar around a pandal.
func (h *PlacesHandler) NearbyPlaces(c *gin.Context) {
	if h.places == nil {
		respondError(c, fmt.Errorf("places lookup: %w", domain.ErrUnavailable))
		return
	}
	ctx := c.Request.Context()
	p, err := h.dir.GetPandal(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !p.HasLocation() {
		badRequest(c, "location", "pandal has no location")
		return
	}
	types := geocode.DefaultPlaceTypes
	if raw := c.Query("types"); raw != "" {
		types = nil
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}
	places, err := h.places.NearbyPlaces(ctx, *p.Location, placesRadiusMeters, types)
	if err != nil {
		respondError(c, fmt.Errorf("places lookup: %w: %w", domain.ErrUnavailable, err))
		return
	}
	if places == nil {
		places = []geocode.Place{}
	}
	c.JSON(http.StatusOK, gin.H{"pandal_id": p.ID, "places": places})
}
