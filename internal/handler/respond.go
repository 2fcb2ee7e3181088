package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps service errors onto the JSON error body.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "code": "validation_error", "fields": verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": "not_found"})
	case errors.Is(err, domain.ErrUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable", "code": "unavailable"})
	default:
		_ = c.Error(err)
		logrus.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "internal"})
	}
}

func badRequest(c *gin.Context, field, msg string) {
	respondError(c, &service.ValidationError{Fields: map[string]string{field: msg}})
}

// queryFloat parses an optional float query parameter. ok is false when absent.
func queryFloat(c *gin.Context, key string) (v float64, ok bool, err error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, &service.ValidationError{Fields: map[string]string{key: "must be a number"}}
	}
	return v, true, nil
}

// nearbyQuery reads lat, lon and radius. present is false when neither lat nor lon is set.
func nearbyQuery(c *gin.Context) (q service.NearbyQuery, present bool, err error) {
	lat, hasLat, err := queryFloat(c, "lat")
	if err != nil {
		return q, false, err
	}
	lon, hasLon, err := queryFloat(c, "lon")
	if err != nil {
		return q, false, err
	}
	radius, _, err := queryFloat(c, "radius")
	if err != nil {
		return q, false, err
	}
	if !hasLat && !hasLon {
		return q, false, nil
	}
	if !hasLat || !hasLon {
		field := "lat"
		if hasLat {
			field = "lon"
		}
		return q, false, &service.ValidationError{Fields: map[string]string{field: "is required with a location"}}
	}
	return service.NearbyQuery{Lat: lat, Lon: lon, RadiusMeters: radius}, true, nil
}
