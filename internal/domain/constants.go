package domain

import "errors"

const (
	RoleVisitor = "VISITOR"
	RoleAdmin   = "ADMIN"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StoreMySQL    = "mysql"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Where a registered pandal's coordinates came from.
const (
	LocationSourceGeocoder = "geocoder"
	LocationSourceSupplied = "supplied"
	LocationSourceNone     = "none"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable wraps store and collaborator failures.
	ErrUnavailable = errors.New("service unavailable")
)

// Suggested search radii in meters for clients.
var SearchRadiusMeters = []float64{500, 1000, 2000, 5000, 10000}
