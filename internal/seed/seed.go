// Package seed loads the bundled demo pandals.
package seed

import (
	"bytes"
	"context"
	_ "embed"

	"utsavdarshan/internal/service"
)

//go:embed pandals.geojson
var demoPandals []byte

// Load imports the demo pandals through im.
func Load(ctx context.Context, im *service.Importer) (*service.ImportReport, error) {
	return im.Import(ctx, bytes.NewReader(demoPandals))
}
