package handler

import (
	"bytes"
	"net/http"

	"utsavdarshan/internal/service"

	"github.com/gin-gonic/gin"
)

const maxImportBytes = 20 << 20

type GeoJSONHandler struct {
	importer *service.Importer
}

func NewGeoJSONHandler(importer *service.Importer) *GeoJSONHandler {
	return &GeoJSONHandler{importer: importer}
}

// Export writes every pandal as a GeoJSON FeatureCollection.
func (h *GeoJSONHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.importer.Export(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", buf.Bytes())
}

// Import loads a FeatureCollection from the request body.
func (h *GeoJSONHandler) Import(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	report, err := h.importer.Import(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
