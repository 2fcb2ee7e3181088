package handler

import (
	"net/http"

	"utsavdarshan/internal/service"

	"github.com/gin-gonic/gin"
)

type AreaHandler struct {
	dir *service.DirectoryService
}

func NewAreaHandler(dir *service.DirectoryService) *AreaHandler {
	return &AreaHandler{dir: dir}
}

func (h *AreaHandler) List(c *gin.Context) {
	groups, err := h.dir.GroupByArea(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": groups})
}

func (h *AreaHandler) Get(c *gin.Context) {
	g, err := h.dir.AreaPandals(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *AreaHandler) FilterOptions(c *gin.Context) {
	opts, err := h.dir.FilterOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}
