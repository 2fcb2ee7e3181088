package handler

import (
	"net/http"

	"utsavdarshan/internal/middleware"
	"utsavdarshan/internal/service"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	authSvc *service.AuthService
	dir     *service.DirectoryService
}

func NewMeHandler(authSvc *service.AuthService, dir *service.DirectoryService) *MeHandler {
	return &MeHandler{authSvc: authSvc, dir: dir}
}

// GetProfile returns the signed-in user.
func (h *MeHandler) GetProfile(c *gin.Context) {
	u, err := h.authSvc.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Visits lists the user's check-ins, newest first.
func (h *MeHandler) Visits(c *gin.Context) {
	visits, err := h.dir.Visits(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": visits})
}

// Badges returns the badges the user holds and the next one to earn.
func (h *MeHandler) Badges(c *gin.Context) {
	progress, err := h.dir.BadgeProgress(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// BadgeCatalogue lists every badge that can be earned.
func (h *MeHandler) BadgeCatalogue(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"badges": service.Badges})
}
