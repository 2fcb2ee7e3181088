package handler

import (
	"net/http"
	"strconv"

	"utsavdarshan/internal/middleware"
	"utsavdarshan/internal/models"
	"utsavdarshan/internal/service"

	"github.com/gin-gonic/gin"
)

type PandalHandler struct {
	dir *service.DirectoryService
	reg *service.RegistrationService
}

func NewPandalHandler(dir *service.DirectoryService, reg *service.RegistrationService) *PandalHandler {
	return &PandalHandler{dir: dir, reg: reg}
}

// List returns pandals in directory order with their rating summaries.
func (h *PandalHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "limit", "must be an integer")
			return
		}
		limit = n
	}
	out, err := h.dir.ListWithRatings(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pandals": out, "count": len(out)})
}

func (h *PandalHandler) Featured(c *gin.Context) {
	out, err := h.dir.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pandals": out})
}

func (h *PandalHandler) Get(c *gin.Context) {
	out, err := h.dir.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PandalHandler) Ratings(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	ratings, err := h.dir.Ratings(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.dir.RatingSummary(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings, "summary": summary})
}

// Search filters by theme, idol_type and area; with lat/lon the matches are
// also limited to the radius and ordered by distance.
func (h *PandalHandler) Search(c *gin.Context) {
	f := service.Filter{Theme: c.Query("theme"), IdolType: c.Query("idol_type"), Area: c.Query("area")}
	q, near, err := nearbyQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	if near {
		out, err := h.dir.FilterNearby(ctx, f, q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"pandals": out, "count": len(out)})
		return
	}
	out, err := h.dir.Filter(ctx, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pandals": out, "count": len(out)})
}

func (h *PandalHandler) Nearby(c *gin.Context) {
	q, present, err := nearbyQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if !present {
		badRequest(c, "lat", "is required")
		return
	}
	out, err := h.dir.Nearby(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pandals": out, "count": len(out)})
}

// Register geocodes and stores a submitted pandal.
func (h *PandalHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "body", "must be a JSON object")
		return
	}
	in.SubmittedBy = middleware.GetUserID(c)
	res, err := h.reg.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *PandalHandler) Update(c *gin.Context) {
	var u models.PandalUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, "body", "must be a JSON object")
		return
	}
	p, err := h.dir.UpdatePandal(c.Request.Context(), c.Param("id"), u)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PandalHandler) Rate(c *gin.Context) {
	var req struct {
		Score   int    `json:"score"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body", "must be a JSON object")
		return
	}
	r, err := h.dir.RatePandal(c.Request.Context(), service.RatingInput{
		PandalID: c.Param("id"),
		UserID:   middleware.GetUserID(c),
		Score:    req.Score,
		Comment:  req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *PandalHandler) Visit(c *gin.Context) {
	v, err := h.dir.RecordVisit(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}
