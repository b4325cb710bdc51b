package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarajLabs/maraj-go/internal/application/services"
)

// RegionHandler serves the region CRUD endpoints.
type RegionHandler struct {
	regionService *services.RegionService
	streetService *services.StreetService
}

func NewRegionHandler(regionService *services.RegionService, streetService *services.StreetService) *RegionHandler {
	return &RegionHandler{regionService: regionService, streetService: streetService}
}

type regionRequest struct {
	Name  string `json:"name" binding:"required"`
	Notes string `json:"notes"`
}

// List handles GET /api/v1/regions
func (h *RegionHandler) List(c *gin.Context) {
	regions, err := h.regionService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, regions)
}

// Get handles GET /api/v1/regions/:id
func (h *RegionHandler) Get(c *gin.Context) {
	region, err := h.regionService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, region)
}

// Streets handles GET /api/v1/regions/:id/streets
func (h *RegionHandler) Streets(c *gin.Context) {
	if _, err := h.regionService.GetByID(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	streets, err := h.streetService.GetByRegion(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, streets)
}

// Create handles POST /api/v1/regions
func (h *RegionHandler) Create(c *gin.Context) {
	var req regionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	region, err := h.regionService.Create(req.Name, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, region)
}

// Update handles PUT /api/v1/regions/:id
func (h *RegionHandler) Update(c *gin.Context) {
	var req regionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	region, err := h.regionService.Update(c.Param("id"), req.Name, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, region)
}

// Delete handles DELETE /api/v1/regions/:id
func (h *RegionHandler) Delete(c *gin.Context) {
	if err := h.regionService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
