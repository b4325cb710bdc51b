package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarajLabs/maraj-go/internal/application/services"
)

// StreetHandler serves the street CRUD endpoints.
type StreetHandler struct {
	streetService *services.StreetService
	branchService *services.BranchService
}

func NewStreetHandler(streetService *services.StreetService, branchService *services.BranchService) *StreetHandler {
	return &StreetHandler{streetService: streetService, branchService: branchService}
}

type streetRequest struct {
	Name     string  `json:"name" binding:"required"`
	Notes    string  `json:"notes"`
	RegionID *string `json:"regionId"`
}

// List handles GET /api/v1/streets
func (h *StreetHandler) List(c *gin.Context) {
	streets, err := h.streetService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, streets)
}

// Get handles GET /api/v1/streets/:id
func (h *StreetHandler) Get(c *gin.Context) {
	street, err := h.streetService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, street)
}

// Branches handles GET /api/v1/streets/:id/branches
func (h *StreetHandler) Branches(c *gin.Context) {
	if _, err := h.streetService.GetByID(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	branches, err := h.branchService.GetByStreet(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, branches)
}

// Create handles POST /api/v1/streets
func (h *StreetHandler) Create(c *gin.Context) {
	var req streetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	street, err := h.streetService.Create(req.Name, req.Notes, req.RegionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, street)
}

// Update handles PUT /api/v1/streets/:id
func (h *StreetHandler) Update(c *gin.Context) {
	var req streetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	street, err := h.streetService.Update(c.Param("id"), req.Name, req.Notes, req.RegionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, street)
}

// Delete handles DELETE /api/v1/streets/:id
func (h *StreetHandler) Delete(c *gin.Context) {
	if err := h.streetService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
