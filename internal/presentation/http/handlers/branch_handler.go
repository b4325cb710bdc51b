package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarajLabs/maraj-go/internal/application/services"
)

// BranchHandler serves the branch CRUD and product assignment endpoints.
type BranchHandler struct {
	branchService *services.BranchService
}

func NewBranchHandler(branchService *services.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

type assignmentsRequest struct {
	ProductIDs []string `json:"productIds"`
}

// List handles GET /api/v1/branches
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branchService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, branches)
}

// Get handles GET /api/v1/branches/:id
func (h *BranchHandler) Get(c *gin.Context) {
	branch, err := h.branchService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, branch)
}

// Create handles POST /api/v1/branches
func (h *BranchHandler) Create(c *gin.Context) {
	var input services.BranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	branch, err := h.branchService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, branch)
}

// Update handles PUT /api/v1/branches/:id
func (h *BranchHandler) Update(c *gin.Context) {
	var input services.BranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	branch, err := h.branchService.Update(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, branch)
}

// SetProducts handles PUT /api/v1/branches/:id/products, replacing the
// branch's whole assignment list and reconciling archive flags.
func (h *BranchHandler) SetProducts(c *gin.Context) {
	var req assignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	branch, err := h.branchService.SetAssignments(c.Param("id"), req.ProductIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, branch)
}

// Delete handles DELETE /api/v1/branches/:id
func (h *BranchHandler) Delete(c *gin.Context) {
	if err := h.branchService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
