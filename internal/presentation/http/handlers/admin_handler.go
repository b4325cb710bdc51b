package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarajLabs/maraj-go/internal/application/services"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/performance"
)

// AdminHandler serves the maintenance endpoints.
type AdminHandler struct {
	consistencyService *services.ConsistencyService
	perfTracker        *performance.Tracker
}

func NewAdminHandler(consistencyService *services.ConsistencyService, perfTracker *performance.Tracker) *AdminHandler {
	return &AdminHandler{consistencyService: consistencyService, perfTracker: perfTracker}
}

// Reconcile handles POST /api/v1/admin/reconcile, forcing a full archive
// consistency pass and reporting what flipped.
func (h *AdminHandler) Reconcile(c *gin.Context) {
	report, err := h.consistencyService.Reconcile()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"changed":      report.Changed(),
		"autoArchived": report.AutoArchived,
		"unarchived":   report.Unarchived,
	})
}

// Performance handles GET /api/v1/admin/performance, the per-operation
// timing summary from the in-memory tracker.
func (h *AdminHandler) Performance(c *gin.Context) {
	c.JSON(http.StatusOK, h.perfTracker.Summary())
}
