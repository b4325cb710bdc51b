package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarajLabs/maraj-go/internal/application/services"
)

// CatalogHandler serves the public read side: filtered catalog views,
// shareable URLs, the store snapshot and the export document.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Query handles GET /api/v1/catalog. All filters arrive as query parameters;
// location and category come slug-coded, the rest pass through as scalars.
func (h *CatalogHandler) Query(c *gin.Context) {
	view, err := h.catalogService.Query(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ShareURL handles GET /api/v1/catalog/url, returning the canonical
// shareable path for the given filters. An optional productId query pins the
// URL to that product's detail view.
func (h *CatalogHandler) ShareURL(c *gin.Context) {
	params := c.Request.URL.Query()
	productID := params.Get("productId")
	params.Del("productId")

	url, err := h.catalogService.ShareURL(params, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Snapshot handles GET /api/v1/store, the full store read used by admin UIs.
func (h *CatalogHandler) Snapshot(c *gin.Context) {
	snap, err := h.catalogService.Snapshot()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Export handles GET /api/v1/store/export.
func (h *CatalogHandler) Export(c *gin.Context) {
	doc, err := h.catalogService.Export()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="store-export.json"`)
	c.JSON(http.StatusOK, doc)
}

// Stats handles GET /api/v1/admin/stats.
func (h *CatalogHandler) Stats(c *gin.Context) {
	stats, err := h.catalogService.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
