// Package handlers contains the gin HTTP handlers for the API surface.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarajLabs/maraj-go/internal/application/services"
)

// respondError maps service errors to status codes: missing entities are
// 404s, everything else is a 500 with the wrapped message.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
