// Package httpapi wires the gin HTTP surface: /sub and friends, /getprofile,
// /getruleset, and /version, grounded in the teacher's main() route table
// and original_source/web_handlers/web_api.rs's config().
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewEngine builds the gin engine with middleware and routes registered,
// the way the teacher's main() builds r := gin.New() then wires routes.
func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger())

	r.GET("/health", healthHandler)
	r.GET("/version", versionHandler)
	r.GET("/sub", subHandler)
	r.GET("/surge2clash", surgeToClashHandler)
	r.GET("/getprofile", profileHandler)
	r.GET("/getruleset", rulesetHandler)
	r.GET("/:target", targetHandler)

	return r
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
