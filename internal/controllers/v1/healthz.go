package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
)

// RegisterHealthzRoutes registers the routes for the healthz endpoint.
func (co Controller) RegisterHealthzRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetHealthz)
}

// GetHealthz returns data about the application health
//
//	@Summary		Get health
//	@Description	Returns an empty response if the database can be reached
//	@Tags			General
//	@Success		204
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/healthz [get]
func (co Controller) GetHealthz(c *gin.Context) {
	sqlDB, err := co.db.DB()
	if err != nil {
		respondError(c, err)
		return
	}

	err = sqlDB.PingContext(c.Request.Context())
	if err != nil {
		respondError(c, fmt.Errorf("there is a problem with the database connection: %w", err))
		return
	}

	c.Status(http.StatusNoContent)
}
