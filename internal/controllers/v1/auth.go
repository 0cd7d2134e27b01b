package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/auth"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
)

type UserResponse struct {
	Data models.User `json:"data"` // Data for the user
}

type TokenResponse struct {
	Data auth.Token `json:"data"` // The access token
}

// RegisterAuthRoutes registers the routes for registration and login with
// the RouterGroup that is passed.
//
// Registration and login do not need authentication, /me does.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", co.Register)
	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", co.Login)
	r.OPTIONS("/me", httputil.OptionsGet)
	r.GET("/me", co.Authenticate(), co.GetMe)
}

// @Summary		Register
// @Description	Creates a new user
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201				{object}	UserResponse
// @Failure		400				{object}	httputil.HTTPError
// @Failure		500				{object}	httputil.HTTPError
// @Param			registration	body		auth.Registration	true	"Registration"
// @Router			/v1/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var data auth.Registration
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := co.auth.Register(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Data: user})
}

// @Summary		Login
// @Description	Returns an access token for the user
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	TokenResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			credentials	body		auth.Credentials	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var data auth.Credentials
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := co.auth.Login(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Data: token})
}

// @Summary		Current user
// @Description	Returns the authenticated user
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Router			/v1/auth/me [get]
func (co Controller) GetMe(c *gin.Context) {
	user, err := co.auth.Me(c.Request.Context(), auth.Owner(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: user})
}
