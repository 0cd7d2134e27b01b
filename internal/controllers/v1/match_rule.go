package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/auth"
	"github.com/spendwise/backend/internal/categories"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
)

type MatchRuleResponse struct {
	Data models.MatchRule `json:"data"` // Data for the match rule
}

type MatchRuleListResponse struct {
	Data []models.MatchRule `json:"data"` // List of match rules, in the order they are applied
}

// RegisterMatchRuleRoutes registers the routes for match rules with
// the RouterGroup that is passed.
func (co Controller) RegisterMatchRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMatchRuleList)
		r.GET("", co.GetMatchRules)
		r.POST("", co.CreateMatchRule)
	}

	// Match rule with ID
	{
		r.OPTIONS("/:id", OptionsMatchRuleDetail)
		r.GET("/:id", co.GetMatchRule)
		r.PATCH("/:id", co.UpdateMatchRule)
		r.DELETE("/:id", co.DeleteMatchRule)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MatchRules
// @Success		204
// @Router			/v1/match-rules [options]
func OptionsMatchRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MatchRules
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/match-rules/{id} [options]
func OptionsMatchRuleDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create match rule
// @Description	Creates a new match rule
// @Tags			MatchRules
// @Accept			json
// @Produce		json
// @Success		201			{object}	MatchRuleResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			matchRule	body		categories.MatchRuleEditable	true	"Match rule"
// @Router			/v1/match-rules [post]
func (co Controller) CreateMatchRule(c *gin.Context) {
	var data categories.MatchRuleEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	rule, err := co.categories.CreateMatchRule(c.Request.Context(), auth.Owner(c), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MatchRuleResponse{Data: rule})
}

// @Summary		Get match rules
// @Description	Returns all match rules ordered by priority
// @Tags			MatchRules
// @Produce		json
// @Success		200	{object}	MatchRuleListResponse
// @Failure		401	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Router			/v1/match-rules [get]
func (co Controller) GetMatchRules(c *gin.Context) {
	rules, err := co.categories.ListMatchRules(c.Request.Context(), auth.Owner(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MatchRuleListResponse{Data: rules})
}

// @Summary		Get match rule
// @Description	Returns a specific match rule
// @Tags			MatchRules
// @Produce		json
// @Success		200	{object}	MatchRuleResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		403	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/match-rules/{id} [get]
func (co Controller) GetMatchRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	rule, err := co.categories.GetMatchRule(c.Request.Context(), auth.Owner(c), uri.ID.UUID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MatchRuleResponse{Data: rule})
}

// @Summary		Update match rule
// @Description	Update an existing match rule. Only values to be updated need to be specified.
// @Tags			MatchRules
// @Accept			json
// @Produce		json
// @Success		200			{object}	MatchRuleResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		403			{object}	httputil.HTTPError
// @Failure		404			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			id			path		URIID							true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			matchRule	body		categories.MatchRuleEditable	true	"Match rule"
// @Router			/v1/match-rules/{id} [patch]
func (co Controller) UpdateMatchRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	fields, err := httputil.GetBodyFields(c, categories.MatchRuleEditable{})
	if err != nil {
		respondError(c, err)
		return
	}

	var data categories.MatchRuleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	rule, err := co.categories.UpdateMatchRule(c.Request.Context(), auth.Owner(c), uri.ID.UUID, data, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MatchRuleResponse{Data: rule})
}

// @Summary		Delete match rule
// @Description	Deletes a match rule
// @Tags			MatchRules
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		403	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/match-rules/{id} [delete]
func (co Controller) DeleteMatchRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	err = co.categories.DeleteMatchRule(c.Request.Context(), auth.Owner(c), uri.ID.UUID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
