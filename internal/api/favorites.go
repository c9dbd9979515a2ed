package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/astropulse/internal/domain/dto"
	"github.com/guttosm/astropulse/internal/middleware"
	"github.com/guttosm/astropulse/internal/validation"
)

// ListFavorites godoc
// @Summary      List favorites
// @Description  The caller's favorites, newest first, 8 per page.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Success      200   {object}  models.FavoritePage
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/favorites [get]
func (h *Handler) ListFavorites(c *gin.Context) {
	page, ok := intQuery(c, "page")
	if !ok {
		return
	}
	out, err := h.svc.Favorites.List(c.Request.Context(), middleware.UserID(c), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ToggleAPODFavorite godoc
// @Summary      Toggle an APOD favorite
// @Description  Adds the APOD of the given date to the caller's favorites, or removes it when already present. The APOD must have been served before.
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ToggleAPODFavoriteRequest  true  "APOD date"
// @Success      200   {object}  dto.ToggleFavoriteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/favorites/apod [post]
func (h *Handler) ToggleAPODFavorite(c *gin.Context) {
	var req dto.ToggleAPODFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badQuery(c, "body", err)
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeError(c, err)
		return
	}

	fav, on, err := h.svc.Favorites.ToggleAPOD(c.Request.Context(), middleware.UserID(c), req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToggleFavoriteResponse{NasaID: fav.NasaID, IsFavorite: on})
}

// DeleteFavorite godoc
// @Summary      Remove a favorite
// @Tags         favorites
// @Security     BearerAuth
// @Param        id  path  int  true  "Favorite id"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/favorites/{id} [delete]
func (h *Handler) DeleteFavorite(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badQuery(c, "id", err)
		return
	}
	if err := h.svc.Favorites.Remove(c.Request.Context(), middleware.UserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
