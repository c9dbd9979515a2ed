package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/astropulse/internal/domain/dto"
	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/neo"
)

// GetEarthEvents godoc
// @Summary      Natural events
// @Description  EONET events active within the last days, optionally filtered by category id.
// @Tags         earth
// @Produce      json
// @Param        category  query     string  false  "EONET category id" example(wildfires)
// @Param        days      query     int     false  "Recency window in days" default(30)
// @Success      200       {array}   models.EarthEvent
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      502       {object}  dto.ErrorResponse
// @Router       /api/v1/earth/events [get]
func (h *Handler) GetEarthEvents(c *gin.Context) {
	var q models.EventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badQuery(c, "query", err)
		return
	}
	events, err := h.svc.Earth.Events(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEarthCategories godoc
// @Summary      Natural event categories
// @Tags         earth
// @Produce      json
// @Success      200  {array}   models.EventCategory
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/v1/earth/categories [get]
func (h *Handler) GetEarthCategories(c *gin.Context) {
	cats, err := h.svc.Earth.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// GetEarthImagery godoc
// @Summary      Landsat imagery
// @Tags         earth
// @Produce      json
// @Param        lat   query     number  true   "Latitude" example(29.78)
// @Param        lon   query     number  true   "Longitude" example(-95.33)
// @Param        date  query     string  false  "Date in YYYY-MM-DD (default today)"
// @Param        dim   query     number  false  "Tile width and height in degrees" default(0.025)
// @Success      200   {object}  models.EarthImagery
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/v1/earth/imagery [get]
func (h *Handler) GetEarthImagery(c *gin.Context) {
	var q models.ImageryQuery
	if !bindLocation(c, &q) {
		return
	}
	img, err := h.svc.Earth.Imagery(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, img)
}

// GetEarthCompare godoc
// @Summary      Before and after imagery
// @Description  Fetches the same location at two dates.
// @Tags         earth
// @Produce      json
// @Param        lat    query     number  true  "Latitude"
// @Param        lon    query     number  true  "Longitude"
// @Param        date1  query     string  true  "Earlier date in YYYY-MM-DD"
// @Param        date2  query     string  true  "Later date in YYYY-MM-DD"
// @Success      200    {object}  dto.CompareImageryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      502    {object}  dto.ErrorResponse
// @Router       /api/v1/earth/compare [get]
func (h *Handler) GetEarthCompare(c *gin.Context) {
	var q models.CompareQuery
	if !bindLocation(c, &q) {
		return
	}
	before, after, err := h.svc.Earth.Compare(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CompareImageryResponse{Before: before, After: after})
}

// GetEarthAssets godoc
// @Summary      Landsat acquisition dates
// @Tags         earth
// @Produce      json
// @Param        lat         query     number  true   "Latitude"
// @Param        lon         query     number  true   "Longitude"
// @Param        begin_date  query     string  false  "First date in YYYY-MM-DD"
// @Param        end_date    query     string  false  "Last date in YYYY-MM-DD"
// @Success      200         {array}   models.EarthAsset
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      502         {object}  dto.ErrorResponse
// @Router       /api/v1/earth/assets [get]
func (h *Handler) GetEarthAssets(c *gin.Context) {
	var q models.AssetsQuery
	if !bindLocation(c, &q) {
		return
	}
	assets, err := h.svc.Earth.Assets(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// bindLocation binds the query into q after checking that lat and lon are
// present. A zero coordinate is valid, so presence is checked on the raw
// parameters.
func bindLocation(c *gin.Context, q any) bool {
	for _, name := range []string{"lat", "lon"} {
		if c.Query(name) == "" {
			writeError(c, &neo.ValidationError{Field: name, Reason: name + " is required"})
			return false
		}
	}
	if err := c.ShouldBindQuery(q); err != nil {
		badQuery(c, "query", err)
		return false
	}
	return true
}
