package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/astropulse/internal/domain/dto"
	"github.com/guttosm/astropulse/internal/domain/models"
	"github.com/guttosm/astropulse/internal/neo"
	"github.com/guttosm/astropulse/internal/service"
)

// Services bundles the business services served over HTTP.
type Services struct {
	NEO       service.NEOService
	APOD      service.APODService
	Mars      service.MarsService
	Earth     service.EarthService
	ISS       service.ISSService
	Favorites service.FavoritesService
}

// Handler provides the HTTP handlers of the /api/v1 surface.
//
// Responsibilities:
//   - Parse query parameters and request bodies
//   - Delegate to the service layer with the request context
//   - Translate results into response DTOs and errors through writeError
type Handler struct {
	svc Services
}

// NewHandler constructs a Handler over the given services.
func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// GetNEOSummary handles GET /api/v1/neo/summary.
//
// GetNEOSummary godoc
// @Summary      Near-Earth object summary
// @Description  Aggregates the NeoWs feed over an inclusive date range. Ranges longer than 7 days are fetched in windows and produce a warning.
// @Tags         neo
// @Produce      json
// @Param        start_date  query     string  false  "Start date in YYYY-MM-DD (default today)" example(2024-01-01)
// @Param        end_date    query     string  false  "End date in YYYY-MM-DD (default start + 7)" example(2024-01-07)
// @Success      200         {object}  dto.NEOSummaryResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      429         {object}  dto.ErrorResponse
// @Failure      502         {object}  dto.ErrorResponse
// @Failure      503         {object}  dto.ErrorResponse
// @Failure      504         {object}  dto.ErrorResponse
// @Router       /api/v1/neo/summary [get]
func (h *Handler) GetNEOSummary(c *gin.Context) {
	res, err := h.svc.NEO.Summary(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NEOSummaryResponse{
		StartDate:  res.Range.Start.Format(neo.DateLayout),
		EndDate:    res.Range.End.Format(neo.DateLayout),
		Warnings:   res.Warnings,
		NEOSummary: res.Summary,
	})
}

// ListNEOs handles GET /api/v1/neo/objects.
//
// ListNEOs godoc
// @Summary      Stored near-Earth objects
// @Description  Lists objects persisted by the ingestion job, closest recorded approach first.
// @Tags         neo
// @Produce      json
// @Param        hazardous  query     bool  false  "Only hazardous (true) or non-hazardous (false) objects"
// @Param        limit      query     int   false  "Page size (default 20, max 100)"
// @Param        offset     query     int   false  "Offset"
// @Success      200        {object}  dto.NEOListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      500        {object}  dto.ErrorResponse
// @Router       /api/v1/neo/objects [get]
func (h *Handler) ListNEOs(c *gin.Context) {
	var filter models.NEOFilter
	if s := c.Query("hazardous"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			badQuery(c, "hazardous", err)
			return
		}
		filter.Hazardous = &b
	}
	var ok bool
	if filter.Limit, ok = intQuery(c, "limit"); !ok {
		return
	}
	if filter.Offset, ok = intQuery(c, "offset"); !ok {
		return
	}
	filter.Limit, filter.Offset = service.ClampPage(filter.Limit, filter.Offset)

	items, err := h.svc.NEO.ListStored(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []models.StoredNEO{}
	}
	c.JSON(http.StatusOK, dto.NEOListResponse{Items: items, Limit: filter.Limit, Offset: filter.Offset})
}

// GetAPOD handles GET /api/v1/apod.
//
// GetAPOD godoc
// @Summary      Astronomy Picture of the Day
// @Tags         apod
// @Produce      json
// @Param        date  query     string  false  "Date in YYYY-MM-DD (default today)" example(2024-01-05)
// @Success      200   {object}  models.APOD
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/v1/apod [get]
func (h *Handler) GetAPOD(c *gin.Context) {
	apod, err := h.svc.APOD.Get(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, apod)
}

// GetMarsPhotos handles GET /api/v1/mars/photos.
//
// GetMarsPhotos godoc
// @Summary      Mars rover photos
// @Description  Latest photos of a rover, or photos of a given sol or Earth date.
// @Tags         mars
// @Produce      json
// @Param        rover       query     string  false  "perseverance, curiosity, opportunity or spirit" default(perseverance)
// @Param        sol         query     int     false  "Martian sol"
// @Param        earth_date  query     string  false  "Earth date in YYYY-MM-DD"
// @Param        camera      query     string  false  "Camera abbreviation" example(NAVCAM)
// @Success      200         {array}   models.MarsPhoto
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      502         {object}  dto.ErrorResponse
// @Router       /api/v1/mars/photos [get]
func (h *Handler) GetMarsPhotos(c *gin.Context) {
	var q models.MarsPhotoQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badQuery(c, "query", err)
		return
	}
	photos, err := h.svc.Mars.Photos(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	if photos == nil {
		photos = []models.MarsPhoto{}
	}
	c.JSON(http.StatusOK, photos)
}

// GetISSPosition handles GET /api/v1/iss/position.
//
// GetISSPosition godoc
// @Summary      Current ISS position
// @Tags         iss
// @Produce      json
// @Success      200  {object}  models.ISSPosition
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/v1/iss/position [get]
func (h *Handler) GetISSPosition(c *gin.Context) {
	pos, err := h.svc.ISS.Position(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pos)
}

// GetISSCrew handles GET /api/v1/iss/crew.
//
// GetISSCrew godoc
// @Summary      People currently in space
// @Tags         iss
// @Produce      json
// @Success      200  {object}  models.Crew
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/v1/iss/crew [get]
func (h *Handler) GetISSCrew(c *gin.Context) {
	crew, err := h.svc.ISS.Crew(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, crew)
}

// intQuery parses an optional integer parameter. On failure it writes the
// error response and returns false.
func intQuery(c *gin.Context, name string) (int, bool) {
	s := c.Query(name)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		badQuery(c, name, err)
		return 0, false
	}
	return n, true
}
