package flights

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/transport-backend/pkg/common"
)

// Handler handles HTTP requests for flight lookups
type Handler struct {
	svc     *Service
	airport string
}

// NewHandler creates a new flights handler. airport is the default board to
// search arrivals on.
func NewHandler(svc *Service, airport string) *Handler {
	return &Handler{svc: svc, airport: airport}
}

// RegisterRoutes mounts flight routes on the given group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	flights := api.Group("/flights")
	{
		flights.GET("/arrivals", h.Arrivals)
		flights.GET("/live", h.Live)
		flights.GET("/summary", h.Summary)
		flights.GET("/timetable", h.Timetable)
	}
}

func flightNumber(c *gin.Context) (string, bool) {
	number := strings.TrimSpace(c.Query("number"))
	if number == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "query parameter number is required")
		return "", false
	}
	return number, true
}

// Arrivals matches a flight number against the airport arrivals board
// GET /api/v1/flights/arrivals?number=DY540&airport=SVG
func (h *Handler) Arrivals(c *gin.Context) {
	number, ok := flightNumber(c)
	if !ok {
		return
	}
	airport := c.DefaultQuery("airport", h.airport)

	hoursFrom, _ := strconv.Atoi(c.Query("hours_from"))
	hoursTo, _ := strconv.Atoi(c.Query("hours_to"))

	match, err := h.svc.MatchArrival(c.Request.Context(), airport, number, hoursFrom, hoursTo)
	if err != nil {
		common.RespondError(c, err, "failed to look up arrivals")
		return
	}
	common.SuccessResponse(c, match)
}

// Live searches live positions for a flight number
// GET /api/v1/flights/live?number=DY540&bounds=59.0,58.0,5.0,7.0
func (h *Handler) Live(c *gin.Context) {
	number, ok := flightNumber(c)
	if !ok {
		return
	}

	var boundsList []string
	for _, b := range c.QueryArray("bounds") {
		if b = strings.TrimSpace(b); b != "" {
			boundsList = append(boundsList, b)
		}
	}
	if len(boundsList) == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "query parameter bounds is required")
		return
	}

	records, err := h.svc.SearchLive(c.Request.Context(), number, boundsList)
	if err != nil {
		common.RespondError(c, err, "failed to search live positions")
		return
	}
	common.SuccessResponse(c, records)
}

// Summary searches the flight summary feed for a number on a day
// GET /api/v1/flights/summary?number=DY540&date=2025-06-01
func (h *Handler) Summary(c *gin.Context) {
	number, ok := flightNumber(c)
	if !ok {
		return
	}

	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	records, err := h.svc.SearchSummary(c.Request.Context(), number, day)
	if err != nil {
		common.RespondError(c, err, "failed to search flight summary")
		return
	}
	common.SuccessResponse(c, records)
}

// Timetable resolves a flight number against the Avinor timetable
// GET /api/v1/flights/timetable?number=DY540
func (h *Handler) Timetable(c *gin.Context) {
	number, ok := flightNumber(c)
	if !ok {
		return
	}

	arrival, err := h.svc.TimetableETA(c.Request.Context(), number)
	if err != nil {
		common.RespondError(c, err, "failed to look up timetable")
		return
	}
	if arrival == nil {
		common.SuccessResponse(c, gin.H{"matched": false})
		return
	}
	common.SuccessResponse(c, gin.H{"matched": true, "arrival": arrival})
}
