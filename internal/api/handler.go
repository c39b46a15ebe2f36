package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradechart/internal/domain/dto"
	"github.com/guttosm/tradechart/internal/domain/models"
	"github.com/guttosm/tradechart/internal/middleware"
	"github.com/guttosm/tradechart/internal/service"
)

// startTimestampLayouts are accepted for the startTimestamp query parameter.
var startTimestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Handler provides HTTP handlers for the trade table and chart endpoints.
//
// Responsibilities:
//   - Bind and validate incoming HTTP query parameters
//   - Delegate to the chart service
//   - Translate service results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc service.ChartService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.ChartService) *Handler {
	return &Handler{svc: svc}
}

// tradesParams are the filters shared by every data endpoint.
type tradesParams struct {
	StartTimestamp string `form:"startTimestamp"`
	MinQuoteSize   int64  `form:"minQuoteSize" binding:"gte=0"`
	Symbol         string `form:"symbol"`
}

type chartParams struct {
	tradesParams
	Aggregation string   `form:"aggregation"`
	Preset      string   `form:"preset"`
	From        *float64 `form:"from"`
	To          *float64 `form:"to"`
	StartIndex  *int     `form:"start_index"`
	EndIndex    *int     `form:"end_index"`
	MaxPoints   int      `form:"max_points" binding:"gte=0,lte=5000"`
}

func (p tradesParams) toQuery() (service.TradeQuery, error) {
	q := service.TradeQuery{MinSize: p.MinQuoteSize}
	if s := strings.TrimSpace(p.StartTimestamp); s != "" {
		since, err := parseStartTimestamp(s)
		if err != nil {
			return q, err
		}
		q.Since = &since
	}
	if s := strings.TrimSpace(p.Symbol); s != "" {
		sym := models.Symbol(strings.ToUpper(s))
		if !sym.Valid() {
			return q, fmt.Errorf("unknown symbol %q", s)
		}
		q.Symbol = sym
	}
	return q, nil
}

func (p chartParams) toQuery() (service.ChartQuery, error) {
	tq, err := p.tradesParams.toQuery()
	if err != nil {
		return service.ChartQuery{}, err
	}
	q := service.ChartQuery{
		TradeQuery:  tq,
		Granularity: models.Daily,
		MaxPoints:   p.MaxPoints,
		Range: service.RangeRequest{
			StartIndex: p.StartIndex,
			EndIndex:   p.EndIndex,
			Preset:     strings.TrimSpace(p.Preset),
			From:       p.From,
			To:         p.To,
		},
	}
	if s := strings.TrimSpace(p.Aggregation); s != "" {
		g, ok := models.ParseGranularity(s)
		if !ok {
			return q, fmt.Errorf("aggregation must be one of Daily, Weekly, Monthly, Quarterly, got %q", s)
		}
		q.Granularity = g
	}
	return q, nil
}

func parseStartTimestamp(s string) (time.Time, error) {
	for _, layout := range startTimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid startTimestamp %q, expected RFC3339 or YYYY-MM-DD", s)
}

// GetTrades handles GET /api/v1/trades requests.
//
// GetTrades godoc
// @Summary      List trades
// @Description  Returns the raw trades matching the filters, ordered by time
// @Tags         trades
// @Produce      json
// @Param        startTimestamp  query     string  false  "Only trades at or after this time (RFC3339 or YYYY-MM-DD)" example(2024-04-01)
// @Param        minQuoteSize    query     int     false  "Minimum trade size" example(10)
// @Param        symbol          query     string  false  "Symbol" Enums(AAPL, MSFT, GOOGL, AMZN, META)
// @Success      200             {object}  dto.TradesResponse  "Success"
// @Failure      400             {object}  dto.ErrorResponse   "Bad Request"
// @Failure      500             {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/trades [get]
func (h *Handler) GetTrades(c *gin.Context) {
	var p tradesParams
	if err := c.ShouldBindQuery(&p); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	q, err := p.toQuery()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	trades, err := h.svc.Trades(c.Request.Context(), q)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch trades", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTradesResponse(trades))
}

// GetChart handles GET /api/v1/chart requests.
//
// The visible range is taken from start_index/end_index when given, else from
// a named preset, else from the from/to fractions; the default shows the
// whole series.
//
// GetChart godoc
// @Summary      Aggregated chart window
// @Description  Aggregates matching trades per period and symbol (size-weighted price) and returns a bounded window of the series
// @Tags         chart
// @Produce      json
// @Param        startTimestamp  query     string  false  "Only trades at or after this time (RFC3339 or YYYY-MM-DD)" example(2024-04-01)
// @Param        minQuoteSize    query     int     false  "Minimum trade size" example(10)
// @Param        symbol          query     string  false  "Symbol" Enums(AAPL, MSFT, GOOGL, AMZN, META)
// @Param        aggregation     query     string  false  "Granularity" Enums(Daily, Weekly, Monthly, Quarterly) default(Daily)
// @Param        preset          query     string  false  "Zoom preset label" example(First Half)
// @Param        from            query     number  false  "Zoom start fraction" example(0.25)
// @Param        to              query     number  false  "Zoom end fraction" example(0.75)
// @Param        start_index     query     int     false  "First visible index" example(0)
// @Param        end_index       query     int     false  "Last visible index" example(49)
// @Param        max_points      query     int     false  "Display cap" example(50)
// @Success      200             {object}  dto.ChartResponse  "Success"
// @Failure      400             {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500             {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/chart [get]
func (h *Handler) GetChart(c *gin.Context) {
	var p chartParams
	if err := c.ShouldBindQuery(&p); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	q, err := p.toQuery()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	chart, err := h.svc.Chart(c.Request.Context(), q)
	switch {
	case errors.Is(err, service.ErrUnknownPreset):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build chart", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewChartResponse(chart))
}

// GetTreemap handles GET /api/v1/treemap requests.
//
// GetTreemap godoc
// @Summary      Per-symbol totals
// @Description  Returns total traded size and value per symbol for the matching trades
// @Tags         chart
// @Produce      json
// @Param        startTimestamp  query     string  false  "Only trades at or after this time (RFC3339 or YYYY-MM-DD)" example(2024-04-01)
// @Param        minQuoteSize    query     int     false  "Minimum trade size" example(10)
// @Success      200             {object}  dto.TreemapResponse  "Success"
// @Failure      400             {object}  dto.ErrorResponse    "Bad Request"
// @Failure      500             {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/treemap [get]
func (h *Handler) GetTreemap(c *gin.Context) {
	var p tradesParams
	if err := c.ShouldBindQuery(&p); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	q, err := p.toQuery()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	totals, err := h.svc.Treemap(c.Request.Context(), q)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to compute totals", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTreemapResponse(totals))
}

// GetPresets handles GET /api/v1/presets requests.
//
// GetPresets godoc
// @Summary      Zoom presets
// @Description  Lists the named zoom ranges accepted by the chart endpoint
// @Tags         chart
// @Produce      json
// @Success      200  {object}  dto.PresetsResponse  "Success"
// @Router       /api/v1/presets [get]
func (h *Handler) GetPresets(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewPresetsResponse(h.svc.Presets()))
}
