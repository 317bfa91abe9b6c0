package api

import (
	"net/http"

	"claimsview/internal/query"

	"github.com/gin-gonic/gin"
)

// Stats handler functions

// @Summary Get resource stats
// @Description Aggregate the filtered set of a resource: totals, per-category counts, amounts and shares, amount slider bounds and unfiltered tab counts
// @Tags stats
// @Produce json
// @Param resource path string true "Resource name"
// @Param search query string false "Case-insensitive text search"
// @Param category query string false "Category equality"
// @Param status query string false "Status equality"
// @Param date_from query string false "Inclusive lower date bound"
// @Param date_to query string false "Inclusive upper date bound"
// @Param amount_min query number false "Inclusive lower amount bound"
// @Param amount_max query number false "Inclusive upper amount bound"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "Unknown resource"
// @Router /api/resources/{resource}/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	schema, snap, err := h.resolve(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	state, err := stateFromQuery(c, schema)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filtered := schema.Filter(snap.Records, state.Criteria)
	c.JSON(http.StatusOK, buildStats(schema, snap.Records, filtered, state))
}

// buildStats turns an aggregate into category chips sorted by name
func buildStats(schema query.Schema, all, filtered []query.Record, state query.QueryState) StatsResponse {
	agg := schema.Aggregate(filtered, schema.Categories...)

	categories := make([]CategoryStat, 0, len(agg.PerCategory))
	for _, name := range agg.Categories() {
		total := agg.PerCategory[name]
		categories = append(categories, CategoryStat{
			Name:            name,
			Count:           total.Count,
			Amount:          total.Amount,
			Percentage:      agg.Percentage(name),
			CountPercentage: agg.CountPercentage(name),
		})
	}

	return StatsResponse{
		Resource:          schema.Resource,
		TotalCount:        agg.TotalCount,
		TotalAmount:       agg.TotalAmount,
		Categories:        categories,
		Bounds:            schema.RangeBounds(all, schema.SliderStep, schema.SliderFallback),
		TabCounts:         schema.CategoryCounts(all, schema.Categories),
		ActiveFilterCount: state.Criteria.ActiveCount(),
	}
}
