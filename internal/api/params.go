package api

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"claimsview/internal/screens"

	"github.com/gin-gonic/gin"
)

// fieldParamPrefix marks secondary text constraints, e.g. f.diagnosis=flu
const fieldParamPrefix = "f."

// changeFromQuery reads view query parameters into a screen change. Absent
// parameters leave the default state untouched.
func changeFromQuery(c *gin.Context) (screens.Change, error) {
	var change screens.Change

	if v, ok := c.GetQuery("search"); ok {
		change.Search = &v
	}
	if v, ok := c.GetQuery("tab"); ok {
		change.Tab = &v
	}
	if v, ok := c.GetQuery("category"); ok {
		change.Category = &v
	}
	if v, ok := c.GetQuery("status"); ok {
		change.Status = &v
	}

	from, hasFrom := c.GetQuery("date_from")
	to, hasTo := c.GetQuery("date_to")
	if hasFrom || hasTo {
		change.DateRange = &screens.DateRange{From: from, To: to}
	}

	minAmount, err := floatParam(c, "amount_min")
	if err != nil {
		return change, err
	}
	maxAmount, err := floatParam(c, "amount_max")
	if err != nil {
		return change, err
	}
	if minAmount != nil || maxAmount != nil {
		change.AmountRange = &screens.AmountRange{Min: minAmount, Max: maxAmount}
	}

	if v, ok := c.GetQuery("sort"); ok && v != "" {
		change.Sort = &v
	}
	if change.PageSize, err = intParam(c, "page_size"); err != nil {
		return change, err
	}
	if change.Page, err = intParam(c, "page"); err != nil {
		return change, err
	}

	for key, values := range c.Request.URL.Query() {
		field, ok := strings.CutPrefix(key, fieldParamPrefix)
		if !ok || field == "" || len(values) == 0 {
			continue
		}
		if change.Fields == nil {
			change.Fields = make(map[string]string)
		}
		change.Fields[field] = values[0]
	}

	return change, nil
}

func floatParam(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number: %w", name, errInvalidParam)
	}
	return &v, nil
}

func intParam(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s must be a non-negative integer: %w", name, errInvalidParam)
	}
	return &v, nil
}
