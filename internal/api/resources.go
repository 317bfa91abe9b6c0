package api

import (
	"fmt"
	"net/http"
	"strconv"

	"claimsview/internal/query"
	"claimsview/internal/records"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Resource handler functions

// @Summary Health check
// @Description Report liveness with the number of configured resources and open screens
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *Handler) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Resources: len(h.refresher.Resources()),
		Screens:   h.screens.Len(),
	})
}

// @Summary List resources
// @Description List configured resources with their filter enumerations, sort keys, defaults and load state
// @Tags resources
// @Produce json
// @Success 200 {array} ResourceInfo
// @Router /api/resources [get]
func (h *Handler) getResources(c *gin.Context) {
	infos := make([]ResourceInfo, 0)
	for _, name := range h.refresher.Resources() {
		schema, _ := h.refresher.Schema(name)
		snap := h.refresher.Store().Snapshot(name)
		infos = append(infos, ResourceInfo{
			Resource:        name,
			Categories:      nonNil(schema.Categories),
			Statuses:        nonNil(schema.Statuses),
			SortKeys:        query.SortKeys,
			DefaultSort:     schema.DefaultSort,
			DefaultPageSize: schema.DefaultPageSize,
			DefaultDateFrom: schema.DefaultDateFrom,
			DefaultDateTo:   schema.DefaultDateTo,
			Status:          snap.Status,
			Count:           snap.Count,
			Seq:             snap.Seq,
			FetchedAt:       snap.FetchedAt,
			LastError:       snap.LastError,
		})
	}
	c.JSON(http.StatusOK, infos)
}

// resolve looks up the resource named in the path and its current snapshot.
// A resource that was never loaded is fetched first.
func (h *Handler) resolve(c *gin.Context) (query.Schema, records.Snapshot, error) {
	name := c.Param("resource")
	if err := validateResourceName(name); err != nil {
		return query.Schema{}, records.Snapshot{}, err
	}
	schema, ok := h.refresher.Schema(name)
	if !ok {
		return query.Schema{}, records.Snapshot{}, fmt.Errorf("resource %s: %w", name, records.ErrUnknownResource)
	}

	store := h.refresher.Store()
	if store.Snapshot(name).Status == records.StatusIdle {
		if err := h.refresher.Refresh(c.Request.Context(), name); err != nil {
			h.logger.Warn("Fetch on demand failed", zap.String("resource", name), zap.Error(err))
		}
	}
	return schema, store.Snapshot(name), nil
}

// stateFromQuery builds a query state from the schema defaults and params
func stateFromQuery(c *gin.Context, schema query.Schema) (query.QueryState, error) {
	change, err := changeFromQuery(c)
	if err != nil {
		return query.QueryState{}, err
	}
	return change.ApplyTo(schema, schema.DefaultState())
}

// @Summary Get resource view
// @Description Filter, sort and paginate the current snapshot of a resource. Aggregates cover the whole filtered set, tab counts the unfiltered one.
// @Tags resources
// @Produce json
// @Param resource path string true "Resource name"
// @Param search query string false "Case-insensitive text search"
// @Param tab query string false "Logical tab, sets the category"
// @Param category query string false "Category equality, ALL disables"
// @Param status query string false "Status equality, ALL disables"
// @Param date_from query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param amount_min query number false "Inclusive lower amount bound"
// @Param amount_max query number false "Inclusive upper amount bound"
// @Param sort query string false "Sort key" Enums(dateDesc, dateAsc, amountDesc, amountAsc, nameAsc, nameDesc, statusAsc, statusDesc)
// @Param page query int false "Zero-based page index"
// @Param page_size query int false "Page size"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "Unknown resource"
// @Router /api/resources/{resource}/view [get]
func (h *Handler) getView(c *gin.Context) {
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

	c.JSON(http.StatusOK, ViewResponse{
		Resource:  schema.Resource,
		Status:    snap.Status,
		Seq:       snap.Seq,
		FetchedAt: snap.FetchedAt,
		LastError: snap.LastError,
		View:      schema.Run(snap.Records, state),
		TabCounts: schema.CategoryCounts(snap.Records, schema.Categories),
	})
}

// @Summary Export resource
// @Description Download the filtered and sorted collection as CSV, ignoring pagination
// @Tags resources
// @Produce text/csv
// @Param resource path string true "Resource name"
// @Param search query string false "Case-insensitive text search"
// @Param category query string false "Category equality"
// @Param status query string false "Status equality"
// @Param sort query string false "Sort key"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "Unknown resource"
// @Router /api/resources/{resource}/export [get]
func (h *Handler) exportResource(c *gin.Context) {
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

	writeCSV(c, query.ExportFilename(schema.Resource, h.now()), schema.Export(snap.Records, state))
}

func writeCSV(c *gin.Context, filename, body string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

// @Summary Refresh resource
// @Description Refetch a resource from the backend. On failure the previous snapshot is kept.
// @Tags resources
// @Produce json
// @Param resource path string true "Resource name"
// @Success 200 {object} RefreshResponse
// @Failure 404 {object} ErrorResponse "Unknown resource"
// @Failure 502 {object} ErrorResponse "Backend fetch failed"
// @Router /api/resources/{resource}/refresh [post]
func (h *Handler) refreshResource(c *gin.Context) {
	name := c.Param("resource")
	if err := validateResourceName(name); err != nil {
		h.respondError(c, err)
		return
	}
	if _, ok := h.refresher.Schema(name); !ok {
		h.respondError(c, fmt.Errorf("resource %s: %w", name, records.ErrUnknownResource))
		return
	}

	if err := h.refresher.Refresh(c.Request.Context(), name); err != nil {
		h.logger.Warn("Refresh failed", zap.String("resource", name), zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Error fetching " + name + " from backend"})
		return
	}

	snap := h.refresher.Store().Snapshot(name)
	c.JSON(http.StatusOK, RefreshResponse{
		Resource:  name,
		Status:    snap.Status,
		Count:     snap.Count,
		Seq:       snap.Seq,
		FetchedAt: snap.FetchedAt,
	})
}

// @Summary Update record
// @Description Replace one record of the snapshot after the backend accepted a write. Pass seq to reject the update if the snapshot was refreshed since it was read.
// @Tags resources
// @Accept json
// @Produce json
// @Param resource path string true "Resource name"
// @Param id path string true "Record id"
// @Param seq query int false "Snapshot sequence the record was read from"
// @Param record body map[string]interface{} true "Updated record"
// @Success 200 {object} map[string]interface{} "Updated record"
// @Failure 400 {object} ErrorResponse "Invalid resource name or request body"
// @Failure 404 {object} ErrorResponse "Unknown resource or record"
// @Failure 409 {object} ErrorResponse "Snapshot changed"
// @Router /api/resources/{resource}/records/{id} [put]
func (h *Handler) updateRecord(c *gin.Context) {
	name := c.Param("resource")
	id := c.Param("id")
	if err := validateResourceName(name); err != nil {
		h.respondError(c, err)
		return
	}

	schema, ok := h.refresher.Schema(name)
	if !ok {
		h.respondError(c, fmt.Errorf("resource %s: %w", name, records.ErrUnknownResource))
		return
	}

	var seq uint64
	if raw := c.Query("seq"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.respondError(c, fmt.Errorf("seq must be a positive integer: %w", errInvalidParam))
			return
		}
		seq = parsed
	}

	var record query.Record
	if err := c.ShouldBindJSON(&record); err != nil || record == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if bodyID := record.String(schema.IDField); bodyID == "" {
		record[schema.IDField] = id
	} else if bodyID != id {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Record id does not match path"})
		return
	}

	if err := h.refresher.Store().UpdateAt(name, seq, schema.IDField, record); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// @Summary Unread notifications badge
// @Description Count notifications in the unread status from the polled snapshot
// @Tags badges
// @Produce json
// @Success 200 {object} UnreadBadge
// @Failure 404 {object} ErrorResponse "Notifications resource not configured"
// @Router /api/badges/unread [get]
func (h *Handler) getUnreadBadge(c *gin.Context) {
	schema, ok := h.refresher.Schema(h.notifications)
	if !ok {
		h.respondError(c, fmt.Errorf("resource %s: %w", h.notifications, records.ErrUnknownResource))
		return
	}

	snap := h.refresher.Store().Snapshot(h.notifications)
	c.JSON(http.StatusOK, UnreadBadge{
		Resource:  h.notifications,
		Unread:    records.UnreadCount(schema, snap, h.unreadStatus),
		Status:    snap.Status,
		FetchedAt: snap.FetchedAt,
	})
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
