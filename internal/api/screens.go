package api

import (
	"net/http"

	"claimsview/internal/screens"

	"github.com/gin-gonic/gin"
)

// Screen handler functions

// @Summary Open screen
// @Description Open a list screen on a resource with the resource's default state. The resource is fetched if it was never loaded.
// @Tags screens
// @Accept json
// @Produce json
// @Param screen body CreateScreenRequest true "Screen to open"
// @Success 201 {object} screens.Screen
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Unknown resource"
// @Router /api/screens [post]
func (h *Handler) createScreen(c *gin.Context) {
	var request CreateScreenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := validateResourceName(request.Resource); err != nil {
		h.respondError(c, err)
		return
	}

	screen, err := h.screens.Create(c.Request.Context(), request.Resource)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, screen)
}

// @Summary Get screen view
// @Description Render a screen against the current snapshot of its resource
// @Tags screens
// @Produce json
// @Param id path string true "Screen ID"
// @Success 200 {object} screens.ScreenView
// @Failure 404 {object} ErrorResponse "Screen not found"
// @Router /api/screens/{id} [get]
func (h *Handler) getScreen(c *gin.Context) {
	view, err := h.screens.View(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Change screen
// @Description Apply one interaction to a screen (search, tab, filters, sort, page) and return the new view. Filter and tab changes reset the page.
// @Tags screens
// @Accept json
// @Produce json
// @Param id path string true "Screen ID"
// @Param change body screens.Change true "Change to apply"
// @Success 200 {object} screens.ScreenView
// @Failure 400 {object} ErrorResponse "Invalid change"
// @Failure 404 {object} ErrorResponse "Screen not found"
// @Router /api/screens/{id} [patch]
func (h *Handler) updateScreen(c *gin.Context) {
	var change screens.Change
	if err := c.ShouldBindJSON(&change); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	id := c.Param("id")
	if _, err := h.screens.Apply(c.Request.Context(), id, change); err != nil {
		h.respondError(c, err)
		return
	}
	view, err := h.screens.View(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Close screen
// @Tags screens
// @Produce json
// @Param id path string true "Screen ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Screen not found"
// @Router /api/screens/{id} [delete]
func (h *Handler) deleteScreen(c *gin.Context) {
	if err := h.screens.Delete(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Screen closed successfully"})
}

// @Summary Export screen
// @Description Download a screen's filtered and sorted collection as CSV
// @Tags screens
// @Produce text/csv
// @Param id path string true "Screen ID"
// @Success 200 {string} string "CSV document"
// @Failure 404 {object} ErrorResponse "Screen not found"
// @Router /api/screens/{id}/export [get]
func (h *Handler) exportScreen(c *gin.Context) {
	filename, body, err := h.screens.Export(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	writeCSV(c, filename, body)
}
