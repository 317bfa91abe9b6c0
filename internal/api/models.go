package api

import (
	"time"

	"claimsview/internal/query"
	"claimsview/internal/records"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a request that returns no resource
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness and how much state the service holds
type HealthResponse struct {
	Status    string `json:"status"`
	Resources int    `json:"resources"`
	Screens   int    `json:"screens"`
}

// ResourceInfo describes one configured resource and its load state
type ResourceInfo struct {
	Resource        string          `json:"resource"`
	Categories      []string        `json:"categories"`
	Statuses        []string        `json:"statuses"`
	SortKeys        []query.SortKey `json:"sort_keys"`
	DefaultSort     query.SortKey   `json:"default_sort"`
	DefaultPageSize int             `json:"default_page_size"`
	DefaultDateFrom string          `json:"default_date_from,omitempty"`
	DefaultDateTo   string          `json:"default_date_to,omitempty"`
	Status          records.Status  `json:"status"`
	Count           int             `json:"count"`
	Seq             uint64          `json:"seq"`
	FetchedAt       time.Time       `json:"fetched_at"`
	LastError       string          `json:"last_error,omitempty"`
}

// ViewResponse is a stateless view of a resource for one set of query params
type ViewResponse struct {
	Resource  string         `json:"resource"`
	Status    records.Status `json:"status"`
	Seq       uint64         `json:"seq"`
	FetchedAt time.Time      `json:"fetched_at"`
	LastError string         `json:"last_error,omitempty"`
	View      query.View     `json:"view"`
	TabCounts map[string]int `json:"tab_counts"`
}

// CategoryStat is one category chip: its share of the filtered set
type CategoryStat struct {
	Name            string  `json:"name"`
	Count           int     `json:"count"`
	Amount          float64 `json:"amount"`
	Percentage      float64 `json:"percentage"`
	CountPercentage float64 `json:"count_percentage"`
}

// StatsResponse summarizes the filtered set of a resource
type StatsResponse struct {
	Resource          string         `json:"resource"`
	TotalCount        int            `json:"total_count"`
	TotalAmount       float64        `json:"total_amount"`
	Categories        []CategoryStat `json:"categories"`
	Bounds            query.Bounds   `json:"bounds"`
	TabCounts         map[string]int `json:"tab_counts"`
	ActiveFilterCount int            `json:"active_filter_count"`
}

// RefreshResponse reports the snapshot a refresh left behind
type RefreshResponse struct {
	Resource  string         `json:"resource"`
	Status    records.Status `json:"status"`
	Count     int            `json:"count"`
	Seq       uint64         `json:"seq"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// CreateScreenRequest opens a screen on a resource
type CreateScreenRequest struct {
	Resource string `json:"resource" binding:"required"`
}

// UnreadBadge is the unread notifications counter
type UnreadBadge struct {
	Resource  string         `json:"resource"`
	Unread    int            `json:"unread"`
	Status    records.Status `json:"status"`
	FetchedAt time.Time      `json:"fetched_at"`
}
