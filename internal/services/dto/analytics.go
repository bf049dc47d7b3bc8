package dto

import "encoding/json"

// TrackRequest - at least one of StartupID / JobID must be set
type TrackRequest struct {
	Type      string          `json:"type" validate:"required,is-analytics-type"`
	StartupID *string         `json:"startupId" validate:"omitempty,uuid"`
	JobID     *string         `json:"jobId" validate:"omitempty,uuid"`
	Metadata  json.RawMessage `json:"metadata"`
}

type TimeSeriesPoint struct {
	Date         string `json:"date"`
	Views        int    `json:"views"`
	Interactions int    `json:"interactions"`
}

// StartupAnalytics - dashboard for one startup over the last Days days
type StartupAnalytics struct {
	StartupID         string            `json:"startupId"`
	Days              int               `json:"days"`
	TotalViews        int               `json:"totalViews"`
	TotalInteractions int               `json:"totalInteractions"`
	TimeSeries        []TimeSeriesPoint `json:"timeSeries"`
	TrafficSources    map[string]int    `json:"trafficSources"`
	JobViews          int64             `json:"jobViews"`
}
