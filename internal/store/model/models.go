package model

import "time"

// Session captures the outcome of one generation run.
type Session struct {
	ID           string    `db:"id" json:"id"`
	Prompt       string    `db:"prompt" json:"prompt"`
	ProviderID   string    `db:"provider_id" json:"provider_id"`
	Status       string    `db:"status" json:"status"` // 'completed', 'exhausted', 'cancelled'
	ErrorMessage string    `db:"error_message" json:"error_message,omitempty"`
	HasCode      bool      `db:"has_code" json:"has_code"`
	LatencyMS    int64     `db:"latency_ms" json:"latency_ms"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
