// Package responses defines API response types used by the conversion HTTP handlers.
package responses

import "time"

// ConvertResponse is the JSON body of a successful POST /convert.
type ConvertResponse struct {
	Lines       []string       `json:"lines"`
	Blocks      int            `json:"blocks"`
	Fingerprint string         `json:"fingerprint"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
}

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}
