package models

import "time"

// ArtifactInfo describes one pipeline artifact for the listing endpoint.
type ArtifactInfo struct {
	Stage      string     `json:"stage"`
	File       string     `json:"file"`
	Exists     bool       `json:"exists"`
	SizeBytes  int64      `json:"size_bytes,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}

// DatasetInfo describes one configured dataset.
type DatasetInfo struct {
	ID      string `json:"id"`
	CSVFile string `json:"csv_file"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
