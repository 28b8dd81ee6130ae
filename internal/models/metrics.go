package models

import "time"

// SystemMetrics is a lightweight snapshot of the process instrumentation.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CommandsTotal            uint64    `json:"commands_total"`
	StorageWriteFailures     uint64    `json:"storage_write_failures"`
	StorageOperations        uint64    `json:"storage_operations"`
	AverageStorageDurationMs float64   `json:"average_storage_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
