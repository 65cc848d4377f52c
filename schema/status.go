package schema

import "time"

// CacheStatus holds status information about the durable cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"totalEntries"`
	LastEntryTime   time.Time `json:"lastEntryTime,omitempty"`
	OldestEntryTime time.Time `json:"oldestEntryTime,omitempty"`
}

// SettingsStatus holds status information about the settings store.
type SettingsStatus struct {
	Backend   string   `json:"backend"`
	Connected bool     `json:"connected"`
	Keys      []string `json:"keys"`
}
