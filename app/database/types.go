package database

// CacheStats summarizes the response cache for the health endpoint
type CacheStats struct {
	Entries int `json:"entries"`
	Expired int `json:"expired"`
	Bytes   int `json:"bytes"`
}
