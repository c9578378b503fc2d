package models

// Item is a catalog record. Items are never mutated once the collection is built.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type ItemList struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

// ServerInfo is recomputed on every request from the process environment.
type ServerInfo struct {
	Service  string `json:"service"`
	Version  string `json:"version"`
	Hostname string `json:"hostname"`
	PodName  string `json:"podName"`
	NodeEnv  string `json:"nodeEnv"`
}

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
