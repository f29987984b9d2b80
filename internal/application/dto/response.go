package dto

// APIResponse is the envelope every HTTP endpoint answers with
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SaveGameStateResult is returned after a game state upsert
type SaveGameStateResult struct {
	UserID   string `json:"userId"`
	Created  bool   `json:"created"`
	Modified bool   `json:"modified"`
}

// DeleteResult is returned after a game state delete
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// HealthStatus is the payload of GET /api/health
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Services  map[string]ServiceStatus `json:"services"`
	Version   string                   `json:"version"`
}

type ServiceStatus struct {
	Status  string                 `json:"status"`
	Error   string                 `json:"error,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
