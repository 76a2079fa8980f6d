package status

import "idlarz/internal/domain/realm"

type Request struct {
	SessionID string
}

type Response struct {
	View          realm.View `json:"view"`
	Version       int64      `json:"version"`
	PendingMillis float64    `json:"pending_ms"`
	ServerTime    int64      `json:"server_time"`
}
