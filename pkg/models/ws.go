package models

import "time"

// Message types for WebSocket communication
const (
	MessageTypeRefresh     = "trends_refresh"
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
	MessageTypeHeartbeat   = "heartbeat"
	MessageTypeError       = "error"
)

// ClientMessage is a message from client to server
type ClientMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ServerMessage is a message from server to client
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// RefreshUpdate announces a rebuilt resource generation to clients
type RefreshUpdate struct {
	Resource string      `json:"resource"` // "trends", "predictions", ...
	SportKey string      `json:"sport_key"`
	Payload  interface{} `json:"payload"`
}

// SubscriptionFilter holds a client's subscription preferences. Updates
// are whole per-sport refreshes, so sport keys are the only granularity
// a client can filter on.
type SubscriptionFilter struct {
	Sports []string `json:"sports,omitempty"`
}

// ConnectionStats reports per-client connection statistics
type ConnectionStats struct {
	ClientID         string    `json:"client_id"`
	ConnectedAt      time.Time `json:"connected_at"`
	MessagesSent     int64     `json:"messages_sent"`
	MessagesReceived int64     `json:"messages_received"`
}

// ErrorMessage is an error payload sent to a client
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error body for HTTP endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
