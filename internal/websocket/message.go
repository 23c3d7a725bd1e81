// Package websocket implements the live session layer: one push-capable
// connection per authenticated user, registered in-band by an identity-claim
// frame. There is no session resumption; a new connection always starts
// anonymous.
package websocket

// Frame types exchanged with browsers.
const (
	MessageTypeAuth         = "auth"
	MessageTypeNotification = "notification"
	MessageTypePing         = "ping"
	MessageTypePong         = "pong"
)

// Message is an outbound frame.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// inboundFrame is what clients send: either an identity claim or a ping.
type inboundFrame struct {
	Type   string `json:"type"`
	UserID string `json:"userId,omitempty"`
}
