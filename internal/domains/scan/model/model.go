package model

import "encoding/json"

// Wire events cho scan relay. Desktop mở session, phone join bằng
// session ID (từ QR code), barcode events chảy phone -> desktop.
const (
	EventDesktopConnect     = "desktop-connect"
	EventSessionCreated     = "session-created"
	EventPhoneConnect       = "phone-connect"
	EventPhoneConnected     = "phone-connected"
	EventBarcodeScanned     = "barcode-scanned"
	EventSessionUnavailable = "session-unavailable"
	EventPeerDisconnected   = "peer-disconnected"
)

// Envelope - mọi message trên socket đều có dạng này.
// Data giữ raw để relay không phải hiểu payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// SessionCreatedPayload - server -> desktop sau desktop-connect
type SessionCreatedPayload struct {
	SessionID string `json:"sessionId"`
}

// PhoneConnectPayload - phone -> server khi join session
type PhoneConnectPayload struct {
	SessionID string `json:"sessionId"`
}

// BarcodeScannedPayload - phone -> server -> desktop.
// Comic được relay nguyên văn, server không parse.
type BarcodeScannedPayload struct {
	SessionID string          `json:"sessionId"`
	Comic     json.RawMessage `json:"comic"`
}
