package web3socket

import "time"

const (
	Websocket_Fiche = "FICHE"
)

const (
	Websocket_Add = "ADD"
)

type WebsocketMessage struct {
	MessageType string      `json:"message_type"`
	Timestamp   time.Time   `json:"timestamp"`
	Message     string      `json:"message,omitempty"`
	ForeignType string      `json:"foreign_type,omitempty"`
	Action      string      `json:"action,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}
