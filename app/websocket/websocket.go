// Package web3socket pushes submission events to connected admin dashboards.
package web3socket

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	clientsMu sync.Mutex
	clients   = make(map[*websocket.Conn]bool) // connected admin clients
)

var Broadcast = make(chan WebsocketMessage, 16) // broadcast channel

// Configure the upgrader
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RegisterClient adds an upgraded connection to the broadcast set and blocks
// reading it until the peer goes away.
func RegisterClient(ws *websocket.Conn) {
	clientsMu.Lock()
	clients[ws] = true
	clientsMu.Unlock()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	clientsMu.Lock()
	delete(clients, ws)
	clientsMu.Unlock()
	ws.Close()
}

// HandleBroadcastMessages fans Broadcast out to every connected client.
// Run once from main.
func HandleBroadcastMessages() {
	for {
		msg := <-Broadcast

		clientsMu.Lock()
		for client := range clients {
			err := client.WriteJSON(&msg)
			if err != nil {
				log.Printf("error: %v", err)
				client.Close()
				delete(clients, client)
			}
		}
		clientsMu.Unlock()
	}
}

// SendBroadcastWebsocketDataInfoMessage queues a data event for all connected
// dashboards. Drops the event if nobody is draining the channel fast enough;
// the feed is informational only.
func SendBroadcastWebsocketDataInfoMessage(message string, action string, foreignType string, data interface{}) {
	msg := WebsocketMessage{
		MessageType: "DATA",
		Timestamp:   time.Now(),
		Message:     message,
		ForeignType: foreignType,
		Action:      action,
		Data:        data,
	}
	select {
	case Broadcast <- msg:
	default:
	}
}
