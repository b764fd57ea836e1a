package web3socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func drainBroadcast() {
	for {
		select {
		case <-Broadcast:
		default:
			return
		}
	}
}

func TestSendBroadcastNeverBlocks(t *testing.T) {
	drainBroadcast()
	defer drainBroadcast()

	// fill the channel past capacity; extra events get dropped
	for i := 0; i < cap(Broadcast)+5; i++ {
		SendBroadcastWebsocketDataInfoMessage("fiche submitted", Websocket_Add, Websocket_Fiche, map[string]interface{}{"id": i})
	}

	assert.Equal(t, cap(Broadcast), len(Broadcast))

	msg := <-Broadcast
	assert.Equal(t, "DATA", msg.MessageType)
	assert.Equal(t, Websocket_Fiche, msg.ForeignType)
	assert.Equal(t, Websocket_Add, msg.Action)
}
