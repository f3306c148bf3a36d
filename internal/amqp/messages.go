package amqp

import (
	"encoding/json"
	"time"

	"finease/internal/ledger"
)

// LedgerEventMessage is the wire form of a ledger change event. Consumers
// get the action and id and fetch the full record themselves if they need it.
type LedgerEventMessage struct {
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	Owner     string    `json:"owner,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEventMessage wraps a ledger event with a publish timestamp.
func NewLedgerEventMessage(e ledger.Event) *LedgerEventMessage {
	return &LedgerEventMessage{
		Action:    e.Action,
		ID:        e.ID,
		Owner:     e.Owner,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
