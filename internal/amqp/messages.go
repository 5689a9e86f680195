package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventAction names the mutation a transaction event describes.
type EventAction string

const (
	ActionUpsert EventAction = "upsert"
	ActionDelete EventAction = "delete"
	ActionClear  EventAction = "clear"
)

// TransactionEventMessage is a lightweight change notification. It carries
// only the transaction ID and action; the mirror worker fetches the full row
// from the primary store, so a stale message can never overwrite newer data.
type TransactionEventMessage struct {
	TransactionID string      `json:"transaction_id,omitempty"`
	Action        EventAction `json:"action"`
	Timestamp     time.Time   `json:"timestamp"`
}

// NewTransactionEvent creates an event message for a single transaction.
func NewTransactionEvent(id string, action EventAction) *TransactionEventMessage {
	return &TransactionEventMessage{
		TransactionID: id,
		Action:        action,
		Timestamp:     time.Now(),
	}
}

// NewClearEvent creates an event message signalling that every transaction
// was removed.
func NewClearEvent() *TransactionEventMessage {
	return &TransactionEventMessage{
		Action:    ActionClear,
		Timestamp: time.Now(),
	}
}

// Validate checks the message for fields the worker cannot act without.
func (m *TransactionEventMessage) Validate() error {
	switch m.Action {
	case ActionUpsert, ActionDelete:
		if m.TransactionID == "" {
			return fmt.Errorf("%s event without transaction id", m.Action)
		}
	case ActionClear:
		// No ID required.
	default:
		return fmt.Errorf("unknown event action: %q", m.Action)
	}
	return nil
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionEventFromJSON parses a message from JSON bytes.
func TransactionEventFromJSON(data []byte) (*TransactionEventMessage, error) {
	var msg TransactionEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
