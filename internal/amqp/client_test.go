package amqp

import (
	"errors"
	"strings"
	"testing"
	"time"

	"finease/internal/ledger"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
	}

	for _, tt := range tests {
		if got := exponentialBackoff(tt.attempt); got != tt.want {
			t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5672: connect: connection refused"), true},
		{"connection closed", errors.New("Exception (504) Reason: \"connection closed\""), true},
		{"eof", errors.New("read tcp: EOF"), true},
		{"broken pipe", errors.New("write tcp: broken pipe"), true},
		{"closed network connection", errors.New("use of closed network connection"), true},
		{"channel not open", errors.New("channel/connection is not open"), true},
		{"application error", errors.New("NOT_FOUND - no exchange 'missing'"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.want {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestLedgerEventMessageRoundTrip(t *testing.T) {
	msg := NewLedgerEventMessage(ledger.Event{
		Action: ledger.ActionCreated,
		ID:     "2f1b649a-76cb-4b22-9d2c-4f3a15b6a001",
		Owner:  "a@x.com",
	})
	if msg.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := LedgerEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Action != msg.Action || got.ID != msg.ID || got.Owner != msg.Owner {
		t.Errorf("round trip = %+v, want %+v", got, msg)
	}
}

func TestLedgerEventMessageOmitsEmptyOwner(t *testing.T) {
	data, err := (&LedgerEventMessage{Action: ledger.ActionDeleted, ID: "x", Timestamp: time.Now()}).ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if s := string(data); strings.Contains(s, "owner") {
		t.Errorf("empty owner serialized: %s", s)
	}
}
