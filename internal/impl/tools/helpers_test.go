package tools

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestLogger() *zap.Logger {
	observedZapCore, _ := observer.New(zap.DebugLevel)
	return zap.New(observedZapCore)
}

// failingClient simulates a transport-level failure (DNS, refused, timeout).
type failingClient struct{}

func (failingClient) Do(*http.Request) (*http.Response, error) {
	return nil, fmt.Errorf("dial tcp: connection refused")
}

// envelope mirrors entities.Result for assertions on serialized output.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	ErrorKind string          `json:"error_kind"`
}

func parseEnvelope(t *testing.T, raw string) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("result is not a valid envelope: %v\nraw: %s", err, raw)
	}
	return env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("failed to decode envelope data: %v\ndata: %s", err, env.Data)
	}
}
