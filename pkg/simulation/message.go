// Package simulation describes what the simulation engine hands back to the
// plotting side: a Result, wrapped in a one-shot host Message.
package simulation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ha1tch/qplot/pkg/statevector"
)

// Message types posted by the execution host.
const (
	TypeComplete = "simulationComplete"
	TypeError    = "simulationError"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrEmptyPayload   = errors.New("empty payload")
	ErrNoStatevector  = errors.New("message carries no state vector")
)

// Result is the simulation engine output. Only Statevector is used for
// plotting; probabilities and times are carried for reporting.
type Result struct {
	Statevector   statevector.StateVector `json:"statevector" msgpack:"statevector"`
	Probabilities []float64               `json:"probabilities,omitempty" msgpack:"probabilities,omitempty"`
	Times         map[string]float64      `json:"times,omitempty" msgpack:"times,omitempty"`
}

// TimeNames returns the measured phase names in a stable order.
func (r *Result) TimeNames() []string {
	names := make([]string, 0, len(r.Times))
	for name := range r.Times {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Message is one host message: a completed result or an error string.
type Message struct {
	Type   string  `json:"type" msgpack:"type"`
	Result *Result `json:"result,omitempty" msgpack:"result,omitempty"`
	Error  string  `json:"error,omitempty" msgpack:"error,omitempty"`
}

// Complete wraps a result in a simulationComplete message.
func Complete(r Result) Message {
	return Message{Type: TypeComplete, Result: &r}
}

// Failed wraps an error string in a simulationError message.
func Failed(msg string) Message {
	return Message{Type: TypeError, Error: msg}
}

// Deliver dispatches msg to exactly one of the callbacks. The error
// string of a failed simulation goes to onError untouched; the error
// returned by onComplete is passed back to the caller.
func Deliver(msg Message, onComplete func(Result) error, onError func(string)) error {
	switch msg.Type {
	case TypeComplete:
		if msg.Result == nil {
			return ErrNoStatevector
		}
		return onComplete(*msg.Result)
	case TypeError:
		onError(msg.Error)
		return nil
	default:
		return fmt.Errorf("%q: %w", msg.Type, ErrUnknownMessage)
	}
}

// envelope accepts either a full message or a bare state vector.
type envelope struct {
	Message    `msgpack:",inline"`
	QubitWidth *int      `json:"qubitWidth" msgpack:"qubitWidth"`
	Bases      []float64 `json:"bases" msgpack:"bases"`
}

func (e envelope) message() (Message, error) {
	if e.Type != "" {
		return e.Message, nil
	}
	if e.QubitWidth == nil {
		return Message{}, ErrNoStatevector
	}
	sv := statevector.StateVector{QubitWidth: *e.QubitWidth, Bases: e.Bases}
	return Complete(Result{Statevector: sv}), nil
}

// ParseJSON decodes a host message, or a bare state vector which is
// treated as a completed simulation.
func ParseJSON(data []byte) (Message, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Message{}, ErrEmptyPayload
	}
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Message{}, fmt.Errorf("decoding json message: %w", err)
	}
	return e.message()
}

// ParseMsgpack is ParseJSON for msgpack-encoded payloads.
func ParseMsgpack(data []byte) (Message, error) {
	if len(data) == 0 {
		return Message{}, ErrEmptyPayload
	}
	var e envelope
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return Message{}, fmt.Errorf("decoding msgpack message: %w", err)
	}
	return e.message()
}

// ContentTypeMsgpack selects msgpack decoding in DecodeMessage.
const ContentTypeMsgpack = "application/msgpack"

// DecodeMessage picks the decoder from a MIME content type. Anything that
// is not msgpack is read as JSON.
func DecodeMessage(contentType string, data []byte) (Message, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err == nil && (mt == ContentTypeMsgpack || mt == "application/x-msgpack") {
		return ParseMsgpack(data)
	}
	return ParseJSON(data)
}

// ToJSON encodes a message.
func ToJSON(msg Message, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(msg, "", "  ")
	}
	return json.Marshal(msg)
}

// ToMsgpack encodes a message as msgpack.
func ToMsgpack(msg Message) ([]byte, error) {
	return msgpack.Marshal(msg)
}
