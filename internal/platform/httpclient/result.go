package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind distingue éxito con datos, éxito sin cuerpo y fallo.
// El valor cero es KindFailure.
type Kind int

const (
	KindFailure Kind = iota
	KindOK
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindEmpty:
		return "empty"
	default:
		return "failure"
	}
}

type Result struct {
	Kind       Kind
	StatusCode int
	Body       []byte
	Err        error
}

var ErrNoBody = errors.New("httpclient: result has no body")

func failure(status int, body []byte, err error) Result {
	return Result{Kind: KindFailure, StatusCode: status, Body: body, Err: err}
}

func (r Result) OK() bool     { return r.Kind == KindOK }
func (r Result) Empty() bool  { return r.Kind == KindEmpty }
func (r Result) Failed() bool { return r.Kind == KindFailure }

// Decode deserializa el cuerpo de un KindOK.
func (r Result) Decode(out any) error {
	if r.Kind != KindOK {
		return ErrNoBody
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

// HTTPError representa una respuesta no-2xx con el mensaje legible ya extraído.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// newHTTPError toma "detail" o "message" del JSON de error (convención FastAPI/Express).
func newHTTPError(status int, raw []byte) *HTTPError {
	msg := extractMessage(raw)
	if msg == "" {
		msg = fmt.Sprintf("HTTP Error: %d %s", status, http.StatusText(status))
	}
	return &HTTPError{StatusCode: status, Message: msg}
}

func extractMessage(raw []byte) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if s := messageFrom(body.Detail); s != "" {
		return s
	}
	return messageFrom(body.Message)
}

// messageFrom acepta un string o la lista de errores de validación de FastAPI ([{msg: ...}]).
func messageFrom(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, it := range list {
			if m := strings.TrimSpace(it.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// StatusCode devuelve el status upstream si err envuelve un *HTTPError, o 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}
