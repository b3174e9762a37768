// Package sharecode turns an event record into a short URL-safe token and back.
//
// A token is the JSON payload {"results": <record>, "shared": <bool>} in
// unpadded URL-safe base64. It is an encoding, not encryption: anyone holding
// a token can read the whole assignment set.
package sharecode

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmynk/secretsanta/internal/models"
)

// QueryParam is the URL query parameter that carries a token.
const QueryParam = "r"

var (
	ErrEncode = errors.New("could not produce a shareable link")
	ErrDecode = errors.New("invalid share token")
)

// EncodeError wraps a serialization failure.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("%v: %v", ErrEncode, e.Err) }

// Is reports ErrEncode so callers can match with errors.Is.
func (e *EncodeError) Is(target error) bool { return target == ErrEncode }

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError describes why a token was rejected.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrDecode, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrDecode, e.Reason)
}

// Is reports ErrDecode so callers can match with errors.Is.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }

// Payload is what a token carries.
type Payload struct {
	Results models.EventRecord `json:"results"`

	// Shared marks a recipient-only view: the holder may re-share the
	// results but not draw again.
	Shared bool `json:"shared"`
}

// wirePayload makes "results" mandatory when decoding.
type wirePayload struct {
	Results *models.EventRecord `json:"results"`
	Shared  bool                `json:"shared"`
}

// Encode serializes record and the shared flag into a token.
func Encode(record models.EventRecord, shared bool) (string, error) {
	data, err := json.Marshal(Payload{Results: record, Shared: shared})
	if err != nil {
		return "", &EncodeError{Err: err}
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "="), nil
}

// Decode parses a token produced by Encode. It returns a *DecodeError for
// anything that is not a well-formed token.
func Decode(token string) (Payload, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Payload{}, &DecodeError{Reason: "empty token"}
	}

	data, err := base64.URLEncoding.DecodeString(Repad(token))
	if err != nil {
		return Payload{}, &DecodeError{Reason: "malformed encoding", Err: err}
	}

	var wire wirePayload
	if err := json.Unmarshal(data, &wire); err != nil {
		return Payload{}, &DecodeError{Reason: "malformed payload", Err: err}
	}
	if wire.Results == nil {
		return Payload{}, &DecodeError{Reason: "missing results"}
	}
	for i, p := range wire.Results.Results {
		if p.Giver == "" || p.Receiver == "" {
			return Payload{}, &DecodeError{Reason: fmt.Sprintf("pair %d is incomplete", i)}
		}
	}

	return Payload{Results: *wire.Results, Shared: wire.Shared}, nil
}

// Repad restores the "=" padding Encode strips. Base64 works in 4-character
// blocks, so the token is extended to the next multiple of 4. A token with
// length ≡ 1 (mod 4) can never be valid; it is padded anyway and the base64
// decoder rejects it.
func Repad(token string) string {
	pad := (4 - len(token)%4) % 4
	return token + strings.Repeat("=", pad)
}

// Link places token on base as the QueryParam parameter, keeping any other
// query parameters base already has.
func Link(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	q := u.Query()
	q.Set(QueryParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromQuery decodes the token in q, if any. ok is false when there is no
// token or it does not decode; err explains the latter.
func FromQuery(q url.Values) (p Payload, ok bool, err error) {
	token := q.Get(QueryParam)
	if token == "" {
		return Payload{}, false, nil
	}
	p, err = Decode(token)
	if err != nil {
		return Payload{}, false, err
	}
	return p, true, nil
}

// Parse accepts either a bare token or a full link carrying one.
func Parse(input string) (Payload, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "?") || strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return Payload{}, &DecodeError{Reason: "malformed link", Err: err}
		}
		p, ok, err := FromQuery(u.Query())
		if err != nil {
			return Payload{}, err
		}
		if !ok {
			return Payload{}, &DecodeError{Reason: "link has no " + QueryParam + " parameter"}
		}
		return p, nil
	}
	return Decode(input)
}
