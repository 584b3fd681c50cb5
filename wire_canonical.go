//go:build !compact

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"errors"

	"github.com/luxfi/jsonrpc/codec"
)

// Mode reports the wire encoding selected at build time.
const Mode = "canonical"

// errInvalidProtocolVersion is the fixed message for a present-but-wrong
// version marker. Wire-visible, must not change.
const errInvalidProtocolVersion = "Invalid protocol version"

// Canonical mode is strict JSON-RPC 2.0 tagging: the version marker is
// always emitted and, when present on decode, must match; the method union
// is tagged by the method/params pair; decode additionally accepts the
// compact short names for the identifier and the outcome as aliases.

type wireRequest[V any] struct {
	Jsonrpc *string `json:"jsonrpc,omitempty" msgpack:"jsonrpc,omitempty"`
	ID      *ID     `json:"id,omitempty" msgpack:"id,omitempty"`
	AltID   *ID     `json:"i,omitempty" msgpack:"i,omitempty"`
	Tag     string  `json:"method" msgpack:"method"`
	Params  V       `json:"params" msgpack:"params"`
}

type wireRequestHead struct {
	Jsonrpc *string `json:"jsonrpc" msgpack:"jsonrpc"`
	ID      *ID     `json:"id" msgpack:"id"`
	AltID   *ID     `json:"i" msgpack:"i"`
	Tag     string  `json:"method" msgpack:"method"`
}

type wireRecoveredHead struct {
	Jsonrpc *string `json:"jsonrpc" msgpack:"jsonrpc"`
	ID      *ID     `json:"id" msgpack:"id"`
	AltID   *ID     `json:"i" msgpack:"i"`
}

type wireResponse[R any] struct {
	Jsonrpc   *string    `json:"jsonrpc,omitempty" msgpack:"jsonrpc,omitempty"`
	ID        *ID        `json:"id,omitempty" msgpack:"id,omitempty"`
	AltID     *ID        `json:"i,omitempty" msgpack:"i,omitempty"`
	Result    *R         `json:"result,omitempty" msgpack:"result,omitempty"`
	AltResult *R         `json:"r,omitempty" msgpack:"r,omitempty"`
	Err       *wireError `json:"error,omitempty" msgpack:"error,omitempty"`
	AltErr    *wireError `json:"e,omitempty" msgpack:"e,omitempty"`
}

type wireOutcome[R any] struct {
	Result *R         `json:"result,omitempty" msgpack:"result,omitempty"`
	Err    *wireError `json:"error,omitempty" msgpack:"error,omitempty"`
}

func versionMarker() *string {
	v := Version
	return &v
}

func encodeRequestWire[M Method](c codec.Codec, id *ID, method M) ([]byte, error) {
	return c.Encode(&wireRequest[M]{
		Jsonrpc: versionMarker(),
		ID:      id,
		Tag:     method.MethodName(),
		Params:  method,
	})
}

func decodeRequestHead(c codec.Codec, payload []byte) (requestHead, error) {
	var w wireRequestHead
	if err := c.Decode(payload, &w); err != nil {
		return requestHead{}, err
	}
	return requestHead{
		id:        mergeRequestID(w.ID, w.AltID),
		tag:       w.Tag,
		marker:    w.Jsonrpc,
		versionOK: w.Jsonrpc == nil || *w.Jsonrpc == Version,
	}, nil
}

func decodeRecoveredHead(c codec.Codec, payload []byte) (recoveredHead, error) {
	var w wireRecoveredHead
	if err := c.Decode(payload, &w); err != nil {
		return recoveredHead{}, err
	}
	return recoveredHead{
		id:     mergeRequestID(w.ID, w.AltID),
		marker: w.Jsonrpc,
	}, nil
}

// recoveryError classifies a request that could not be resolved to a
// registered method call: a matching marker means the envelope was
// structurally sound but its method was unrecognized; a mismatched marker
// overrides the decode error with the fixed version message; an absent
// marker is a bare invalid request.
func recoveryError(marker *string, decodeErr error) *Error {
	if marker == nil {
		return &Error{Kind: InvalidRequest}
	}
	if *marker != Version {
		return &Error{Kind: InvalidRequest, Message: errInvalidProtocolVersion}
	}
	return &Error{Kind: MethodNotFound, Message: decodeErr.Error()}
}

func encodeResponseWire[R any](c codec.Codec, id ID, o Outcome[R]) ([]byte, error) {
	w := wireResponse[R]{
		Jsonrpc: versionMarker(),
		ID:      &id,
	}
	if o.ok {
		w.Result = &o.result
	} else {
		w.Err = newWireError(o.err)
	}
	return c.Encode(&w)
}

func decodeResponseWire[R any](c codec.Codec, payload []byte) (*Response[R], error) {
	var w wireResponse[R]
	if err := c.Decode(payload, &w); err != nil {
		return nil, err
	}
	if w.Jsonrpc != nil && *w.Jsonrpc != Version {
		return nil, errors.New(errInvalidProtocolVersion)
	}
	id := w.ID
	if id == nil {
		id = w.AltID
	}
	if id == nil {
		return nil, errors.New("response has no id")
	}
	result := w.Result
	if result == nil {
		result = w.AltResult
	}
	wireErr := w.Err
	if wireErr == nil {
		wireErr = w.AltErr
	}
	outcome, err := buildOutcome(result, wireErr)
	if err != nil {
		return nil, err
	}
	return &Response[R]{id: *id, outcome: outcome}, nil
}

func encodeOutcomeWire[R any](c codec.Codec, o Outcome[R]) ([]byte, error) {
	var w wireOutcome[R]
	if o.ok {
		w.Result = &o.result
	} else {
		w.Err = newWireError(o.err)
	}
	return c.Encode(&w)
}
