//go:build compact

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"errors"

	"github.com/luxfi/jsonrpc/codec"
)

// Mode reports the wire encoding selected at build time.
const Mode = "compact"

// errInvalidProtocolVersion is referenced by the dispatcher; compact mode
// carries no version marker, so it is never emitted in this build.
const errInvalidProtocolVersion = "Invalid protocol version"

// Compact mode is space-reduced non-standard tagging: single-letter field
// names, no version marker. A jsonrpc field arriving on the wire is ignored
// whatever its value.

type wireRequest[V any] struct {
	ID     *ID    `json:"i,omitempty" msgpack:"i,omitempty"`
	Tag    string `json:"m" msgpack:"m"`
	Params V      `json:"p" msgpack:"p"`
}

type wireRequestHead struct {
	ID  *ID    `json:"i" msgpack:"i"`
	Tag string `json:"m" msgpack:"m"`
}

type wireRecoveredHead struct {
	ID *ID `json:"i" msgpack:"i"`
}

type wireResponse[R any] struct {
	ID     *ID        `json:"i,omitempty" msgpack:"i,omitempty"`
	Result *R         `json:"r,omitempty" msgpack:"r,omitempty"`
	Err    *wireError `json:"e,omitempty" msgpack:"e,omitempty"`
}

type wireOutcome[R any] struct {
	Result *R         `json:"r,omitempty" msgpack:"r,omitempty"`
	Err    *wireError `json:"e,omitempty" msgpack:"e,omitempty"`
}

func encodeRequestWire[M Method](c codec.Codec, id *ID, method M) ([]byte, error) {
	return c.Encode(&wireRequest[M]{
		ID:     id,
		Tag:    method.MethodName(),
		Params: method,
	})
}

func decodeRequestHead(c codec.Codec, payload []byte) (requestHead, error) {
	var w wireRequestHead
	if err := c.Decode(payload, &w); err != nil {
		return requestHead{}, err
	}
	return requestHead{
		id:        mergeRequestID(w.ID, nil),
		tag:       w.Tag,
		versionOK: true,
	}, nil
}

func decodeRecoveredHead(c codec.Codec, payload []byte) (recoveredHead, error) {
	var w wireRecoveredHead
	if err := c.Decode(payload, &w); err != nil {
		return recoveredHead{}, err
	}
	return recoveredHead{id: mergeRequestID(w.ID, nil)}, nil
}

// recoveryError classifies a request that could not be resolved to a
// registered method call. Without a version marker the only thing known is
// that the method could not be understood.
func recoveryError(_ *string, decodeErr error) *Error {
	return &Error{Kind: MethodNotFound, Message: decodeErr.Error()}
}

func encodeResponseWire[R any](c codec.Codec, id ID, o Outcome[R]) ([]byte, error) {
	w := wireResponse[R]{
		ID: &id,
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
	if w.ID == nil {
		return nil, errors.New("response has no id")
	}
	outcome, err := buildOutcome(w.Result, w.Err)
	if err != nil {
		return nil, err
	}
	return &Response[R]{id: *w.ID, outcome: outcome}, nil
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
