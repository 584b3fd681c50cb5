// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"fmt"

	"github.com/luxfi/jsonrpc/codec"
)

// Version is the protocol version marker. Canonical mode emits it on every
// envelope and rejects any other value on decode; compact mode omits it.
const Version = "2.0"

// Request is a call envelope: an optional identifier and a method value
// from the application's closed union. A request without an identifier is a
// notification and never produces a response.
type Request[M Method] struct {
	id     *ID
	method M
}

// NewRequest builds a request that expects a response correlated by id.
func NewRequest[M Method](id ID, method M) *Request[M] {
	return &Request[M]{id: &id, method: method}
}

// NewNotification builds a fire-and-forget request with no identifier.
func NewNotification[M Method](method M) *Request[M] {
	return &Request[M]{method: method}
}

// ID returns the call identifier, nil for notifications.
func (r *Request[M]) ID() *ID { return r.id }

// Method returns the method value.
func (r *Request[M]) Method() M { return r.method }

// IsNotification reports whether the request carries no identifier.
func (r *Request[M]) IsNotification() bool { return r.id == nil }

// Encode serializes the request envelope with the given codec.
func (r *Request[M]) Encode(c codec.Codec) ([]byte, error) {
	return encodeRequestWire(c, r.id, r.method)
}

// DecodeRequest decodes a request envelope. Codec-level failures on the
// head parse return the codec's error unchanged; protocol-level failures
// return an *Error: a mismatched version marker is InvalidRequest, and an
// unregistered or undecodable method is MethodNotFound when the marker
// vouches for the envelope (canonical marker present, or compact mode) but
// a bare InvalidRequest when a canonical envelope carried no marker.
func DecodeRequest[M Method](c codec.Codec, ms *MethodSet[M], payload []byte) (*Request[M], error) {
	head, err := decodeRequestHead(c, payload)
	if err != nil {
		return nil, err
	}
	if !head.versionOK {
		return nil, &Error{Kind: InvalidRequest, Message: errInvalidProtocolVersion}
	}
	d, ok := ms.decoders[head.tag]
	if !ok {
		return nil, recoveryError(head.marker, fmt.Errorf("unknown method %q", head.tag))
	}
	method, err := d.fromEnvelope(c, payload)
	if err != nil {
		return nil, recoveryError(head.marker, err)
	}
	return &Request[M]{id: head.id, method: method}, nil
}

// requestHead is the mode-normalized prefix of a request: identifier with
// aliases merged, method tag, the raw version marker and its validity.
type requestHead struct {
	id        *ID
	tag       string
	marker    *string
	versionOK bool
}

// recoveredHead is the minimal parse of an undecodable request: just the
// identifier and the raw marker, if any.
type recoveredHead struct {
	id     *ID
	marker *string
}

// mergeRequestID resolves the identifier of a request from its long and
// short field forms, long name first. A null identifier decodes as absent,
// matching optional-field semantics on the wire.
func mergeRequestID(id, alt *ID) *ID {
	if id == nil {
		id = alt
	}
	if id != nil && id.IsNull() {
		return nil
	}
	return id
}
