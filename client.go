// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"sync/atomic"

	"github.com/luxfi/jsonrpc/codec"
)

// defaultCodec is the byte codec used by clients and servers unless an
// option overrides it.
var defaultCodec codec.Codec = codec.JSON{}

// Client builds request payloads for a method union M and correlates
// response payloads carrying results of type R. It is transport-agnostic:
// the caller moves payload bytes itself and feeds response bytes back to
// the pending call. Safe for concurrent use.
type Client[M Method, R any] struct {
	codec  codec.Codec
	nextID atomic.Uint32
}

// ClientOption configures a client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	codec codec.Codec
}

// WithCodec sets a custom codec. The default is JSON.
func WithCodec(c codec.Codec) ClientOption {
	return func(o *clientOptions) { o.codec = c }
}

// NewClient creates a client. Identifiers start at zero and increment by
// one per request.
func NewClient[M Method, R any](opts ...ClientOption) *Client[M, R] {
	options := clientOptions{codec: defaultCodec}
	for _, opt := range opts {
		opt(&options)
	}
	return &Client[M, R]{codec: options.codec}
}

// Request encodes a call with a fresh identifier and returns the pending
// call holding the payload to send.
func (c *Client[M, R]) Request(method M) (*Call[R], error) {
	id := idFromUint32(c.nextID.Add(1) - 1)
	payload, err := encodeRequestWire(c.codec, &id, method)
	if err != nil {
		return nil, err
	}
	return &Call[R]{id: &id, payload: payload, codec: c.codec}, nil
}

// Notify encodes a notification. The returned call carries the payload but
// no identifier, so it cannot handle a response.
func (c *Client[M, R]) Notify(method M) (*Call[R], error) {
	payload, err := encodeRequestWire(c.codec, nil, method)
	if err != nil {
		return nil, err
	}
	return &Call[R]{payload: payload, codec: c.codec}, nil
}

// Call is a pending request: the encoded payload and the identifier a
// response must answer to.
type Call[R any] struct {
	id      *ID
	payload []byte
	codec   codec.Codec
}

// ID returns the call identifier, nil for notifications.
func (c *Call[R]) ID() *ID { return c.id }

// Payload returns the encoded request payload.
func (c *Call[R]) Payload() []byte { return c.payload }

// TakePayload returns the encoded request payload and releases the call's
// reference to it.
func (c *Call[R]) TakePayload() []byte {
	payload := c.payload
	c.payload = nil
	return payload
}

// HandleResponse decodes a response payload and correlates it against this
// call. Failures are always typed *Error: InvalidRequest if the call was a
// notification or the response answers a different identifier, ParseError
// if the payload does not decode to a well-formed response, or the error
// the responder sent.
func (c *Call[R]) HandleResponse(payload []byte) (R, error) {
	var zero R
	if c.id == nil {
		return zero, &Error{Kind: InvalidRequest, Message: "request id is missing"}
	}
	response, err := DecodeResponse[R](c.codec, payload)
	if err != nil {
		return zero, &Error{Kind: ParseError, Message: err.Error()}
	}
	if !response.id.Equal(*c.id) {
		return zero, &Error{Kind: InvalidRequest, Message: "response id does not match request id"}
	}
	if !response.outcome.ok {
		return zero, response.outcome.err
	}
	return response.outcome.result, nil
}
