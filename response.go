// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"errors"

	"github.com/luxfi/jsonrpc/codec"
)

// Outcome is the result of a handled call: either a result value or a
// protocol error, never both.
type Outcome[R any] struct {
	ok     bool
	result R
	err    *Error
}

// OK builds a successful outcome.
func OK[R any](result R) Outcome[R] {
	return Outcome[R]{ok: true, result: result}
}

// Err builds a failed outcome.
func Err[R any](err *Error) Outcome[R] {
	return Outcome[R]{err: err}
}

// IsOK reports whether the outcome carries a result.
func (o Outcome[R]) IsOK() bool { return o.ok }

// Result returns the result value, the zero value for failed outcomes.
func (o Outcome[R]) Result() R { return o.result }

// Err returns the protocol error, nil for successful outcomes.
func (o Outcome[R]) Err() *Error { return o.err }

// Response is a reply envelope: the identifier of the call it answers and
// the call's outcome. Unlike requests, a response always has an identifier.
type Response[R any] struct {
	id      ID
	outcome Outcome[R]
}

// NewResponse builds a successful response to the call with the given id.
func NewResponse[R any](id ID, result R) *Response[R] {
	return &Response[R]{id: id, outcome: OK(result)}
}

// NewErrorResponse builds a failed response to the call with the given id.
func NewErrorResponse[R any](id ID, err *Error) *Response[R] {
	return &Response[R]{id: id, outcome: Err[R](err)}
}

// NewInternalErrorResponse builds an InternalError response, the reply of
// last resort when a handler or the serializer itself fails.
func NewInternalErrorResponse[R any](id ID, message string) *Response[R] {
	return NewErrorResponse[R](id, &Error{Kind: InternalError, Message: message})
}

// ID returns the identifier of the call this response answers.
func (r *Response[R]) ID() ID { return r.id }

// Outcome returns the call's outcome.
func (r *Response[R]) Outcome() Outcome[R] { return r.outcome }

// Encode serializes the response envelope with the given codec.
func (r *Response[R]) Encode(c codec.Codec) ([]byte, error) {
	return encodeResponseWire(c, r.id, r.outcome)
}

// DecodeResponse decodes a response envelope. The envelope must carry an
// identifier and exactly one of a result or an error.
func DecodeResponse[R any](c codec.Codec, payload []byte) (*Response[R], error) {
	return decodeResponseWire[R](c, payload)
}

// EncodeOutcome serializes a bare outcome without the response envelope,
// for transports that convey the call identifier out of band.
func EncodeOutcome[R any](c codec.Codec, o Outcome[R]) ([]byte, error) {
	return encodeOutcomeWire(c, o)
}

// wireError is the wire form of a protocol error. Its field names are the
// same in both wire modes.
type wireError struct {
	Code    int16   `json:"code" msgpack:"code"`
	Message *string `json:"message,omitempty" msgpack:"message,omitempty"`
}

func newWireError(e *Error) *wireError {
	w := &wireError{Code: e.Kind.Code()}
	if e.Message != "" {
		w.Message = &e.Message
	}
	return w
}

func (w *wireError) toError() *Error {
	e := &Error{Kind: ErrorKind(w.Code)}
	if w.Message != nil {
		e.Message = *w.Message
	}
	return e
}

func buildOutcome[R any](result *R, we *wireError) (Outcome[R], error) {
	switch {
	case result != nil && we != nil:
		return Outcome[R]{}, errors.New("response carries both a result and an error")
	case result != nil:
		return OK(*result), nil
	case we != nil:
		return Err[R](we.toError()), nil
	default:
		return Outcome[R]{}, errors.New("response carries neither a result nor an error")
	}
}
