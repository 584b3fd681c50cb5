// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"fmt"
	"strconv"
)

// Reserved JSON-RPC 2.0 error kinds. The codes are fixed by the protocol
// and must never be renumbered.
const (
	ParseError     ErrorKind = -32700
	InvalidRequest ErrorKind = -32600
	MethodNotFound ErrorKind = -32601
	InvalidParams  ErrorKind = -32602
	InternalError  ErrorKind = -32603
)

// ErrorKind is a JSON-RPC error code, transmitted as a bare signed 16-bit
// integer. The five reserved kinds carry their standard meanings; every
// other value is application-defined. Conversion between kind and wire
// integer is the identity in both directions, so it can never fail and
// unknown codes round-trip unchanged.
type ErrorKind int16

// Custom returns an application-defined error kind for code. A code that
// collides with a reserved kind is that reserved kind.
func Custom(code int16) ErrorKind { return ErrorKind(code) }

// Code returns the wire integer of the kind.
func (k ErrorKind) Code() int16 { return int16(k) }

// IsReserved reports whether k is one of the five reserved kinds.
func (k ErrorKind) IsReserved() bool {
	switch k {
	case ParseError, InvalidRequest, MethodNotFound, InvalidParams, InternalError:
		return true
	}
	return false
}

func (k ErrorKind) String() string { return strconv.Itoa(int(k)) }

// Error is an RPC-level failure carried inside a response envelope.
// An empty Message means no message is transmitted.
type Error struct {
	Kind    ErrorKind
	Message string
}

// NewError creates an Error with the given kind and message.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Kind)
	}
	return e.Kind.String()
}
