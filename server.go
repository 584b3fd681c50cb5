// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"fmt"
	"strings"

	"github.com/nuclio/errors"
	"github.com/nuclio/logger"

	"github.com/luxfi/jsonrpc/codec"
)

// Handler is the application capability invoked once per decoded request.
// The source descriptor identifies where the payload came from (peer
// address, connection tag) and is passed through untouched. A returned
// *Error goes on the wire as-is; any other error is wrapped into
// InternalError with its message.
type Handler[M Method, R any, S any] interface {
	Handle(ctx context.Context, method M, source S) (R, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[M Method, R any, S any] func(ctx context.Context, method M, source S) (R, error)

// Handle calls f.
func (f HandlerFunc[M, R, S]) Handle(ctx context.Context, method M, source S) (R, error) {
	return f(ctx, method, source)
}

// Server dispatches inbound payloads to a handler and encodes the replies.
// It holds no per-call state: one invocation per payload, safe to call
// concurrently. The server never fails the process over an inbound payload;
// undecodable input becomes a best-effort error response or is dropped when
// no call identifier is recoverable.
type Server[M Method, R any, S any] struct {
	logger       logger.Logger
	codec        codec.Codec
	methods      *MethodSet[M]
	handler      Handler[M, R, S]
	maxErrMsgLen int
}

// ServerOption configures a server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	codec        codec.Codec
	maxErrMsgLen int
}

// WithServerCodec sets a custom codec for the server. The default is JSON.
func WithServerCodec(c codec.Codec) ServerOption {
	return func(o *serverOptions) { o.codec = c }
}

// WithErrorMessageLimit caps the byte length of error messages the server
// emits, for deployments where payload size is bounded. Overlong messages
// are cut at a rune boundary at or below the limit. Zero, the default,
// means no limit.
func WithErrorMessageLimit(n int) ServerOption {
	return func(o *serverOptions) { o.maxErrMsgLen = n }
}

// NewServer creates a dispatcher over the given method set and handler.
func NewServer[M Method, R any, S any](parentLogger logger.Logger,
	methods *MethodSet[M],
	handler Handler[M, R, S],
	opts ...ServerOption) (*Server[M, R, S], error) {

	if methods == nil {
		return nil, errors.New("Method set cannot be nil")
	}

	if handler == nil {
		return nil, errors.New("Handler cannot be nil")
	}

	options := serverOptions{codec: defaultCodec}
	for _, opt := range opts {
		opt(&options)
	}

	return &Server[M, R, S]{
		logger:       parentLogger.GetChild("server"),
		codec:        options.codec,
		methods:      methods,
		handler:      handler,
		maxErrMsgLen: options.maxErrMsgLen,
	}, nil
}

// HandlePayload decodes one inbound payload, runs the handler and returns
// the encoded reply. It returns nil when the request is a notification,
// whatever the handler outcome, and when no reply can be produced at all.
func (s *Server[M, R, S]) HandlePayload(ctx context.Context, payload []byte, source S) []byte {
	head, err := decodeRequestHead(s.codec, payload)
	if err != nil {
		return s.recoverPayload(payload, source, err)
	}

	if !head.versionOK {
		if head.id == nil {
			return nil
		}
		return s.respondError(*head.id, &Error{Kind: InvalidRequest, Message: errInvalidProtocolVersion})
	}

	decoder, ok := s.methods.decoders[head.tag]
	if !ok {
		if head.id == nil {
			return nil
		}
		return s.respondError(*head.id, recoveryError(head.marker, fmt.Errorf("unknown method %q", head.tag)))
	}

	method, err := decoder.fromEnvelope(s.codec, payload)
	if err != nil {
		if head.id == nil {
			return nil
		}
		return s.respondError(*head.id, recoveryError(head.marker, err))
	}

	s.logger.DebugWith("Dispatching request",
		"method", head.tag,
		"source", source,
		"notification", head.id == nil)

	// The handler runs even for notifications, only the reply is dropped.
	result, err := s.handler.Handle(ctx, method, source)
	if head.id == nil {
		return nil
	}
	if err != nil {
		return s.respondError(*head.id, s.protocolError(err))
	}
	return s.respond(NewResponse(*head.id, result))
}

// recoverPayload answers a payload that did not decode as a request. A
// minimal parse extracts the identifier and the version marker; without an
// identifier the sender cannot be answered and the payload is dropped.
func (s *Server[M, R, S]) recoverPayload(payload []byte, source S, decodeErr error) []byte {
	s.logger.ErrorWith("Failed to parse request",
		"source", source,
		"error", decodeErr)

	head, err := decodeRecoveredHead(s.codec, payload)
	if err != nil || head.id == nil {
		return nil
	}
	return s.respondError(*head.id, recoveryError(head.marker, decodeErr))
}

func (s *Server[M, R, S]) respondError(id ID, rpcErr *Error) []byte {
	return s.respond(NewErrorResponse[R](id, s.clipError(rpcErr)))
}

// respond encodes a response. If encoding fails, an InternalError response
// carrying the encoder's message is encoded in its place; if that fails
// too, nothing is produced.
func (s *Server[M, R, S]) respond(response *Response[R]) []byte {
	payload, err := response.Encode(s.codec)
	if err == nil {
		return payload
	}

	s.logger.ErrorWith("Failed to serialize response",
		"id", response.id,
		"error", err)

	fallback := NewInternalErrorResponse[R](response.id, s.clip(err.Error()))
	payload, err = fallback.Encode(s.codec)
	if err == nil {
		return payload
	}

	s.logger.ErrorWith("Failed to serialize fallback response",
		"id", response.id,
		"error", err)
	return nil
}

func (s *Server[M, R, S]) protocolError(err error) *Error {
	if rpcErr, ok := err.(*Error); ok {
		return rpcErr
	}
	return &Error{Kind: InternalError, Message: err.Error()}
}

func (s *Server[M, R, S]) clipError(rpcErr *Error) *Error {
	if s.maxErrMsgLen <= 0 || len(rpcErr.Message) <= s.maxErrMsgLen {
		return rpcErr
	}
	return &Error{Kind: rpcErr.Kind, Message: s.clip(rpcErr.Message)}
}

func (s *Server[M, R, S]) clip(message string) string {
	if s.maxErrMsgLen <= 0 || len(message) <= s.maxErrMsgLen {
		return message
	}
	return strings.ToValidUTF8(message[:s.maxErrMsgLen], "")
}
