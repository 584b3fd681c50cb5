// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package jsonrpc implements the JSON-RPC 2.0 message protocol without a
// transport: requests and responses enter and leave as byte slices, and the
// caller moves them however it likes.
//
// # Wire Modes
//
// Canonical mode is the default and speaks standard JSON-RPC 2.0 framing.
// The compact mode shrinks envelopes for constrained links with
// single-letter field names and no version marker. The mode is a build-time
// choice:
//
//	go build                # canonical JSON-RPC 2.0 framing (default)
//	go build -tags compact  # single-letter field names, no version marker
//
// Canonical decoding also accepts the compact short names for the
// identifier and the outcome; the method tagging scheme itself is fixed per
// build and not cross-decodable.
//
// # Usage
//
// A method is a struct whose fields are the call parameters:
//
//	type echoMethod struct {
//	    Text string `json:"text" msgpack:"text"`
//	}
//
//	func (echoMethod) MethodName() string { return "echo" }
//
// Client usage:
//
//	client := jsonrpc.NewClient[jsonrpc.Method, string]()
//
//	call, err := client.Request(echoMethod{Text: "hi"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	send(call.TakePayload()) // the transport is the caller's business
//	result, err := call.HandleResponse(reply)
//
// Server usage:
//
//	methods := jsonrpc.NewMethodSet[jsonrpc.Method]()
//	if err := jsonrpc.Register[echoMethod](methods); err != nil {
//	    log.Fatal(err)
//	}
//
//	handler := jsonrpc.HandlerFunc[jsonrpc.Method, string, string](
//	    func(ctx context.Context, method jsonrpc.Method, source string) (string, error) {
//	        return method.(echoMethod).Text, nil
//	    })
//
//	server, err := jsonrpc.NewServer(parentLogger, methods, handler)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reply := server.HandlePayload(ctx, payload, source) // nil for notifications
//
// # Architecture
//
// The package separates concerns:
//
//   - errors.go: error taxonomy, the five reserved codes plus custom codes
//   - id.go: call identifiers (string, number or null)
//   - method.go: the Method interface and per-union decode registry
//   - request.go, response.go: the message model
//   - wire_canonical.go, wire_compact.go: the two build-time wire encodings
//   - client.go: request building and response correlation
//   - server.go: payload dispatch with error recovery
//   - codec/: pluggable byte codecs (JSON, MessagePack)
//   - httputil/: query-string and minimal-HTTP views of the messages
//
// The protocol layer performs no I/O and keeps no per-call state beyond the
// client's identifier counter, making the transport a deployment decision
// rather than a code change.
package jsonrpc
