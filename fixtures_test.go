// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"fmt"
	"testing"

	"github.com/luxfi/jsonrpc/codec"
)

// Shared fixtures: a small method union with two calls and one result type.

type echoMethod struct {
	Text string `json:"text" msgpack:"text"`
}

func (echoMethod) MethodName() string { return "echo" }

type sumMethod struct {
	A int `json:"a" msgpack:"a"`
	B int `json:"b" msgpack:"b"`
}

func (sumMethod) MethodName() string { return "sum" }

// mistypedSumMethod shares sum's wire tag but carries a mistyped field, so
// its payloads pass the envelope decode and fail at the params decode.
type mistypedSumMethod struct {
	A string `json:"a" msgpack:"a"`
}

func (mistypedSumMethod) MethodName() string { return "sum" }

// strayMethod is never registered.
type strayMethod struct{}

func (strayMethod) MethodName() string { return "stray" }

type testResult struct {
	Echo string `json:"echo,omitempty" msgpack:"echo,omitempty"`
	Sum  int    `json:"sum,omitempty" msgpack:"sum,omitempty"`
}

func newTestMethodSet(t testing.TB) *MethodSet[Method] {
	t.Helper()
	ms := NewMethodSet[Method]()
	if err := Register[echoMethod](ms); err != nil {
		t.Fatalf("register echo: %v", err)
	}
	if err := Register[sumMethod](ms); err != nil {
		t.Fatalf("register sum: %v", err)
	}
	return ms
}

func testHandler() HandlerFunc[Method, testResult, string] {
	return func(_ context.Context, method Method, _ string) (testResult, error) {
		switch m := method.(type) {
		case echoMethod:
			return testResult{Echo: m.Text}, nil
		case sumMethod:
			return testResult{Sum: m.A + m.B}, nil
		default:
			return testResult{}, NewError(MethodNotFound, fmt.Sprintf("unknown method %q", method.MethodName()))
		}
	}
}

// refusingCodec fails Encode while failures remain and passes Decode
// through. A negative count fails every Encode.
type refusingCodec struct {
	codec.Codec
	failures int
}

func (c *refusingCodec) Encode(v interface{}) ([]byte, error) {
	if c.failures != 0 {
		if c.failures > 0 {
			c.failures--
		}
		return nil, fmt.Errorf("encoder refused")
	}
	return c.Codec.Encode(v)
}
