//go:build !compact

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httputil

import (
	"testing"

	"github.com/luxfi/jsonrpc"
)

func TestHTTPResponseBodyShape(t *testing.T) {
	view, err := NewHTTPResponse(jsonrpc.NewResponse(jsonrpc.NumberID(3), greetResult{Message: "hi"}))
	if err != nil {
		t.Fatalf("new http response: %v", err)
	}
	if want := `{"result":{"message":"hi"}}`; string(view.Body()) != want {
		t.Errorf("got %s, want %s", view.Body(), want)
	}

	view, err = NewHTTPResponse(jsonrpc.NewErrorResponse[greetResult](jsonrpc.NumberID(3),
		jsonrpc.NewError(jsonrpc.MethodNotFound, "nope")))
	if err != nil {
		t.Fatalf("new http response: %v", err)
	}
	if want := `{"error":{"code":-32601,"message":"nope"}}`; string(view.Body()) != want {
		t.Errorf("got %s, want %s", view.Body(), want)
	}
}
