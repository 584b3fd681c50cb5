// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httputil

import (
	"bytes"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/luxfi/jsonrpc"
	"github.com/luxfi/jsonrpc/codec"
)

type greetResult struct {
	Message string `json:"message" msgpack:"message"`
}

func TestHTTPResponseSuccess(t *testing.T) {
	response := jsonrpc.NewResponse(jsonrpc.NumberID(3), greetResult{Message: "hi"})

	view, err := NewHTTPResponse(response)
	if err != nil {
		t.Fatalf("new http response: %v", err)
	}

	if view.StatusCode() != fasthttp.StatusOK {
		t.Errorf("got status %d, want 200", view.StatusCode())
	}
	if view.ContentType() != "application/json" {
		t.Errorf("got content type %q", view.ContentType())
	}
	if got := view.CallID().String(); got != "3" {
		t.Errorf("got call id %q", got)
	}

	// The body is the outcome alone, not the response envelope.
	outcome, err := jsonrpc.EncodeOutcome(codec.JSON{}, response.Outcome())
	if err != nil {
		t.Fatalf("encode outcome: %v", err)
	}
	if !bytes.Equal(view.Body(), outcome) {
		t.Errorf("got body %s, want %s", view.Body(), outcome)
	}
}

func TestHTTPResponseError(t *testing.T) {
	response := jsonrpc.NewErrorResponse[greetResult](jsonrpc.StringID("abc"),
		jsonrpc.NewError(jsonrpc.MethodNotFound, "nope"))

	view, err := NewHTTPResponse(response)
	if err != nil {
		t.Fatalf("new http response: %v", err)
	}

	if view.StatusCode() != fasthttp.StatusInternalServerError {
		t.Errorf("got status %d, want 500", view.StatusCode())
	}
	// The header carries the bare identifier, without JSON quotes.
	if got := view.CallID().String(); got != "abc" {
		t.Errorf("got call id %q", got)
	}
}

func TestHTTPResponseWrite(t *testing.T) {
	view, err := NewHTTPResponse(jsonrpc.NewResponse(jsonrpc.NumberID(3), greetResult{Message: "hi"}))
	if err != nil {
		t.Fatalf("new http response: %v", err)
	}

	var ctx fasthttp.RequestCtx
	view.Write(&ctx)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusOK {
		t.Errorf("got status %d, want 200", got)
	}
	if got := string(ctx.Response.Header.ContentType()); got != "application/json" {
		t.Errorf("got content type %q", got)
	}
	if got := string(ctx.Response.Header.Peek(HeaderCallID)); got != "3" {
		t.Errorf("got %s header %q", HeaderCallID, got)
	}
	if !bytes.Equal(ctx.Response.Body(), view.Body()) {
		t.Errorf("got body %s, want %s", ctx.Response.Body(), view.Body())
	}
}
