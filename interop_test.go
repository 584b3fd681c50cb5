//go:build !compact

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"bytes"
	"context"
	"testing"

	"github.com/gorilla/rpc/v2/json2"
)

func TestReservedCodesMatchGorilla(t *testing.T) {
	pairs := []struct {
		kind ErrorKind
		code json2.ErrorCode
	}{
		{ParseError, json2.E_PARSE},
		{InvalidRequest, json2.E_INVALID_REQ},
		{MethodNotFound, json2.E_NO_METHOD},
		{InvalidParams, json2.E_BAD_PARAMS},
		{InternalError, json2.E_INTERNAL},
	}
	for _, p := range pairs {
		if int(p.kind.Code()) != int(p.code) {
			t.Errorf("%v: code %d differs from gorilla's %d", p.kind, p.kind.Code(), p.code)
		}
	}
}

func TestGorillaClientRoundTrip(t *testing.T) {
	server := newCanonicalTestServer(t)

	payload, err := json2.EncodeClientRequest("sum", sumMethod{A: 2, B: 3})
	if err != nil {
		t.Fatalf("encode client request: %v", err)
	}

	reply := server.HandlePayload(context.Background(), payload, "gorilla")
	if reply == nil {
		t.Fatal("expected a reply")
	}

	var result testResult
	if err := json2.DecodeClientResponse(bytes.NewReader(reply), &result); err != nil {
		t.Fatalf("decode client response: %v", err)
	}
	if result.Sum != 5 {
		t.Errorf("got %d, want 5", result.Sum)
	}
}

func TestGorillaClientSeesTypedError(t *testing.T) {
	server := newCanonicalTestServer(t)

	payload, err := json2.EncodeClientRequest("stray", struct{}{})
	if err != nil {
		t.Fatalf("encode client request: %v", err)
	}

	reply := server.HandlePayload(context.Background(), payload, "gorilla")
	if reply == nil {
		t.Fatal("expected a reply")
	}

	var result testResult
	err = json2.DecodeClientResponse(bytes.NewReader(reply), &result)
	jsonErr, ok := err.(*json2.Error)
	if !ok {
		t.Fatalf("got %T (%v), want *json2.Error", err, err)
	}
	if jsonErr.Code != json2.E_NO_METHOD {
		t.Errorf("got code %d, want %d", jsonErr.Code, json2.E_NO_METHOD)
	}
	if jsonErr.Message == "" {
		t.Error("expected a message")
	}
}
