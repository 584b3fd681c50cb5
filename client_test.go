// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"sync"
	"testing"
)

func TestClientIDsStartAtZero(t *testing.T) {
	client := NewClient[Method, testResult]()

	for want := int64(0); want < 3; want++ {
		call, err := client.Request(echoMethod{Text: "hi"})
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if id := call.ID(); id == nil || !id.Equal(NumberID(want)) {
			t.Errorf("got id %v, want %d", id, want)
		}
		if len(call.Payload()) == 0 {
			t.Error("empty payload")
		}
	}
}

func TestClientConcurrentIDsAreUnique(t *testing.T) {
	client := NewClient[Method, testResult]()

	const callers = 8
	const perCaller = 200
	ids := make(chan string, callers*perCaller)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perCaller; j++ {
				call, err := client.Request(echoMethod{})
				if err != nil {
					t.Error(err)
					return
				}
				ids <- call.ID().String()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, callers*perCaller)
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != callers*perCaller {
		t.Errorf("got %d ids, want %d", len(seen), callers*perCaller)
	}
}

func TestCallTakePayload(t *testing.T) {
	client := NewClient[Method, testResult]()
	call, err := client.Request(echoMethod{Text: "hi"})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	if payload := call.TakePayload(); len(payload) == 0 {
		t.Fatal("empty payload")
	}
	if call.Payload() != nil {
		t.Error("payload not released")
	}
}

func TestHandleResponseSuccess(t *testing.T) {
	client := NewClient[Method, testResult]()
	call, err := client.Request(sumMethod{A: 2, B: 3})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	reply, err := NewResponse(*call.ID(), testResult{Sum: 5}).Encode(defaultCodec)
	if err != nil {
		t.Fatalf("encode response: %v", err)
	}

	result, err := call.HandleResponse(reply)
	if err != nil {
		t.Fatalf("handle response: %v", err)
	}
	if result.Sum != 5 {
		t.Errorf("got %d, want 5", result.Sum)
	}
}

func TestHandleResponseErrorOutcome(t *testing.T) {
	client := NewClient[Method, testResult]()
	call, err := client.Request(echoMethod{})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	reply, err := NewErrorResponse[testResult](*call.ID(), NewError(Custom(-32000), "X")).Encode(defaultCodec)
	if err != nil {
		t.Fatalf("encode response: %v", err)
	}

	_, err = call.HandleResponse(reply)
	rpcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T (%v), want *Error", err, err)
	}
	if rpcErr.Kind != Custom(-32000) || rpcErr.Message != "X" {
		t.Errorf("got %v", rpcErr)
	}
}

func TestHandleResponseIDMismatch(t *testing.T) {
	client := NewClient[Method, testResult]()
	call, err := client.Request(echoMethod{})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	reply, err := NewResponse(NumberID(999), testResult{}).Encode(defaultCodec)
	if err != nil {
		t.Fatalf("encode response: %v", err)
	}

	_, err = call.HandleResponse(reply)
	rpcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T (%v), want *Error", err, err)
	}
	if rpcErr.Kind != InvalidRequest {
		t.Errorf("got kind %v, want InvalidRequest", rpcErr.Kind)
	}
	if rpcErr.Message != "response id does not match request id" {
		t.Errorf("got message %q", rpcErr.Message)
	}
}

func TestHandleResponseOnNotification(t *testing.T) {
	client := NewClient[Method, testResult]()
	call, err := client.Notify(echoMethod{Text: "hi"})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if call.ID() != nil {
		t.Error("notification must carry no id")
	}

	_, err = call.HandleResponse([]byte("{}"))
	rpcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T (%v), want *Error", err, err)
	}
	if rpcErr.Kind != InvalidRequest || rpcErr.Message != "request id is missing" {
		t.Errorf("got %v", rpcErr)
	}
}

func TestHandleResponseGarbage(t *testing.T) {
	client := NewClient[Method, testResult]()
	call, err := client.Request(echoMethod{})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	_, err = call.HandleResponse([]byte("not a response"))
	rpcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T (%v), want *Error", err, err)
	}
	if rpcErr.Kind != ParseError {
		t.Errorf("got kind %v, want ParseError", rpcErr.Kind)
	}
	if rpcErr.Message == "" {
		t.Error("expected the codec's message")
	}
}
