// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import "testing"

// The demo flow is hermetic (in-process client and server), so the command
// can run end to end under both codecs.
func TestRootCommand(t *testing.T) {
	for _, codecName := range []string{"json", "msgpack"} {
		cmd := newRootCommand()
		cmd.SetArgs([]string{"--codec", codecName})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%s: execute: %v", codecName, err)
		}
	}
}

func TestRootCommandUnknownCodec(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--codec", "cbor"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown codec")
	}
}
