// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package codec defines the byte-serialization capability consumed by the
// protocol layer, together with a registry of named implementations.
// Implementations must round-trip every encodable value losslessly; their
// errors only need a readable message, which the protocol layer may place
// on the wire.
package codec

import (
	"fmt"
	"sync"
)

// Codec encodes/decodes protocol messages
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
}

// Codec names
const (
	NameJSON    = "json"    // human-readable, default
	NameMsgpack = "msgpack" // compact binary
)

var (
	codecsMu sync.RWMutex
	codecs   = map[string]Codec{}
)

// Register makes a codec available under a name. The codecs shipped with
// this package register themselves in init; applications may add more.
func Register(name string, c Codec) {
	codecsMu.Lock()
	defer codecsMu.Unlock()
	codecs[name] = c
}

// ForName returns the codec registered under name.
func ForName(name string) (Codec, error) {
	codecsMu.RLock()
	defer codecsMu.RUnlock()
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec: %s", name)
	}
	return c, nil
}

// Available returns the list of registered codec names.
func Available() []string {
	codecsMu.RLock()
	defer codecsMu.RUnlock()
	result := make([]string, 0, len(codecs))
	for name := range codecs {
		result = append(result, name)
	}
	return result
}

// Has checks if a codec is registered under name.
func Has(name string) bool {
	codecsMu.RLock()
	defer codecsMu.RUnlock()
	_, ok := codecs[name]
	return ok
}
