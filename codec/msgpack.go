// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"github.com/vmihailenco/msgpack/v4"
)

// Msgpack is a MessagePack-based codec. Structs are encoded as maps keyed
// by field name, so payloads remain self-describing across languages.
type Msgpack struct{}

func (Msgpack) Encode(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (Msgpack) Decode(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}

func init() {
	Register(NameMsgpack, Msgpack{})
}
