// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
)

// JSON is a JSON-based codec
type JSON struct{}

func (JSON) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func init() {
	Register(NameJSON, JSON{})
}
