// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v4"
)

// ID is a call identifier: a JSON scalar (string, number or null) chosen by
// the caller and echoed unchanged by the callee. Non-negative integers are
// stored unsigned so that large identifiers survive the round trip intact.
// The zero value is the null identifier; an absent identifier is a nil *ID.
type ID struct {
	v any
}

// StringID returns a string identifier.
func StringID(s string) ID { return ID{v: s} }

// NumberID returns a numeric identifier.
func NumberID(n int64) ID {
	v, _ := normalizeIDValue(n)
	return ID{v: v}
}

// NullID returns the null identifier.
func NullID() ID { return ID{} }

func idFromUint32(n uint32) ID { return ID{v: uint64(n)} }

// IsNull reports whether the identifier is null.
func (i ID) IsNull() bool { return i.v == nil }

// Equal reports whether two identifiers correlate. Numeric identifiers
// compare by value across integer and float representations.
func (i ID) Equal(other ID) bool {
	switch a := i.v.(type) {
	case nil:
		return other.v == nil
	case string:
		b, ok := other.v.(string)
		return ok && a == b
	case uint64:
		switch b := other.v.(type) {
		case uint64:
			return a == b
		case int64:
			return b >= 0 && uint64(b) == a
		case float64:
			return float64(a) == b
		}
	case int64:
		switch b := other.v.(type) {
		case int64:
			return a == b
		case uint64:
			return a >= 0 && uint64(a) == b
		case float64:
			return float64(a) == b
		}
	case float64:
		switch b := other.v.(type) {
		case float64:
			return a == b
		case uint64:
			return a == float64(b)
		case int64:
			return a == float64(b)
		}
	}
	return false
}

// String renders the bare form of the identifier: strings without quotes,
// numbers in decimal, null as "null". Used for headers and logs; the wire
// form is produced by the marshal methods.
func (i ID) String() string {
	switch n := i.v.(type) {
	case nil:
		return "null"
	case string:
		return n
	case uint64:
		return strconv.FormatUint(n, 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", i.v)
}

// MarshalJSON implements json.Marshaler.
func (i ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.v)
}

// UnmarshalJSON implements json.Unmarshaler. Numbers are parsed as
// unsigned, then signed, then float, keeping full 64-bit precision.
func (i *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty call id")
	}
	if bytes.Equal(data, []byte("null")) {
		i.v = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		i.v = s
		return nil
	}
	s := string(data)
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		i.v = n
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		i.v = n
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		i.v = n
		return nil
	}
	return fmt.Errorf("invalid call id %s: must be a string, a number or null", s)
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (i ID) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(i.v)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (i *ID) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeInterface()
	if err != nil {
		return err
	}
	n, err := normalizeIDValue(v)
	if err != nil {
		return err
	}
	i.v = n
	return nil
}

// normalizeIDValue restricts an identifier to the supported scalar set and
// collapses integer widths: non-negative integers become uint64, negative
// ones int64.
func normalizeIDValue(v any) (any, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case string:
		return n, nil
	case int:
		return normalizeIDInt(int64(n)), nil
	case int8:
		return normalizeIDInt(int64(n)), nil
	case int16:
		return normalizeIDInt(int64(n)), nil
	case int32:
		return normalizeIDInt(int64(n)), nil
	case int64:
		return normalizeIDInt(n), nil
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return nil, fmt.Errorf("invalid call id type %T: must be a string, a number or null", v)
}

func normalizeIDInt(n int64) any {
	if n >= 0 {
		return uint64(n)
	}
	return n
}
