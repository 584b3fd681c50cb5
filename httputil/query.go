// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package httputil adapts the message model to transports that cannot carry
// an encoded envelope: requests as URL query strings, responses as minimal
// HTTP responses with the call identifier in a header.
package httputil

import (
	"bytes"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/nuclio/errors"

	"github.com/luxfi/jsonrpc"
	"github.com/luxfi/jsonrpc/codec"
)

// EncodeQuery serializes a request as form-urlencoded pairs: the identifier
// first under "i" as a JSON literal, the method tag second under "m", then
// the parameters sorted by name. Parameter values must be scalars; nested
// structures are unsupported.
func EncodeQuery[M jsonrpc.Method](request *jsonrpc.Request[M]) (string, error) {
	var b strings.Builder
	writePair := func(name, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	if id := request.ID(); id != nil {
		literal, err := json.Marshal(id)
		if err != nil {
			return "", errors.Wrap(err, "Failed to encode call id")
		}
		writePair("i", string(literal))
	}

	writePair("m", request.Method().MethodName())

	params, err := paramsObject(request.Method())
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, err := stringifyScalar(name, params[name])
		if err != nil {
			return "", err
		}
		writePair(name, value)
	}
	return b.String(), nil
}

// DecodeQuery parses a query string back into a request, resolving the
// method tag against the given set. The identifier is recognized only as
// the first pair; an "i" pair anywhere else is an ordinary parameter, as is
// any "m" pair after the first. Scalar parameter types are inferred from
// the text: "true"/"false"/"null", then unsigned, signed and floating-point
// numeric parses, then string.
func DecodeQuery[M jsonrpc.Method](methods *jsonrpc.MethodSet[M], qs string) (*jsonrpc.Request[M], error) {
	var (
		id      *jsonrpc.ID
		tag     string
		haveTag bool
	)
	params := make(map[string]interface{})

	position := 0
	for _, segment := range strings.Split(qs, "&") {
		if segment == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(segment, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to decode query pair")
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to decode query pair")
		}

		switch {
		case name == "i" && position == 0:
			var parsed jsonrpc.ID
			if err := json.Unmarshal([]byte(value), &parsed); err != nil {
				return nil, errors.Wrap(err, "Failed to decode call id")
			}
			id = &parsed
		case name == "m" && !haveTag:
			tag = value
			haveTag = true
		default:
			params[name] = parseScalar(value)
		}
		position++
	}

	if !haveTag {
		return nil, errors.New("the method is missing")
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to encode params")
	}
	method, err := methods.DecodeParams(codec.JSON{}, tag, payload)
	if err != nil {
		return nil, err
	}

	if id != nil {
		return jsonrpc.NewRequest(*id, method), nil
	}
	return jsonrpc.NewNotification(method), nil
}

// paramsObject flattens a method value into its parameter object. Numbers
// are kept as json.Number so their text survives stringification unchanged.
func paramsObject(method interface{}) (map[string]interface{}, error) {
	encoded, err := json.Marshal(method)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to encode params")
	}

	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, errors.Wrap(err, "Failed to decode params")
	}

	object, ok := value.(map[string]interface{})
	if !ok {
		return nil, errors.New("params must be object")
	}
	return object, nil
}

func stringifyScalar(field string, value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(v), nil
	case json.Number:
		return v.String(), nil
	case string:
		return v, nil
	default:
		return "", errors.Errorf("unsupported value type for field '%s'", field)
	}
}

func parseScalar(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}
