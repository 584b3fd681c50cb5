// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"fmt"
	"sort"

	"github.com/nuclio/errors"

	"github.com/luxfi/jsonrpc/codec"
)

// Method is implemented by every parameter type of an application's method
// union. MethodName returns the method's wire tag and must be constant for
// the type: it is called on zero values during registration, so it must not
// touch the receiver's fields.
type Method interface {
	MethodName() string
}

// MethodSet is the closed method union M as a wire-tag registry: each
// registered variant contributes a typed decoder for its parameters.
// Populate it once at setup; lookups afterwards are read-only and safe for
// concurrent use.
type MethodSet[M Method] struct {
	decoders map[string]methodDecoder[M]
}

type methodDecoder[M Method] struct {
	fromEnvelope func(c codec.Codec, payload []byte) (M, error)
	fromParams   func(c codec.Codec, payload []byte) (M, error)
}

// NewMethodSet creates an empty method set.
func NewMethodSet[M Method]() *MethodSet[M] {
	return &MethodSet[M]{decoders: make(map[string]methodDecoder[M])}
}

// Register adds the variant type V to the set. The zero value of V supplies
// the wire tag and must satisfy M.
func Register[V any, M Method](ms *MethodSet[M]) error {
	var zero V
	m, ok := any(zero).(M)
	if !ok {
		return errors.Errorf("Method type %T does not satisfy the set's union type", zero)
	}
	tag := m.MethodName()
	if _, ok := ms.decoders[tag]; ok {
		return errors.Errorf("Method %q is already registered", tag)
	}
	ms.decoders[tag] = methodDecoder[M]{
		fromEnvelope: func(c codec.Codec, payload []byte) (M, error) {
			var w wireRequest[V]
			if err := c.Decode(payload, &w); err != nil {
				return m, err
			}
			return any(w.Params).(M), nil
		},
		fromParams: func(c codec.Codec, payload []byte) (M, error) {
			var v V
			if err := c.Decode(payload, &v); err != nil {
				return m, err
			}
			return any(v).(M), nil
		},
	}
	return nil
}

// Has reports whether a method with the given tag is registered.
func (s *MethodSet[M]) Has(tag string) bool {
	_, ok := s.decoders[tag]
	return ok
}

// Tags returns the registered wire tags in sorted order.
func (s *MethodSet[M]) Tags() []string {
	tags := make([]string, 0, len(s.decoders))
	for tag := range s.decoders {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DecodeParams decodes a bare parameter payload for the given tag into its
// registered method type. Transport adapters that carry the tag and the
// parameters separately use this instead of the envelope decode.
func (s *MethodSet[M]) DecodeParams(c codec.Codec, tag string, payload []byte) (M, error) {
	d, ok := s.decoders[tag]
	if !ok {
		var zero M
		return zero, fmt.Errorf("unknown method %q", tag)
	}
	return d.fromParams(c, payload)
}
