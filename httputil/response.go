// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httputil

import (
	"github.com/nuclio/errors"
	"github.com/valyala/fasthttp"

	"github.com/luxfi/jsonrpc"
	"github.com/luxfi/jsonrpc/codec"
)

const (
	contentTypeJSON = "application/json"

	// HeaderCallID carries the stringified call identifier, since the body
	// holds the bare outcome without the response envelope.
	HeaderCallID = "X-JSONRPC-ID"
)

// HTTPResponse is a minimal HTTP rendering of a response: 200 for success,
// 500 for an error outcome, a JSON body holding the outcome alone and the
// call identifier in the X-JSONRPC-ID header.
type HTTPResponse struct {
	statusCode int
	callID     jsonrpc.ID
	body       []byte
}

// NewHTTPResponse builds the HTTP rendering of a response. The body is
// always JSON regardless of the codec the response traveled with.
func NewHTTPResponse[R any](response *jsonrpc.Response[R]) (*HTTPResponse, error) {
	statusCode := fasthttp.StatusOK
	outcome := response.Outcome()
	if !outcome.IsOK() {
		statusCode = fasthttp.StatusInternalServerError
	}

	body, err := jsonrpc.EncodeOutcome(codec.JSON{}, outcome)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to encode outcome")
	}

	return &HTTPResponse{
		statusCode: statusCode,
		callID:     response.ID(),
		body:       body,
	}, nil
}

// StatusCode returns the HTTP status code.
func (r *HTTPResponse) StatusCode() int { return r.statusCode }

// ContentType returns the body's content type.
func (r *HTTPResponse) ContentType() string { return contentTypeJSON }

// CallID returns the identifier of the call this response answers.
func (r *HTTPResponse) CallID() jsonrpc.ID { return r.callID }

// Body returns the encoded outcome.
func (r *HTTPResponse) Body() []byte { return r.body }

// Write writes the response to a fasthttp request context.
func (r *HTTPResponse) Write(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(r.statusCode)
	ctx.Response.Header.SetContentType(contentTypeJSON)
	ctx.Response.Header.Set(HeaderCallID, r.callID.String())
	ctx.SetBody(r.body)
}
