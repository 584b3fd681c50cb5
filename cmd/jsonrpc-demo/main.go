// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command jsonrpc-demo round-trips a handful of example calls through an
// in-process client and server pair, then shows the query-string and HTTP
// views of the same messages. The payload codec is selectable; the wire
// mode is fixed at build time.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nuclio/errors"
	"github.com/nuclio/logger"
	nucliozap "github.com/nuclio/zap"
	"github.com/spf13/cobra"

	"github.com/luxfi/jsonrpc"
	"github.com/luxfi/jsonrpc/codec"
	"github.com/luxfi/jsonrpc/httputil"
)

type testMethod struct{}

func (testMethod) MethodName() string { return "test" }

type helloMethod struct {
	Name string `json:"name" msgpack:"name"`
}

func (helloMethod) MethodName() string { return "hello" }

type listMethod struct {
	Item string `json:"i" msgpack:"i"`
}

func (listMethod) MethodName() string { return "list" }

type complicatedMethod struct{}

func (complicatedMethod) MethodName() string { return "complicated" }

// bogusMethod is deliberately left unregistered to demonstrate the
// dispatcher's MethodNotFound reply.
type bogusMethod struct{}

func (bogusMethod) MethodName() string { return "bogus" }

func handleDemo(_ context.Context, method jsonrpc.Method, _ string) (any, error) {
	switch m := method.(type) {
	case testMethod:
		return map[string]any{"ok": true}, nil
	case helloMethod:
		return fmt.Sprintf("Hello, %s", m.Name), nil
	case listMethod:
		return fmt.Sprintf("List, %s", m.Item), nil
	case complicatedMethod:
		return nil, jsonrpc.NewError(jsonrpc.Custom(-32000), "Complicated method not implemented")
	default:
		return nil, jsonrpc.NewError(jsonrpc.MethodNotFound, fmt.Sprintf("unknown method %q", method.MethodName()))
	}
}

func newRootCommand() *cobra.Command {
	var codecName string

	cmd := &cobra.Command{
		Use:   "jsonrpc-demo",
		Short: "Round-trip example calls through an in-process client and server",
		RunE: func(cmd *cobra.Command, args []string) error {
			rootLogger, err := nucliozap.NewNuclioZapCmd("jsonrpc-demo", nucliozap.DebugLevel, os.Stdout)
			if err != nil {
				return errors.Wrap(err, "Failed to create logger")
			}

			payloadCodec, err := codec.ForName(codecName)
			if err != nil {
				return err
			}
			return runDemo(rootLogger, payloadCodec, codecName)
		},
	}

	cmd.Flags().StringVar(&codecName, "codec", codec.NameJSON, "payload codec (json or msgpack)")
	return cmd
}

func runDemo(rootLogger logger.Logger, payloadCodec codec.Codec, codecName string) error {
	ctx := context.Background()
	demoLogger := rootLogger.GetChild("demo")
	demoLogger.InfoWith("Protocol configured",
		"mode", jsonrpc.Mode,
		"codec", codecName)

	methods := jsonrpc.NewMethodSet[jsonrpc.Method]()
	if err := jsonrpc.Register[testMethod](methods); err != nil {
		return err
	}
	if err := jsonrpc.Register[helloMethod](methods); err != nil {
		return err
	}
	if err := jsonrpc.Register[listMethod](methods); err != nil {
		return err
	}
	if err := jsonrpc.Register[complicatedMethod](methods); err != nil {
		return err
	}

	handler := jsonrpc.HandlerFunc[jsonrpc.Method, any, string](handleDemo)
	server, err := jsonrpc.NewServer(rootLogger, methods, handler, jsonrpc.WithServerCodec(payloadCodec))
	if err != nil {
		return errors.Wrap(err, "Failed to create server")
	}
	client := jsonrpc.NewClient[jsonrpc.Method, any](jsonrpc.WithCodec(payloadCodec))

	exchange := func(method jsonrpc.Method) error {
		call, err := client.Request(method)
		if err != nil {
			return errors.Wrap(err, "Failed to encode request")
		}
		demoLogger.InfoWith("Request encoded",
			"method", method.MethodName(),
			"payload", fmt.Sprintf("%q", call.Payload()))

		reply := server.HandlePayload(ctx, call.TakePayload(), "local")
		if reply == nil {
			demoLogger.InfoWith("No reply", "method", method.MethodName())
			return nil
		}
		demoLogger.InfoWith("Reply received", "payload", fmt.Sprintf("%q", reply))

		result, err := call.HandleResponse(reply)
		if err != nil {
			demoLogger.WarnWith("Call failed",
				"method", method.MethodName(),
				"error", err)
			return nil
		}
		demoLogger.InfoWith("Call succeeded",
			"method", method.MethodName(),
			"result", result)
		return nil
	}

	for _, method := range []jsonrpc.Method{
		testMethod{},
		helloMethod{Name: "world"},
		listMethod{Item: "first"},
		complicatedMethod{},
		bogusMethod{},
	} {
		if err := exchange(method); err != nil {
			return err
		}
	}

	// Notifications run the handler but never produce a reply.
	notification, err := client.Notify(helloMethod{Name: "nobody"})
	if err != nil {
		return errors.Wrap(err, "Failed to encode notification")
	}
	if reply := server.HandlePayload(ctx, notification.Payload(), "local"); reply == nil {
		demoLogger.InfoWith("Notification produced no reply")
	}

	// A payload that does not decode as a request is answered from its
	// recoverable identifier, or dropped when none can be found.
	malformed := []byte(`{"i":99,"m":123,"method":123}`)
	if reply := server.HandlePayload(ctx, malformed, "local"); reply != nil {
		demoLogger.InfoWith("Recovered reply", "payload", fmt.Sprintf("%q", reply))
	} else {
		demoLogger.InfoWith("Malformed payload dropped")
	}

	request := jsonrpc.NewRequest[jsonrpc.Method](jsonrpc.NumberID(1), helloMethod{Name: "world"})
	qs, err := httputil.EncodeQuery(request)
	if err != nil {
		return errors.Wrap(err, "Failed to encode query string")
	}
	demoLogger.InfoWith("Query string encoded", "qs", qs)

	decoded, err := httputil.DecodeQuery(methods, qs)
	if err != nil {
		return errors.Wrap(err, "Failed to decode query string")
	}
	demoLogger.InfoWith("Query string decoded",
		"method", decoded.Method().MethodName(),
		"id", decoded.ID())

	httpResponse, err := httputil.NewHTTPResponse(jsonrpc.NewResponse[any](jsonrpc.NumberID(1), "Hello, world"))
	if err != nil {
		return errors.Wrap(err, "Failed to build HTTP response")
	}
	demoLogger.InfoWith("HTTP view",
		"status", httpResponse.StatusCode(),
		"callID", httpResponse.CallID().String(),
		"body", string(httpResponse.Body()))

	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		errors.PrintErrorStack(os.Stderr, err, 5)
		os.Exit(1)
	}
}
