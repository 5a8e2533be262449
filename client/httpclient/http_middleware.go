package httpclient

import (
	"context"
	"fmt"

	"github.com/joy-dx/edunet/relays"
	relayDTO "github.com/joy-dx/relay/dto"
)

// StaticHeaderMiddleware injects static headers into every request.
func StaticHeaderMiddleware(headers map[string]string) Middleware {
	return func(ctx context.Context, r *HTTPRequest) error {
		for k, v := range headers {
			r.SetHeader(k, v)
		}
		return nil
	}
}

// RelayLoggingMiddleware emits a debug event per outgoing request.
func RelayLoggingMiddleware(relay relayDTO.RelayInterface) Middleware {
	return func(ctx context.Context, r *HTTPRequest) error {
		relay.Debug(relays.RlyNetLog{Msg: fmt.Sprintf("[HTTP] %s %s", r.Method, r.URL)})
		return nil
	}
}

func InjectFieldMiddleware(key string, val any) Middleware {
	return func(ctx context.Context, r *HTTPRequest) error {
		if r.Body == nil {
			r.Body = map[string]any{}
		}
		r.Body[key] = val

		// Ensure final bytes will be recomputed from Body.
		r.BodyBytes = nil
		r.ContentType = ""
		return nil
	}
}
