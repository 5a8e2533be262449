package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/joy-dx/edunet/dto"
	relayDTO "github.com/joy-dx/relay/dto"
)

type recordingRelay struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingRelay) Debug(data relayDTO.RelayEventInterface) { r.add(data) }
func (r *recordingRelay) Info(data relayDTO.RelayEventInterface)  { r.add(data) }
func (r *recordingRelay) Warn(data relayDTO.RelayEventInterface)  { r.add(data) }
func (r *recordingRelay) Error(data relayDTO.RelayEventInterface) { r.add(data) }
func (r *recordingRelay) Fatal(data relayDTO.RelayEventInterface) { r.add(data) }
func (r *recordingRelay) Meta(data relayDTO.RelayEventInterface)  { r.add(data) }

func (r *recordingRelay) add(e relayDTO.RelayEventInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, e.Message())
}

func Test_Middlewares_golden(t *testing.T) {
	srv, last := newRecordingServer(t, func(rr recordedRequest, w http.ResponseWriter) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})
	defer srv.Close()

	relay := &recordingRelay{}

	cfg := DefaultHTTPClientConfig()
	cfg.WithTokenProvider(StaticToken("abc")).
		WithMiddleware(
			StaticHeaderMiddleware(map[string]string{
				"X-Static": "1",
			}),
			InjectFieldMiddleware("injected", "yes"),
			RelayLoggingMiddleware(relay),
		)

	c := newTestClient(t, &cfg)

	reqCfg := DefaultHTTPRequestConfig()
	reqCfg.WithMethod(http.MethodPost).
		WithURL(srv.URL).
		WithBody(map[string]any{"orig": "v"}).
		WithHeaders(map[string]string{
			"X-From-Config": "1",
		})

	gotResp, err := c.ProcessRequest(context.Background(), &dto.RequestConfig{
		ReqConfig: &reqCfg,
	})
	if err != nil {
		t.Fatalf("ProcessRequest error: %v", err)
	}
	if gotResp.StatusCode != 200 {
		t.Fatalf("status=%d; want 200", gotResp.StatusCode)
	}

	if got := last.Header.Get("X-Static"); got != "1" {
		t.Fatalf("X-Static=%q; want 1", got)
	}
	if got := last.Header.Get("X-From-Config"); got != "1" {
		t.Fatalf("X-From-Config=%q; want 1", got)
	}
	if got := last.Header.Get("Authorization"); got != "Bearer abc" {
		t.Fatalf("Authorization=%q; want Bearer abc", got)
	}

	var body map[string]any
	if err := json.Unmarshal(last.Body, &body); err != nil {
		t.Fatalf("unmarshal body: %v (%q)", err, last.Body)
	}
	if body["orig"] != "v" || body["injected"] != "yes" {
		t.Fatalf("body=%v; want orig and injected fields", body)
	}

	relay.mu.Lock()
	defer relay.mu.Unlock()
	if len(relay.msgs) != 1 || relay.msgs[0] != "[HTTP] POST "+srv.URL {
		t.Fatalf("relay msgs=%v", relay.msgs)
	}
}
