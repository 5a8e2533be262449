package edunet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/joy-dx/edunet/config"
	"github.com/joy-dx/edunet/dto"
	relayDTO "github.com/joy-dx/relay/dto"
)

// ---------- fakes ----------

type fakeRelay struct {
	mu   sync.Mutex
	msgs []string
	evts []relayDTO.RelayEventInterface
}

func (r *fakeRelay) Debug(data relayDTO.RelayEventInterface) { r.add(data) }
func (r *fakeRelay) Info(data relayDTO.RelayEventInterface)  { r.add(data) }
func (r *fakeRelay) Warn(data relayDTO.RelayEventInterface)  { r.add(data) }
func (r *fakeRelay) Error(data relayDTO.RelayEventInterface) { r.add(data) }
func (r *fakeRelay) Fatal(data relayDTO.RelayEventInterface) { r.add(data) }
func (r *fakeRelay) Meta(data relayDTO.RelayEventInterface)  { r.add(data) }

func (r *fakeRelay) add(e relayDTO.RelayEventInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evts = append(r.evts, e)
	if e != nil {
		r.msgs = append(r.msgs, e.Message())
	}
}

func (r *fakeRelay) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.evts)
}

type fakeNetClient struct {
	ref  string
	typ  dto.NetClientType
	fn   func(ctx context.Context, cfg *dto.RequestConfig) (dto.Response, error)
	call int
	mu   sync.Mutex
}

func (c *fakeNetClient) Ref() string             { return c.ref }
func (c *fakeNetClient) Type() dto.NetClientType { return c.typ }
func (c *fakeNetClient) ProcessRequest(
	ctx context.Context,
	cfg *dto.RequestConfig,
) (dto.Response, error) {
	c.mu.Lock()
	c.call++
	c.mu.Unlock()
	return c.fn(ctx, cfg)
}

func (c *fakeNetClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.call
}

// ---------- helpers ----------

func newTestSvc(t *testing.T, opts ...func(cfg *config.NetSvcConfig)) *NetSvc {
	t.Helper()

	cfg := config.DefaultNetSvcConfig()
	cfg.WithRelay(&fakeRelay{}).
		WithDownloadCallbackInterval(0)
	for _, opt := range opts {
		opt(&cfg)
	}
	return newNetSvc(&cfg)
}

// newHydratedSvc registers the default HTTP client
func newHydratedSvc(t *testing.T, opts ...func(cfg *config.NetSvcConfig)) *NetSvc {
	t.Helper()

	s := newTestSvc(t, opts...)
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	return s
}

func TestNetSvc_RegisterClient_Golden(t *testing.T) {
	t.Parallel()

	s := newTestSvc(t)
	c := &fakeNetClient{ref: "x", fn: func(ctx context.Context, cfg *dto.RequestConfig) (dto.Response, error) {
		return dto.Response{StatusCode: 200}, nil
	}}

	s.RegisterClient("x", c)

	got, err := s.client("x")
	if err != nil {
		t.Fatalf("client not registered: %v", err)
	}
	if got.Ref() != "x" {
		t.Fatalf("ref=%q want x", got.Ref())
	}
	if _, err := s.client("missing"); err == nil {
		t.Fatalf("expected error for unknown client")
	}
}

func TestNetSvc_streamClient_rejectsNonStreaming(t *testing.T) {
	t.Parallel()

	s := newTestSvc(t)
	s.RegisterClient("plain", &fakeNetClient{ref: "plain"})

	if _, err := s.streamClient("plain"); err == nil {
		t.Fatalf("expected error for client without OpenStream")
	}
}

func TestNetSvc_Hydrate_Golden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opt     func(cfg *config.NetSvcConfig)
		wantErr bool
	}{
		{name: "defaults", opt: func(cfg *config.NetSvcConfig) {}},
		{
			name:    "relative base url",
			opt:     func(cfg *config.NetSvcConfig) { cfg.WithBaseURL("/api") },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			opt:     func(cfg *config.NetSvcConfig) { cfg.WithRequestTimeout(0) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSvc(t, tt.opt)
			err := s.Hydrate(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if _, err := s.streamClient(dto.NET_DEFAULT_CLIENT_REF); err != nil {
				t.Fatalf("default client missing: %v", err)
			}
		})
	}
}

func TestNetSvc_State_tracksTransfers(t *testing.T) {
	t.Parallel()

	s := newTestSvc(t)
	s.publishTransferUpdate(dto.TransferNotification{
		Source:      "https://example.com/f",
		Destination: "/tmp/f",
		Status:      dto.DOWNLOADING,
		Percentage:  10,
	})
	s.publishTransferUpdate(dto.TransferNotification{
		Source:      "https://example.com/f",
		Destination: "/tmp/f",
		Status:      dto.COMPLETE,
		Percentage:  100,
	})

	state := s.State()
	if state.BaseURL != config.DefaultBaseURL {
		t.Fatalf("base url=%q", state.BaseURL)
	}
	got, ok := state.TransfersStatus["/tmp/f"]
	if !ok {
		t.Fatalf("transfer state missing")
	}
	if got.Status != dto.COMPLETE {
		t.Fatalf("status=%s want %s", got.Status, dto.COMPLETE)
	}
}

func TestNetSvc_TransferListeners_Golden(t *testing.T) {
	t.Parallel()

	s := newTestSvc(t)

	url := "https://example.com/file"
	ch1, _ := s.TransferListener(url)
	ch2, _ := s.TransferListener(url)

	s.publishTransferUpdate(dto.TransferNotification{
		Source:      url,
		Destination: "/tmp/x",
		Status:      dto.DOWNLOADING,
		Percentage:  50,
	})

	for i, ch := range []<-chan dto.TransferNotification{ch1, ch2} {
		select {
		case n := <-ch:
			if n.Status != dto.DOWNLOADING {
				t.Fatalf("ch%d status=%s want %s", i+1, n.Status, dto.DOWNLOADING)
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("timeout waiting for ch%d update", i+1)
		}
	}

	s.publishTransferUpdate(dto.TransferNotification{
		Source:      url,
		Destination: "/tmp/x",
		Status:      dto.CANCELLED,
	})

	for i, ch := range []<-chan dto.TransferNotification{ch1, ch2} {
		select {
		case n := <-ch:
			if n.Status != dto.CANCELLED {
				t.Fatalf("ch%d status=%s want %s", i+1, n.Status, dto.CANCELLED)
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("timeout waiting for ch%d CANCELLED", i+1)
		}
	}
}

func TestNetSvc_TransferListener_terminalDeliveredWhenFull(t *testing.T) {
	t.Parallel()

	s := newTestSvc(t)
	url := "https://example.com/full"
	ch, unsub := s.TransferListener(url)
	defer unsub()

	for i := 0; i < 20; i++ {
		s.publishTransferUpdate(dto.TransferNotification{Source: url, Status: dto.DOWNLOADING, Percentage: float64(i)})
	}
	s.publishTransferUpdate(dto.TransferNotification{Source: url, Status: dto.FAILED})

	deadline := time.After(time.Second)
	for {
		select {
		case n := <-ch:
			if n.Status == dto.FAILED {
				return
			}
		case <-deadline:
			t.Fatalf("terminal notification never arrived")
		}
	}
}

func TestNetSvc_TransferListener_unsubscribe(t *testing.T) {
	t.Parallel()

	s := newTestSvc(t)
	url := "https://example.com/unsub"
	ch, unsub := s.TransferListener(url)
	unsub()
	unsub()

	if _, ok := <-ch; ok {
		t.Fatalf("channel should be closed after unsubscribe")
	}

	s.muListeners.Lock()
	_, exists := s.listenersByURL[url]
	s.muListeners.Unlock()
	if exists {
		t.Fatalf("listener entry should be removed")
	}

	// publishing with no listeners must not panic
	s.publishTransferUpdate(dto.TransferNotification{Source: url, Status: dto.COMPLETE})
}

func TestNetSvc_TransferListenerClose(t *testing.T) {
	t.Parallel()

	s := newTestSvc(t)
	url := "https://example.com/close"
	ch, _ := s.TransferListener(url)
	s.TransferListenerClose(url)

	if _, ok := <-ch; ok {
		t.Fatalf("channel should be closed")
	}
}
