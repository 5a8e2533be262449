package edunet

import (
	"fmt"
	"sync"

	"github.com/joy-dx/edunet/client/httpclient"
	"github.com/joy-dx/edunet/config"
	"github.com/joy-dx/edunet/dto"
	"github.com/joy-dx/lockablemap"
	relayDTO "github.com/joy-dx/relay/dto"
)

// NetSvc authenticated access to the platform API plus transfer notifications
type NetSvc struct {
	cfg            *config.NetSvcConfig
	relay          relayDTO.RelayInterface
	metrics        *Metrics
	muClients      sync.RWMutex
	clients        map[string]dto.NetClientInterface
	transferState  lockablemap.LockableMap[string, dto.TransferNotification]
	muListeners    sync.Mutex
	listenersByURL map[string][]chan dto.TransferNotification
}

func newNetSvc(cfg *config.NetSvcConfig) *NetSvc {
	return &NetSvc{
		cfg:            cfg,
		relay:          cfg.Relay(),
		listenersByURL: make(map[string][]chan dto.TransferNotification),
		transferState:  *lockablemap.NewLockableMap[string, dto.TransferNotification](),
		clients:        make(map[string]dto.NetClientInterface),
	}
}

// WithMetrics attaches prometheus collectors. Nil disables metrics.
func (s *NetSvc) WithMetrics(m *Metrics) *NetSvc {
	s.metrics = m
	return s
}

func (s *NetSvc) RegisterClient(ref string, client dto.NetClientInterface) {
	s.muClients.Lock()
	defer s.muClients.Unlock()
	s.clients[ref] = client
}

func (s *NetSvc) client(ref string) (dto.NetClientInterface, error) {
	s.muClients.RLock()
	defer s.muClients.RUnlock()
	c, ok := s.clients[ref]
	if !ok {
		return nil, fmt.Errorf("client not found: %s", ref)
	}
	return c, nil
}

// streamClient finds a registered client able to stream response bodies
func (s *NetSvc) streamClient(ref string) (streamOpener, error) {
	c, err := s.client(ref)
	if err != nil {
		return nil, err
	}
	opener, ok := c.(streamOpener)
	if !ok {
		return nil, fmt.Errorf("client %s cannot stream", ref)
	}
	return opener, nil
}

var (
	_ streamOpener     = (*httpclient.HTTPClient)(nil)
	_ dto.NetInterface = (*NetSvc)(nil)
)

// TransferListener returns a channel of updates for a particular source URL
func (s *NetSvc) TransferListener(sourceURL string) (<-chan dto.TransferNotification, func()) {
	s.muListeners.Lock()
	defer s.muListeners.Unlock()

	ch := make(chan dto.TransferNotification, 10)
	s.listenersByURL[sourceURL] = append(s.listenersByURL[sourceURL], ch)

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			s.muListeners.Lock()
			defer s.muListeners.Unlock()

			chans := s.listenersByURL[sourceURL]
			out := chans[:0]
			for _, c := range chans {
				if c != ch {
					out = append(out, c)
				}
			}
			if len(out) == 0 {
				delete(s.listenersByURL, sourceURL)
			} else {
				s.listenersByURL[sourceURL] = out
			}
			close(ch)
		})
	}

	return ch, unsub
}

// TransferListenerClose closes all channels for a given URL manually
func (s *NetSvc) TransferListenerClose(sourceURL string) {
	s.muListeners.Lock()
	defer s.muListeners.Unlock()
	if chans, ok := s.listenersByURL[sourceURL]; ok {
		for _, c := range chans {
			close(c)
		}
		delete(s.listenersByURL, sourceURL)
	}
}
