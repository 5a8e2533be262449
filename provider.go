package edunet

import (
	"sync"

	"github.com/joy-dx/edunet/config"
	"github.com/joy-dx/edunet/relays"
)

var (
	service     *NetSvc
	serviceOnce sync.Once
)

// ProvideNetSvc returns the process wide service, created on first use
func ProvideNetSvc(cfg *config.NetSvcConfig) *NetSvc {
	serviceOnce.Do(func() {
		service = newNetSvc(cfg)
		cfg.Relay().Debug(relays.RlyNetLog{Msg: "Net service started"})
	})
	return service
}
