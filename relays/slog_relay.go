package relays

import (
	"context"
	"log/slog"

	relayDTO "github.com/joy-dx/relay/dto"
)

// SlogRelay renders relay events through a slog.Logger.
type SlogRelay struct {
	logger *slog.Logger
}

var _ relayDTO.RelayInterface = (*SlogRelay)(nil)

func NewSlogRelay(logger *slog.Logger) *SlogRelay {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogRelay{logger: logger}
}

func (r *SlogRelay) Debug(data relayDTO.RelayEventInterface) { r.log(slog.LevelDebug, data) }
func (r *SlogRelay) Info(data relayDTO.RelayEventInterface)  { r.log(slog.LevelInfo, data) }
func (r *SlogRelay) Warn(data relayDTO.RelayEventInterface)  { r.log(slog.LevelWarn, data) }
func (r *SlogRelay) Error(data relayDTO.RelayEventInterface) { r.log(slog.LevelError, data) }

// Fatal logs at error level. Terminating the process is left to the caller.
func (r *SlogRelay) Fatal(data relayDTO.RelayEventInterface) {
	r.log(slog.LevelError, data, slog.Bool("fatal", true))
}

func (r *SlogRelay) Meta(data relayDTO.RelayEventInterface) {
	r.log(slog.LevelInfo, data, slog.Bool("meta", true))
}

func (r *SlogRelay) log(level slog.Level, data relayDTO.RelayEventInterface, extra ...slog.Attr) {
	if data == nil {
		return
	}
	attrs := append([]slog.Attr{
		slog.String("channel", string(data.RelayChannel())),
		slog.String("type", string(data.RelayType())),
	}, data.ToSlog()...)
	attrs = append(attrs, extra...)
	r.logger.LogAttrs(context.Background(), level, data.Message(), attrs...)
}
