package relays

import (
	"log/slog"
	"time"

	"github.com/joy-dx/edunet/dto"
	relayDTO "github.com/joy-dx/relay/dto"
)

const NetChannel relayDTO.EventChannel = "net"

const (
	RlyNetLogRef      relayDTO.EventRef = "net.log"
	RlyNetRequestRef  relayDTO.EventRef = "net.request"
	RlyNetDownloadRef relayDTO.EventRef = "net.download"
)

// RlyNetLog general purpose service message
type RlyNetLog struct {
	Msg string `json:"msg" yaml:"msg"`
}

func (e RlyNetLog) RelayChannel() relayDTO.EventChannel { return NetChannel }
func (e RlyNetLog) RelayType() relayDTO.EventRef        { return RlyNetLogRef }
func (e RlyNetLog) Message() string                     { return e.Msg }
func (e RlyNetLog) ToSlog() []slog.Attr                 { return nil }

// RlyNetRequest outcome of a single request
type RlyNetRequest struct {
	Method     string          `json:"method" yaml:"method"`
	URL        string          `json:"url" yaml:"url"`
	StatusCode int             `json:"status_code" yaml:"status_code"`
	Failure    dto.FailureKind `json:"failure,omitempty" yaml:"failure,omitempty"`
	Duration   time.Duration   `json:"duration" yaml:"duration"`
	Msg        string          `json:"msg" yaml:"msg"`
}

func (e RlyNetRequest) RelayChannel() relayDTO.EventChannel { return NetChannel }
func (e RlyNetRequest) RelayType() relayDTO.EventRef        { return RlyNetRequestRef }
func (e RlyNetRequest) Message() string                     { return e.Msg }
func (e RlyNetRequest) ToSlog() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("method", e.Method),
		slog.String("url", e.URL),
		slog.Int("status_code", e.StatusCode),
		slog.Duration("duration", e.Duration),
	}
	if e.Failure != "" {
		attrs = append(attrs, slog.String("failure", string(e.Failure)))
	}
	return attrs
}

// RlyNetDownload transfer lifecycle update
type RlyNetDownload struct {
	TaskID      string             `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Source      string             `json:"source" yaml:"source"`
	Destination string             `json:"destination" yaml:"destination"`
	Status      dto.TransferStatus `json:"status" yaml:"status"`
	Percentage  float64            `json:"percentage" yaml:"percentage"`
	Msg         string             `json:"msg" yaml:"msg"`
}

func (e RlyNetDownload) RelayChannel() relayDTO.EventChannel { return NetChannel }
func (e RlyNetDownload) RelayType() relayDTO.EventRef        { return RlyNetDownloadRef }
func (e RlyNetDownload) Message() string                     { return e.Msg }
func (e RlyNetDownload) ToSlog() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("source", e.Source),
		slog.String("destination", e.Destination),
		slog.String("status", string(e.Status)),
		slog.Float64("percentage", e.Percentage),
	}
	if e.TaskID != "" {
		attrs = append(attrs, slog.String("task_id", e.TaskID))
	}
	return attrs
}
