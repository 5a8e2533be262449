package edunet

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/joy-dx/edunet/client/httpclient"
	"github.com/joy-dx/edunet/dto"
	"github.com/joy-dx/edunet/relays"
	"github.com/joy-dx/edunet/utils"
)

// streamOpener clients able to hand back an unread response body
type streamOpener interface {
	OpenStream(ctx context.Context, cfg *httpclient.HTTPRequestConfig) (*http.Response, error)
}

// publishTransferUpdate is the unified notification function
func (s *NetSvc) publishTransferUpdate(state dto.TransferNotification) {
	if state.Destination != "" {
		s.transferState.Set(state.Destination, state)
	}

	s.muListeners.Lock()
	listeners := append([]chan dto.TransferNotification(nil), s.listenersByURL[state.Source]...)
	s.muListeners.Unlock()

	isTerminal := state.IsTerminal()

	for _, ch := range listeners {
		if isTerminal {
			// Terminal events must arrive. Never hold muListeners while sending.
			select {
			case ch <- state:
			default:
				go func(c chan dto.TransferNotification, n dto.TransferNotification) {
					// unsub may have closed the channel meanwhile
					defer func() { _ = recover() }()
					c <- n
				}(ch, state)
			}
		} else {
			// Progress updates can be dropped
			select {
			case ch <- state:
			default:
			}
		}
	}

	if s.relay == nil {
		return
	}
	event := relays.RlyNetDownload{
		TaskID:      state.TaskID,
		Source:      state.Source,
		Destination: state.Destination,
		Status:      state.Status,
		Percentage:  state.Percentage,
		Msg:         state.Message,
	}
	switch state.Status {
	case dto.DOWNLOADING:
		s.relay.Debug(event)
	case dto.FAILED:
		s.relay.Warn(event)
	default:
		s.relay.Info(event)
	}
}

type progressReader struct {
	ctx        context.Context
	reader     io.Reader
	total      int64
	readSoFar  int64
	lastReport time.Time
	interval   time.Duration
	onProgress func(downloaded, total int64, percent float64)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	select {
	case <-pr.ctx.Done():
		return 0, pr.ctx.Err()
	default:
	}

	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.readSoFar += int64(n)
		now := time.Now()
		if now.Sub(pr.lastReport) >= pr.interval {
			pr.onProgress(pr.readSoFar, pr.total, utils.Percentage(pr.readSoFar, pr.total))
			pr.lastReport = now
		}
	}

	return n, err
}
