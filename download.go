package edunet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joy-dx/edunet/dto"
	"github.com/joy-dx/edunet/relays"
	"github.com/joy-dx/edunet/utils"
)

var (
	errLocal    = errors.New("local storage")
	errChecksum = errors.New("checksum verification failed")
)

// DownloadManagerConfig collaborators of a DownloadManager. Nil fields fall
// back to the HTTP file source, the local file system under the configured
// data directory, a fresh SerialDispatcher and a surface that ignores calls.
type DownloadManagerConfig struct {
	Source     dto.FileSource
	FileSystem dto.FileSystem
	Surface    dto.UISurface
	Dispatcher dto.Dispatcher
}

func (c *DownloadManagerConfig) WithSource(source dto.FileSource) *DownloadManagerConfig {
	c.Source = source
	return c
}

func (c *DownloadManagerConfig) WithFileSystem(fs dto.FileSystem) *DownloadManagerConfig {
	c.FileSystem = fs
	return c
}

func (c *DownloadManagerConfig) WithSurface(surface dto.UISurface) *DownloadManagerConfig {
	c.Surface = surface
	return c
}

func (c *DownloadManagerConfig) WithDispatcher(dispatcher dto.Dispatcher) *DownloadManagerConfig {
	c.Dispatcher = dispatcher
	return c
}

// DownloadManager owns at most one transfer at a time.
//
// Idle -> Downloading -> Complete | Cancelled | Failed -> Idle. Every
// UISurface call is posted to the dispatcher. Lifecycle updates are also
// published through NetSvc.TransferListener keyed by the source URL.
type DownloadManager struct {
	svc      *NetSvc
	source   dto.FileSource
	fs       dto.FileSystem
	surface  dto.UISurface
	dispatch dto.Dispatcher

	mu              sync.Mutex
	task            *dto.DownloadTask
	last            dto.DownloadTask
	cancel          context.CancelFunc
	cancelRequested bool
	done            chan struct{}
}

func NewDownloadManager(svc *NetSvc, cfg DownloadManagerConfig) *DownloadManager {
	m := &DownloadManager{
		svc:      svc,
		source:   cfg.Source,
		fs:       cfg.FileSystem,
		surface:  cfg.Surface,
		dispatch: cfg.Dispatcher,
		last:     dto.DownloadTask{State: dto.IDLE},
	}
	if m.source == nil {
		m.source = NewHTTPFileSource(svc)
	}
	if m.fs == nil {
		m.fs = NewLocalFileSystem(svc.cfg.DataDirectory)
	}
	if m.surface == nil {
		m.surface = nopSurface{}
	}
	if m.dispatch == nil {
		m.dispatch = NewSerialDispatcher()
	}
	return m
}

// Task snapshot of the active task, or of the last finished one
func (m *DownloadManager) Task() dto.DownloadTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.task != nil {
		return *m.task
	}
	return m.last
}

// State DOWNLOADING while a transfer runs, IDLE otherwise
func (m *DownloadManager) State() dto.TransferStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.task != nil {
		return m.task.State
	}
	return dto.IDLE
}

// Wait blocks until the current transfer, if any, has finished
func (m *DownloadManager) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

// OpenOrDownload opens file from the data directory, downloading it first when
// it is not there yet. ErrTransferActive is returned when another transfer is
// running; every other outcome is reported through the UI surface and the
// transfer listeners. ctx bounds the transfer.
func (m *DownloadManager) OpenOrDownload(ctx context.Context, file dto.RemoteFile) error {
	if m.busy() {
		return m.rejectActive(file)
	}

	task := &dto.DownloadTask{
		ID:         uuid.NewString(),
		RemoteName: file.Name,
		State:      dto.IDLE,
		StartedAt:  time.Now(),
	}

	source, err := m.source.SourceURL(file)
	if err != nil {
		m.fail(task, file.RemoteID(), fmt.Errorf("resolve source: %w", err), false)
		return nil
	}

	// the file system is probed without holding m.mu
	localPath, err := m.localPath(file)
	if err != nil {
		m.fail(task, source, err, false)
		return nil
	}
	task.LocalPath = localPath

	exists, err := m.fs.Exists(localPath)
	if err != nil {
		m.fail(task, source, fmt.Errorf("%w: probe %q: %w", errLocal, localPath, err), false)
		return nil
	}

	m.mu.Lock()
	if m.task != nil {
		m.mu.Unlock()
		return m.rejectActive(file)
	}
	if exists {
		m.mu.Unlock()
		m.complete(task, file, source, 0, false)
		return nil
	}

	transferCtx, cancel := context.WithCancel(ctx)
	task.State = dto.DOWNLOADING
	done := make(chan struct{})
	m.task = task
	m.cancel = cancel
	m.cancelRequested = false
	m.done = done
	m.ui(func() {
		m.surface.ShowProgress(m.svc.cfg.DownloadingText, m.svc.cfg.CancelText, m.Cancel)
	})
	m.mu.Unlock()

	m.svc.metrics.downloadStarted()
	m.svc.publishTransferUpdate(dto.TransferNotification{
		TaskID:      task.ID,
		Source:      source,
		Destination: localPath,
		Status:      dto.DOWNLOADING,
		TotalSize:   -1,
		Message:     "download started",
	})

	go m.run(transferCtx, task, file, source, done)
	return nil
}

func (m *DownloadManager) busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.task != nil
}

func (m *DownloadManager) rejectActive(file dto.RemoteFile) error {
	m.svc.relay.Warn(relays.RlyNetDownload{
		Source: file.RemoteID(),
		Status: dto.DOWNLOADING,
		Msg:    dto.ErrTransferActive.Error(),
	})
	return dto.ErrTransferActive
}

// Cancel stops the active transfer. It is a no-op when nothing is running.
// The progress indicator is hidden straight away; cleanup of the partial file
// happens on the transfer goroutine.
func (m *DownloadManager) Cancel() {
	m.mu.Lock()
	if m.task == nil || m.task.State != dto.DOWNLOADING || m.cancelRequested {
		m.mu.Unlock()
		return
	}
	m.cancelRequested = true
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	m.ui(m.surface.HideProgress)
}

func (m *DownloadManager) run(ctx context.Context, task *dto.DownloadTask, file dto.RemoteFile, source string, done chan struct{}) {
	defer close(done)

	written, err := m.transfer(ctx, task, file, source)

	// a cancellation request wins even when the copy already finished
	m.mu.Lock()
	outcome := dto.COMPLETE
	switch {
	case m.cancelRequested || errors.Is(err, context.Canceled):
		outcome = dto.CANCELLED
	case err != nil:
		outcome = dto.FAILED
	}
	task.State = outcome
	cancel := m.cancel
	m.mu.Unlock()
	cancel()

	switch outcome {
	case dto.CANCELLED:
		m.cancelled(task, source)
	case dto.FAILED:
		m.fail(task, source, err, true)
	default:
		m.complete(task, file, source, written, true)
	}
}

func (m *DownloadManager) transfer(ctx context.Context, task *dto.DownloadTask, file dto.RemoteFile, source string) (int64, error) {
	stream, err := m.source.Open(ctx, file)
	if err != nil {
		return 0, fmt.Errorf("failed to start download: %w", err)
	}
	defer stream.Body.Close()

	if stream.TotalSize <= 0 {
		m.svc.relay.Warn(relays.RlyNetDownload{TaskID: task.ID, Source: source, Msg: "unknown file size"})
	}

	out, err := m.fs.Create(task.LocalPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errLocal, err)
	}

	pr := &progressReader{
		ctx:        ctx,
		reader:     stream.Body,
		total:      stream.TotalSize,
		interval:   m.svc.cfg.DownloadCallbackInterval,
		lastReport: time.Now(),
		onProgress: func(downloaded, total int64, percent float64) {
			m.progress(task, source, downloaded, total, percent)
		},
	}

	buf := make([]byte, 64*1024)
	written, copyErr := io.CopyBuffer(out, pr, buf)
	closeErr := out.Close()
	if copyErr != nil {
		return written, fmt.Errorf("file transfer failed for %s: %w", source, copyErr)
	}
	if closeErr != nil {
		return written, fmt.Errorf("%w: close %q: %w", errLocal, task.LocalPath, closeErr)
	}

	if file.Checksum != "" {
		if err := utils.Sha256SumVerify(task.LocalPath, file.Checksum); err != nil {
			return written, fmt.Errorf("%w: %w", errChecksum, err)
		}
	}
	return written, nil
}

// progress records a new percentage. Values never go backwards.
func (m *DownloadManager) progress(task *dto.DownloadTask, source string, downloaded, total int64, percent float64) {
	m.mu.Lock()
	if task.State != dto.DOWNLOADING || m.cancelRequested || percent < task.Progress {
		m.mu.Unlock()
		return
	}
	task.Progress = percent
	// posted under m.mu so a concurrent Cancel always hides after this update
	rounded := int(percent)
	m.ui(func() { m.surface.UpdateProgress(rounded) })
	m.mu.Unlock()

	m.svc.publishTransferUpdate(dto.TransferNotification{
		TaskID:      task.ID,
		Source:      source,
		Destination: task.LocalPath,
		Status:      dto.DOWNLOADING,
		Downloaded:  downloaded,
		TotalSize:   total,
		Percentage:  percent,
	})
}

func (m *DownloadManager) complete(task *dto.DownloadTask, file dto.RemoteFile, source string, written int64, streamed bool) {
	done := m.finish(task, dto.COMPLETE, "", "download complete")

	m.svc.metrics.downloadFinished(dto.COMPLETE, streamed, written)
	m.svc.publishTransferUpdate(dto.TransferNotification{
		TaskID:      done.ID,
		Source:      source,
		Destination: done.LocalPath,
		Status:      dto.COMPLETE,
		Downloaded:  written,
		TotalSize:   written,
		Percentage:  100,
		Message:     done.Message,
	})

	file.IsDownloaded = true
	m.ui(func() {
		m.surface.MarkDownloaded(file)
		m.surface.HideProgress()
		m.surface.OpenFile(file.Name, done.LocalPath)
	})
}

func (m *DownloadManager) cancelled(task *dto.DownloadTask, source string) {
	m.removePartial(task, source)
	done := m.finish(task, dto.CANCELLED, dto.FAILURE_CANCELLED, "download cancelled")

	m.svc.metrics.downloadFinished(dto.CANCELLED, true, 0)
	m.svc.publishTransferUpdate(dto.TransferNotification{
		TaskID:      done.ID,
		Source:      source,
		Destination: done.LocalPath,
		Status:      dto.CANCELLED,
		Failure:     dto.FAILURE_CANCELLED,
		Percentage:  done.Progress,
		Message:     done.Message,
	})
	m.ui(m.surface.HideProgress)
}

// fail reports err. streamed is set once the transfer had started, in which
// case a partial file may exist.
func (m *DownloadManager) fail(task *dto.DownloadTask, source string, err error, streamed bool) {
	if streamed {
		m.removePartial(task, source)
	}
	done := m.finish(task, dto.FAILED, failureKind(err), err.Error())

	m.svc.metrics.downloadFinished(dto.FAILED, streamed, 0)
	m.svc.publishTransferUpdate(dto.TransferNotification{
		TaskID:      done.ID,
		Source:      source,
		Destination: done.LocalPath,
		Status:      dto.FAILED,
		Failure:     done.Failure,
		Percentage:  done.Progress,
		Message:     done.Message,
	})
	errorText := m.svc.cfg.DownloadingErrorText
	m.ui(func() {
		m.surface.HideProgress()
		m.surface.ShowError(errorText)
	})
}

// finish moves task into its terminal state, records it as the last task and
// returns the manager to idle
func (m *DownloadManager) finish(task *dto.DownloadTask, state dto.TransferStatus, failure dto.FailureKind, message string) dto.DownloadTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	task.State = state
	task.Failure = failure
	task.Message = message
	if state == dto.COMPLETE {
		task.Progress = 100
	}
	m.last = *task
	if m.task == task {
		m.task = nil
		m.cancel = nil
		m.cancelRequested = false
	}
	return *task
}

func (m *DownloadManager) removePartial(task *dto.DownloadTask, source string) {
	if task.LocalPath == "" {
		return
	}
	if err := m.fs.Remove(task.LocalPath); err != nil {
		m.svc.relay.Warn(relays.RlyNetDownload{
			TaskID:      task.ID,
			Source:      source,
			Destination: task.LocalPath,
			Msg:         fmt.Sprintf("could not remove partial file: %v", err),
		})
	}
}

func (m *DownloadManager) localPath(file dto.RemoteFile) (string, error) {
	name := file.Name
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", dto.ErrInvalidFileName, name)
	}
	dir, err := m.fs.DataDirectory()
	if err != nil {
		return "", fmt.Errorf("%w: %w", errLocal, err)
	}
	return filepath.Join(dir, name), nil
}

func (m *DownloadManager) ui(fn func()) {
	m.dispatch.Post(fn)
}

func failureKind(err error) dto.FailureKind {
	switch {
	case utils.IsTimeoutErr(err):
		return dto.FAILURE_TIMEOUT
	case errors.Is(err, dto.ErrInvalidFileName), errors.Is(err, errLocal), errors.Is(err, errChecksum):
		return dto.FAILURE_LOCAL
	default:
		return dto.FAILURE_TRANSPORT
	}
}

type nopSurface struct{}

func (nopSurface) ShowProgress(string, string, func()) {}
func (nopSurface) UpdateProgress(int)                  {}
func (nopSurface) HideProgress()                       {}
func (nopSurface) ShowError(string)                    {}
func (nopSurface) MarkDownloaded(dto.RemoteFile)       {}
func (nopSurface) OpenFile(string, string)             {}
