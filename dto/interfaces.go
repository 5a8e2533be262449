package dto

import (
	"context"
	"io"
)

type NetInterface interface {
	Hydrate(ctx context.Context) error
	State() *NetState
	Get(ctx context.Context, url string) Response
	Post(ctx context.Context, url string, body PostBody) Response
	RegisterClient(ref string, client NetClientInterface)
	RequestOnce(ctx context.Context, cfg *RequestConfig) (Response, error)
	TransferListener(source string) (<-chan TransferNotification, func())
}

// AccessTokenProvider supplies the current bearer token. It is consulted on
// every request and never cached by the caller.
type AccessTokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

type HTTPMiddleware func(ctx context.Context, req any) error

// NetClientInterface abstracts a transport for mocking
type NetClientInterface interface {
	Ref() string
	Type() NetClientType
	ProcessRequest(ctx context.Context, cfg *RequestConfig) (Response, error)
}

// TransferStream an opened remote file. TotalSize is -1 when unknown.
type TransferStream struct {
	Body      io.ReadCloser
	TotalSize int64
}

// FileSource opens remote files for the download manager.
type FileSource interface {
	// SourceURL identifies the file; notifications are keyed by it.
	SourceURL(file RemoteFile) (string, error)
	Open(ctx context.Context, file RemoteFile) (TransferStream, error)
}

// FileSystem local storage used by the download manager. Every call may fail.
type FileSystem interface {
	DataDirectory() (string, error)
	Exists(path string) (bool, error)
	Create(path string) (io.WriteCloser, error)
	Remove(path string) error
}

// UISurface receives one-way calls from the download manager. Calls are always
// made through a Dispatcher.
type UISurface interface {
	ShowProgress(message, cancelText string, onCancel func())
	UpdateProgress(percent int)
	HideProgress()
	ShowError(message string)
	MarkDownloaded(file RemoteFile)
	OpenFile(name, path string)
}

// Dispatcher runs functions on a single serialized execution context. Post
// must not block or run fn inline.
type Dispatcher interface {
	Post(fn func())
}
