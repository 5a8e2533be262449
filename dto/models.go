package dto

import (
	"net/http"
	"time"
)

type NetClientType string

const NET_DEFAULT_CLIENT_REF = "net.client.default"

// NetClient describes a registered transport.
type NetClient struct {
	Name        string        `json:"name" yaml:"name"`
	Ref         string        `json:"ref" yaml:"ref"`
	ClientType  NetClientType `json:"client_type" yaml:"client_type"`
	Description string        `json:"description" yaml:"description"`
}

type TransferNotification struct {
	// TaskID identifier of the DownloadTask emitting the update
	TaskID      string `json:"task_id" yaml:"task_id"`
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
	// Status MetaType of message
	Status TransferStatus `json:"status" yaml:"status"`
	// Failure set alongside FAILED and CANCELLED
	Failure FailureKind `json:"failure,omitempty" yaml:"failure,omitempty"`
	// Percentage completion status as a percentage
	Percentage float64 `json:"percentage" yaml:"percentage"`
	// TotalSize length content in bytes. The value -1 indicates that the length is unknown
	TotalSize int64 `json:"total_size,omitempty" yaml:"total_size,omitempty"`
	// Downloaded downloaded body length in bytes
	Downloaded int64 `json:"downloaded,omitempty" yaml:"downloaded,omitempty"`
}

// IsTerminal reports whether no further notifications follow for the task.
func (n TransferNotification) IsTerminal() bool {
	return n.Status.IsTerminal()
}

type NetState struct {
	BaseURL                  string        `json:"net_base_url,omitempty" yaml:"net_base_url,omitempty"`
	ExtraHeaders             ExtraHeaders  `json:"net_extra_headers,omitempty" yaml:"net_extra_headers,omitempty"`
	RequestTimeout           time.Duration `json:"net_request_timeout,omitempty" yaml:"net_request_timeout,omitempty"`
	UserAgent                string        `json:"net_user_agent,omitempty" yaml:"net_user_agent,omitempty"`
	DataDirectory            string        `json:"net_data_directory,omitempty" yaml:"net_data_directory,omitempty"`
	DownloadCallbackInterval time.Duration `json:"net_download_callback_interval,omitempty" yaml:"net_download_callback_interval,omitempty"`
	// TransfersStatus last notification per destination path
	TransfersStatus map[string]TransferNotification `json:"net_transfers_status,omitempty" yaml:"net_transfers_status,omitempty"`
}

// Response is the normalized result of a single request. Synthesized results
// carry a Failure kind and an empty body.
type Response struct {
	StatusCode int
	Headers    http.Header
	// As well as casting to ResponseObject if set, return as byes
	Body    []byte
	Failure FailureKind
}

// Text returns the body as a string.
func (r Response) Text() string {
	return string(r.Body)
}

// OK reports a real 2xx server response.
func (r Response) OK() bool {
	return r.Failure == "" && r.StatusCode >= 200 && r.StatusCode < 300
}

// PostBody raw text payload for POST requests.
type PostBody struct {
	Content string `json:"content" yaml:"content"`
	// Encoding charset label, utf-8 when empty
	Encoding string `json:"encoding" yaml:"encoding"`
	// MediaType text/plain when empty
	MediaType string `json:"media_type" yaml:"media_type"`
}
