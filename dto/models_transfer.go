package dto

import "time"

type TransferStatus string

const (
	IDLE        TransferStatus = "idle"
	DOWNLOADING TransferStatus = "downloading"
	COMPLETE    TransferStatus = "complete"
	CANCELLED   TransferStatus = "cancelled"
	FAILED      TransferStatus = "failed"
)

func (s TransferStatus) IsTerminal() bool {
	return s == COMPLETE || s == CANCELLED || s == FAILED
}

// RemoteFile a file listed by the platform. Name is the display name and
// the local file name; PathName/FileName identify it remotely.
type RemoteFile struct {
	Name     string `json:"Name" yaml:"name"`
	PathName string `json:"PathName" yaml:"path_name"`
	FileName string `json:"FileName" yaml:"file_name"`
	// Checksum optional sha256 hex digest verified after transfer
	Checksum     string `json:"Checksum,omitempty" yaml:"checksum,omitempty"`
	IsDownloaded bool   `json:"-" yaml:"-"`
}

// RemoteID compound directory/filename identifier used by file endpoints.
func (f RemoteFile) RemoteID() string {
	if f.PathName == "" {
		return f.FileName
	}
	return f.PathName + "/" + f.FileName
}

// DownloadTask record of the single transfer owned by the download manager.
type DownloadTask struct {
	ID         string         `json:"id" yaml:"id"`
	RemoteName string         `json:"remote_name" yaml:"remote_name"`
	LocalPath  string         `json:"local_path" yaml:"local_path"`
	Progress   float64        `json:"progress" yaml:"progress"`
	State      TransferStatus `json:"state" yaml:"state"`
	Failure    FailureKind    `json:"failure,omitempty" yaml:"failure,omitempty"`
	Message    string         `json:"message,omitempty" yaml:"message,omitempty"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
}
