// Package files lists the lecture files of a subject and flags the ones
// already present in the local data directory.
package files

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joy-dx/edunet/dto"
	"github.com/joy-dx/edunet/relays"
	relayDTO "github.com/joy-dx/relay/dto"
)

// Lister fetches the remote file list of a subject
type Lister interface {
	ListFiles(ctx context.Context, subjectID int) ([]dto.RemoteFile, error)
}

type Catalog struct {
	lister Lister
	fs     dto.FileSystem
	relay  relayDTO.RelayInterface
}

func NewCatalog(lister Lister, fs dto.FileSystem, relay relayDTO.RelayInterface) *Catalog {
	return &Catalog{lister: lister, fs: fs, relay: relay}
}

// List returns the subject files with IsDownloaded set for those found on disk
func (c *Catalog) List(ctx context.Context, subjectID int) ([]dto.RemoteFile, error) {
	remote, err := c.lister.ListFiles(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list files of subject %d: %w", subjectID, err)
	}

	dir, err := c.fs.DataDirectory()
	if err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}

	out := make([]dto.RemoteFile, 0, len(remote))
	for _, f := range remote {
		f.IsDownloaded = c.isDownloaded(dir, f)
		out = append(out, f)
	}
	return out, nil
}

func (c *Catalog) isDownloaded(dir string, f dto.RemoteFile) bool {
	if f.Name == "" || strings.ContainsAny(f.Name, `/\`) || f.Name == ".." {
		return false
	}
	exists, err := c.fs.Exists(filepath.Join(dir, f.Name))
	if err != nil {
		if c.relay != nil {
			c.relay.Warn(relays.RlyNetLog{Msg: fmt.Sprintf("probe %q: %v", f.Name, err)})
		}
		return false
	}
	return exists
}

// MarkDownloaded flags the entry named name, reporting whether it was found
func MarkDownloaded(list []dto.RemoteFile, name string) bool {
	for i := range list {
		if list[i].Name == name {
			list[i].IsDownloaded = true
			return true
		}
	}
	return false
}
