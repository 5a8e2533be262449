package main

import (
	"fmt"
	"io"

	"github.com/joy-dx/edunet/dto"
)

// terminalSurface renders download progress on a terminal. The opened path is
// printed to stdout so it can be piped.
type terminalSurface struct {
	status io.Writer
	out    io.Writer
	quiet  bool
}

func (s *terminalSurface) ShowProgress(message, cancelText string, onCancel func()) {
	fmt.Fprintf(s.status, "%s (Ctrl+C: %s)\n", message, cancelText)
}

func (s *terminalSurface) UpdateProgress(percent int) {
	if s.quiet {
		return
	}
	fmt.Fprintf(s.status, "\r%3d%%", percent)
}

func (s *terminalSurface) HideProgress() {
	if !s.quiet {
		fmt.Fprintln(s.status)
	}
}

func (s *terminalSurface) ShowError(message string) {
	fmt.Fprintln(s.status, "error:", message)
}

func (s *terminalSurface) MarkDownloaded(file dto.RemoteFile) {}

func (s *terminalSurface) OpenFile(name, path string) {
	fmt.Fprintln(s.out, path)
}
