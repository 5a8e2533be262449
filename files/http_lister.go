package files

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/joy-dx/edunet/dto"
)

// Requester the authenticated GET used to reach the files service
type Requester interface {
	Get(ctx context.Context, url string) dto.Response
}

// ListError a files service call that did not produce a usable list
type ListError struct {
	StatusCode int
	Failure    dto.FailureKind
}

func (e *ListError) Error() string {
	if e.Failure != "" {
		return fmt.Sprintf("files service unavailable: %s (%d)", e.Failure, e.StatusCode)
	}
	return fmt.Sprintf("files service returned %d", e.StatusCode)
}

// Connection reports a timeout or transport failure rather than a server answer
func (e *ListError) Connection() bool {
	return e.Failure == dto.FAILURE_TIMEOUT || e.Failure == dto.FAILURE_TRANSPORT
}

type filesResponse struct {
	Lectures []dto.RemoteFile `json:"Lectures"`
}

// HTTPLister reads `<endpoint>?subjectId=<id>` from the platform API
type HTTPLister struct {
	requester Requester
	endpoint  string
}

func NewHTTPLister(requester Requester, endpoint string) *HTTPLister {
	return &HTTPLister{requester: requester, endpoint: endpoint}
}

func (l *HTTPLister) ListFiles(ctx context.Context, subjectID int) ([]dto.RemoteFile, error) {
	u, err := url.Parse(l.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse files endpoint: %w", err)
	}
	q := u.Query()
	q.Set("subjectId", strconv.Itoa(subjectID))
	u.RawQuery = q.Encode()

	resp := l.requester.Get(ctx, u.String())
	if !resp.OK() {
		return nil, &ListError{StatusCode: resp.StatusCode, Failure: resp.Failure}
	}

	var body filesResponse
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &body); err != nil {
			return nil, fmt.Errorf("unmarshal files: %w", err)
		}
	}
	if body.Lectures == nil {
		return []dto.RemoteFile{}, nil
	}
	return body.Lectures, nil
}
