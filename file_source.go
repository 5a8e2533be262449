package edunet

import (
	"context"
	"fmt"
	"net/url"

	"github.com/joy-dx/edunet/client/httpclient"
	"github.com/joy-dx/edunet/dto"
)

// HTTPFileSource streams files from the platform download endpoint through a
// registered HTTP client, so requests carry the same bearer token and headers
// as API calls.
type HTTPFileSource struct {
	svc       *NetSvc
	endpoint  string
	clientRef string
}

func NewHTTPFileSource(svc *NetSvc) *HTTPFileSource {
	return &HTTPFileSource{
		svc:       svc,
		endpoint:  svc.cfg.FileEndpoint(),
		clientRef: dto.NET_DEFAULT_CLIENT_REF,
	}
}

func (f *HTTPFileSource) WithClientRef(ref string) *HTTPFileSource {
	f.clientRef = ref
	return f
}

// SourceURL endpoint?fileName=<PathName>/<FileName>
func (f *HTTPFileSource) SourceURL(file dto.RemoteFile) (string, error) {
	if file.FileName == "" {
		return "", fmt.Errorf("%w: empty remote file name", dto.ErrInvalidFileName)
	}
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse file endpoint: %w", err)
	}
	q := u.Query()
	q.Set("fileName", file.RemoteID())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (f *HTTPFileSource) Open(ctx context.Context, file dto.RemoteFile) (dto.TransferStream, error) {
	source, err := f.SourceURL(file)
	if err != nil {
		return dto.TransferStream{}, err
	}
	client, err := f.svc.streamClient(f.clientRef)
	if err != nil {
		return dto.TransferStream{}, err
	}

	reqCfg := httpclient.DefaultHTTPRequestConfig()
	reqCfg.WithURL(source)
	resp, err := client.OpenStream(ctx, &reqCfg)
	if err != nil {
		return dto.TransferStream{}, err
	}
	return dto.TransferStream{Body: resp.Body, TotalSize: resp.ContentLength}, nil
}
