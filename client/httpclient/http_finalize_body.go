package httpclient

import (
	"fmt"
	"net/http"

	"github.com/joy-dx/edunet/utils"
)

// FinalizeBody prepares BodyBytes and ContentType exactly once per call.
// Rules:
// - Only POST carries a body; other methods are sent empty.
// - If BodyBytes is already set it is kept as is.
// - A raw PostBody is encoded with its charset.
// - Otherwise BodyBytes is built from Body+BodyType, empty when Body is nil.
func (r *HTTPRequest) FinalizeBody() error {
	if r.Method != http.MethodPost {
		r.BodyBytes = nil
		return nil
	}
	if r.BodyBytes != nil {
		return nil
	}

	if r.PostBody != nil {
		buf, ct, err := utils.EncodeText(r.PostBody.Content, r.PostBody.Encoding, r.PostBody.MediaType)
		if err != nil {
			return fmt.Errorf("prepare body: %w", err)
		}
		r.BodyBytes = buf
		if r.ContentType == "" {
			r.ContentType = ct
		}
		return nil
	}

	bodyBuf, ct, err := utils.PrepareBody(r.Body, r.BodyType)
	if err != nil {
		return fmt.Errorf("prepare body: %w", err)
	}

	r.BodyBytes = bodyBuf
	// Prefer explicit ContentType if some middleware set it.
	if r.ContentType == "" {
		r.ContentType = ct
	}
	return nil
}
