package whatsapp

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// maxMediaSize caps attachment downloads. Twilio limits WhatsApp inbound
// media to 16 MB; anything larger is not an image we want.
const maxMediaSize = 16 * 1024 * 1024

// MediaFetcher downloads message attachments from the Twilio media endpoint,
// which requires HTTP Basic authentication with the account credentials.
type MediaFetcher struct {
	accountSID string
	authToken  string
	client     *http.Client
}

func NewMediaFetcher(accountSID, authToken string) *MediaFetcher {
	return &MediaFetcher{
		accountSID: accountSID,
		authToken:  authToken,
		client:     &http.Client{},
	}
}

// FetchAsDataURL retrieves the attachment and re-wraps it as a base64 data
// URL using the declared Content-Type, defaulting to image/jpeg when the
// provider omits one.
func (f *MediaFetcher) FetchAsDataURL(ctx context.Context, mediaURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create media request: %w", err)
	}
	req.SetBasicAuth(f.accountSID, f.authToken)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch media: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaSize))
	if err != nil {
		return "", fmt.Errorf("failed to read media body: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}
