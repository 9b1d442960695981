package meme

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"emperror.dev/errors"
)

// MaxImageSize caps how much of an attachment is downloaded.
const MaxImageSize = 16 << 20

const ErrImageTooLarge = errors.Sentinel("image is too large")

// Fetcher downloads attachment images.
type Fetcher struct {
	Client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: 30 * time.Second}}
}

// Fetch downloads url and returns the body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapIf(err, "creating request")
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.WrapIf(err, "downloading image")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody bytes.Buffer
		errBody.ReadFrom(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("download failed with status %d: %s", resp.StatusCode, errBody.String())
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize+1))
	if err != nil {
		return nil, errors.WrapIf(err, "reading image")
	}
	if len(data) > MaxImageSize {
		return nil, errors.WithStack(ErrImageTooLarge)
	}

	return data, nil
}
