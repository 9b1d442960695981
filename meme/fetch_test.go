package meme

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"emperror.dev/errors"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const imageURL = "https://cdn.discordapp.com/attachments/1/2/kep.png"

func mockFetcher() (*Fetcher, *httpmock.MockTransport) {
	transport := httpmock.NewMockTransport()
	return &Fetcher{Client: &http.Client{Transport: transport}}, transport
}

func TestFetch(t *testing.T) {
	f, transport := mockFetcher()
	transport.RegisterResponder(http.MethodGet, imageURL, httpmock.NewBytesResponder(200, []byte("pixels")))

	data, err := f.Fetch(context.Background(), imageURL)
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestFetchBadStatus(t *testing.T) {
	f, transport := mockFetcher()
	transport.RegisterResponder(http.MethodGet, imageURL, httpmock.NewStringResponder(404, "404: Not Found"))

	_, err := f.Fetch(context.Background(), imageURL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "Not Found")
}

func TestFetchTransportError(t *testing.T) {
	f, _ := mockFetcher()

	_, err := f.Fetch(context.Background(), imageURL)
	assert.Error(t, err)
}

func TestFetchTooLarge(t *testing.T) {
	f, transport := mockFetcher()
	transport.RegisterResponder(http.MethodGet, imageURL,
		httpmock.NewBytesResponder(200, bytes.Repeat([]byte{1}, MaxImageSize+1)))

	_, err := f.Fetch(context.Background(), imageURL)
	assert.True(t, errors.Is(err, ErrImageTooLarge))
}
