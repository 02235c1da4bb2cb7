package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUploader struct {
	objects      map[string]string
	contentTypes map[string]string
	err          error
}

func newMemUploader() *memUploader {
	return &memUploader{objects: map[string]string{}, contentTypes: map[string]string{}}
}

func (m *memUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (*UploadResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.objects[key] = string(b)
	m.contentTypes[key] = contentType
	return &UploadResult{Key: key, Location: m.GetPublicURL(key)}, nil
}

func (m *memUploader) GetPublicURL(key string) string {
	return publicURL("https://files.example.com/", key)
}

var _ FileUploader = (*cloudflareR2Uploader)(nil)

func TestArchive_StoreExport(t *testing.T) {
	up := newMemUploader()
	a := NewArchive(up)
	a.now = func() time.Time { return time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC) }

	res, err := a.StoreExport(context.Background(), "tournament-registrations-2025-08-26.csv", []byte("a,b\n"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(res.Key, "exports/2025-08-26/"))
	require.True(t, strings.HasSuffix(res.Key, "-tournament-registrations-2025-08-26.csv"))
	id := strings.TrimSuffix(strings.TrimPrefix(res.Key, "exports/2025-08-26/"), "-tournament-registrations-2025-08-26.csv")
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	assert.Equal(t, "a,b\n", up.objects[res.Key])
	assert.Equal(t, ContentTypeCSV, up.contentTypes[res.Key])
	assert.Equal(t, "https://files.example.com/"+res.Key, res.Location)
}

func TestArchive_StoreReceipt(t *testing.T) {
	up := newMemUploader()
	a := NewArchive(up)
	a.newID = func() string { return "fixed" }
	a.now = func() time.Time { return time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC) }

	res, err := a.StoreReceipt(context.Background(), "payment-receipt-1.txt", []byte("receipt"))
	require.NoError(t, err)
	assert.Equal(t, "receipts/2025-08-27/fixed-payment-receipt-1.txt", res.Key)
	assert.Equal(t, ContentTypeText, up.contentTypes[res.Key])
}

func TestArchive_UploadError(t *testing.T) {
	up := newMemUploader()
	up.err = errors.New("denied")

	_, err := NewArchive(up).StoreExport(context.Background(), "x.csv", nil)
	assert.ErrorIs(t, err, up.err)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/a/b.csv", publicURL("https://cdn.example.com/", "/a/b.csv"))
	assert.Equal(t, "", publicURL("", "a"))
	assert.Equal(t, "", publicURL("https://cdn.example.com", ""))
}

func TestNewCloudflareR2Uploader_RequiresAllFields(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	assert.Error(t, err)
}
