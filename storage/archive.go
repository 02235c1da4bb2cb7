package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"
)

// Archive keeps copies of admin CSV exports and payment receipts.
type Archive struct {
	uploader FileUploader
	now      func() time.Time
	newID    func() string
}

func NewArchive(uploader FileUploader) *Archive {
	return &Archive{
		uploader: uploader,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// StoreExport uploads a CSV export under exports/YYYY-MM-DD/.
func (a *Archive) StoreExport(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	return a.store(ctx, "exports", filename, ContentTypeCSV, data)
}

// StoreReceipt uploads a receipt under receipts/YYYY-MM-DD/.
func (a *Archive) StoreReceipt(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	return a.store(ctx, "receipts", filename, ContentTypeText, data)
}

func (a *Archive) store(ctx context.Context, prefix, filename, contentType string, data []byte) (*UploadResult, error) {
	key := fmt.Sprintf("%s/%s/%s-%s", prefix, a.now().UTC().Format("2006-01-02"), a.newID(), filename)
	res, err := a.uploader.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", prefix, err)
	}
	return res, nil
}
