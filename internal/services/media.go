package services

import (
	"context"
	"io"
	"strings"
	"time"
)

// Upload is a file received from the admin UI, fully buffered so it can be
// measured and sent to several providers.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Present mirrors the browser behaviour of sending an empty part for an
// untouched file input.
func (u *Upload) Present() bool {
	return u != nil && len(u.Data) > 0
}

// UploadedAsset is what a CDN returns for a stored file.
type UploadedAsset struct {
	URL      string
	PublicID string
	Width    int
	Height   int
}

type ImageTransform struct {
	Width   int
	Crop    string
	Quality string
	Format  string
}

type VideoTransform struct {
	Quality string
	Format  string
}

// CDN stores images and videos addressed by public id.
type CDN interface {
	UploadImage(ctx context.Context, r io.Reader, folder string, t ImageTransform) (*UploadedAsset, error)
	UploadVideo(ctx context.Context, r io.Reader, folder string, t VideoTransform) (*UploadedAsset, error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

// HostUploadOptions are the optional processing fields understood by the
// portfolio media host.
type HostUploadOptions struct {
	Type          string
	Destination   string
	Resize        bool
	MaxWidth      int
	Optimize      bool
	ConvertToWebp bool
	Quality       int
}

// MediaHost is the portfolio site's own upload API.
type MediaHost interface {
	Upload(ctx context.Context, endpoint string, file *Upload, opts HostUploadOptions) (string, error)
	Delete(ctx context.Context, endpoint, imagePath string) error
}

// PageInvalidator drops cached copies of public pages.
type PageInvalidator interface {
	Revalidate(ctx context.Context, paths ...string) error
}

type MediaEvent struct {
	Action    string    `bson:"action" json:"action"`
	Provider  string    `bson:"provider" json:"provider"`
	Ref       string    `bson:"ref" json:"ref"`
	Status    string    `bson:"status" json:"status"`
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MediaRecorder keeps a ledger of media operations.
type MediaRecorder interface {
	Record(ctx context.Context, ev MediaEvent) error
	RecentFailures(ctx context.Context, limit int) ([]MediaEvent, error)
}

const (
	ProviderCDN   = "cdn"
	ProviderHost  = "host"
	ProviderLocal = "local"

	ActionUpload = "upload"
	ActionDelete = "delete"
)

// Media host endpoints.
const (
	HostPhotosEndpoint  = "/api/actions-creations/photos"
	HostAutresEndpoint  = "/api/actions/creations/autres"
	HostJournalEndpoint = "/api/actions/journal-personnel"
)

// LowResOptions are the processing options for generated low resolution
// photo variants.
func LowResOptions(contentType string) HostUploadOptions {
	opts := HostUploadOptions{Resize: true, MaxWidth: 800, Optimize: true}
	if strings.Contains(strings.ToLower(contentType), "webp") {
		opts.Quality = 75
	} else {
		opts.ConvertToWebp = true
		opts.Quality = 70
	}
	return opts
}
