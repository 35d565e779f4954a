package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/portfolio-admin/internal/metrics"
	"github.com/AnshRaj112/portfolio-admin/pkg/mediaurl"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BackofficeDeps groups the collaborators of Backoffice. CDN and Host may
// be nil when the provider is not configured.
type BackofficeDeps struct {
	DB        *gorm.DB
	CDN       CDN
	Host      MediaHost
	Pages     PageInvalidator
	Media     MediaRecorder
	Log       *zap.Logger
	PublicDir string
}

// Backoffice implements every content operation of the admin: it uploads
// media, writes rows and invalidates the public pages that show them.
type Backoffice struct {
	db        *gorm.DB
	cdn       CDN
	host      MediaHost
	pages     PageInvalidator
	media     MediaRecorder
	log       *zap.Logger
	publicDir string
	now       func() time.Time
}

func NewBackoffice(d BackofficeDeps) *Backoffice {
	b := &Backoffice{
		db:        d.DB,
		cdn:       d.CDN,
		host:      d.Host,
		pages:     d.Pages,
		media:     d.Media,
		log:       d.Log,
		publicDir: d.PublicDir,
		now:       time.Now,
	}
	if b.media == nil {
		b.media = NopMediaLog{}
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if b.publicDir == "" {
		b.publicDir = "public"
	}
	return b
}

// revalidate never fails the calling operation: the rows are already
// committed when it runs.
func (b *Backoffice) revalidate(ctx context.Context, paths ...string) {
	if b.pages == nil || len(paths) == 0 {
		return
	}
	if err := b.pages.Revalidate(ctx, paths...); err != nil {
		b.log.Warn("page revalidation failed", zap.Strings("paths", paths), zap.Error(err))
	}
}

func (b *Backoffice) recordMedia(ctx context.Context, provider, action, ref string, err error) {
	metrics.MediaOperation(provider, action, err)

	ev := MediaEvent{Action: action, Provider: provider, Ref: ref, Status: "ok", CreatedAt: b.now().UTC()}
	if err != nil {
		ev.Status = "failed"
		ev.Error = err.Error()
	}
	if recErr := b.media.Record(ctx, ev); recErr != nil {
		b.log.Warn("failed to record media event", zap.String("ref", ref), zap.Error(recErr))
	}
}

func (b *Backoffice) hostUpload(ctx context.Context, endpoint string, file *Upload, opts HostUploadOptions) (string, error) {
	if b.host == nil {
		return "", ErrMediaUnavailable
	}
	url, err := b.host.Upload(ctx, endpoint, file, opts)
	b.recordMedia(ctx, ProviderHost, ActionUpload, file.Filename, err)
	if err != nil {
		b.log.Error("media host upload failed", zap.String("endpoint", endpoint), zap.String("file", file.Filename), zap.Error(err))
		return "", err
	}
	return url, nil
}

// deleteHosted removes orphaned media host files concurrently. Failures
// are logged and recorded, never returned.
func (b *Backoffice) deleteHosted(ctx context.Context, endpoint string, paths ...string) {
	if b.host == nil || len(paths) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, p := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			err := b.host.Delete(ctx, endpoint, p)
			b.recordMedia(ctx, ProviderHost, ActionDelete, p, err)
			if err != nil {
				b.log.Warn("failed to delete hosted media", zap.String("path", p), zap.Error(err))
			}
		}(p)
	}
	wg.Wait()
}

func (b *Backoffice) cdnUploadImage(ctx context.Context, file *Upload, folder string, t ImageTransform) (*UploadedAsset, error) {
	if b.cdn == nil {
		return nil, ErrMediaUnavailable
	}
	asset, err := b.cdn.UploadImage(ctx, bytes.NewReader(file.Data), folder, t)
	b.recordMedia(ctx, ProviderCDN, ActionUpload, folder+"/"+file.Filename, err)
	if err != nil {
		b.log.Error("CDN image upload failed", zap.String("folder", folder), zap.Error(err))
		return nil, err
	}
	return asset, nil
}

func (b *Backoffice) cdnUploadVideo(ctx context.Context, file *Upload, folder string, t VideoTransform) (*UploadedAsset, error) {
	if b.cdn == nil {
		return nil, ErrMediaUnavailable
	}
	asset, err := b.cdn.UploadVideo(ctx, bytes.NewReader(file.Data), folder, t)
	b.recordMedia(ctx, ProviderCDN, ActionUpload, folder+"/"+file.Filename, err)
	if err != nil {
		b.log.Error("CDN video upload failed", zap.String("folder", folder), zap.Error(err))
		return nil, err
	}
	return asset, nil
}

// destroyReplaced deletes the CDN asset behind oldURL once its replacement
// is stored. Failures are only warnings.
func (b *Backoffice) destroyReplaced(ctx context.Context, oldURL string) {
	if b.cdn == nil || oldURL == "" {
		return
	}
	publicID := mediaurl.ExtractPublicID(oldURL)
	if publicID == "" {
		return
	}
	err := b.cdn.Destroy(ctx, publicID, mediaurl.ResourceType(oldURL))
	b.recordMedia(ctx, ProviderCDN, ActionDelete, publicID, err)
	if err != nil {
		b.log.Warn("failed to delete replaced CDN asset", zap.String("public_id", publicID), zap.Error(err))
		return
	}
	b.log.Info("deleted replaced CDN asset", zap.String("public_id", publicID))
}

// removeLocal deletes a file stored under the public directory by an older
// version of the site. Paths escaping the directory are refused.
func (b *Backoffice) removeLocal(ctx context.Context, rel string) {
	root, err := filepath.Abs(b.publicDir)
	if err != nil {
		b.log.Warn("invalid public directory", zap.String("dir", b.publicDir), zap.Error(err))
		return
	}
	full := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	if !strings.HasPrefix(full, root+string(filepath.Separator)) {
		b.log.Warn("refusing to delete file outside public directory", zap.String("path", rel))
		return
	}

	err = os.Remove(full)
	if errors.Is(err, os.ErrNotExist) {
		b.log.Info("local media already gone", zap.String("path", full))
		return
	}
	b.recordMedia(ctx, ProviderLocal, ActionDelete, rel, err)
	if err != nil {
		b.log.Warn("failed to delete local media", zap.String("path", full), zap.Error(err))
	}
}

func validID(id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
