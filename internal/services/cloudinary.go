package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

// UploadImage stores an image under folder with an incoming transformation
// applied, e.g. c_scale,w_800,q_auto:good converted to webp.
func (s *CloudinaryService) UploadImage(ctx context.Context, r io.Reader, folder string, t ImageTransform) (*UploadedAsset, error) {
	return s.upload(ctx, r, uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		Transformation: t.String(),
		Format:         t.Format,
	})
}

func (s *CloudinaryService) UploadVideo(ctx context.Context, r io.Reader, folder string, t VideoTransform) (*UploadedAsset, error) {
	return s.upload(ctx, r, uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "video",
		Transformation: t.String(),
		Format:         t.Format,
	})
}

func (s *CloudinaryService) upload(ctx context.Context, r io.Reader, params uploader.UploadParams) (*UploadedAsset, error) {
	result, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %s", result.Error.Message)
	}

	return &UploadedAsset{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Width:    result.Width,
		Height:   result.Height,
	}, nil
}

// Destroy removes an asset. resourceType is "image" or "video".
func (s *CloudinaryService) Destroy(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = "image"
	}
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from Cloudinary: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to delete %s from Cloudinary: %s", publicID, result.Error.Message)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("failed to delete %s from Cloudinary: %s", publicID, result.Result)
	}
	return nil
}

func (t ImageTransform) String() string {
	var parts []string
	if t.Crop != "" {
		parts = append(parts, "c_"+t.Crop)
	}
	if t.Width > 0 {
		parts = append(parts, fmt.Sprintf("w_%d", t.Width))
	}
	if t.Quality != "" {
		parts = append(parts, "q_"+t.Quality)
	}
	return strings.Join(parts, ",")
}

func (t VideoTransform) String() string {
	if t.Quality == "" {
		return ""
	}
	return "q_" + t.Quality
}

// Transforms used by the homepage and about page.
var (
	SectionImageTransform = ImageTransform{Width: 800, Crop: "scale", Quality: "auto:good", Format: "webp"}
	SectionVideoTransform = VideoTransform{Quality: "auto:good", Format: "mp4"}
)
