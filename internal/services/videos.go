package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"github.com/AnshRaj112/portfolio-admin/pkg/mediaurl"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const videosPath = "/creations/videos"

type VideoInput struct {
	Title       string
	Description string
	URL         string
	Duration    string
	Date        *time.Time
	Published   bool
	Tags        []string
}

type VideoDetail struct {
	models.Video
	YoutubeID string       `json:"youtube_id"`
	Tags      []models.Tag `json:"tags"`
}

func (in VideoInput) validate() error {
	return requireFields(map[string]string{"title": in.Title, "url": in.URL}, "title", "url")
}

func (in VideoInput) columns() map[string]interface{} {
	return map[string]interface{}{
		"titre":       strings.TrimSpace(in.Title),
		"description": SanitizeMarkdown(in.Description),
		"lien":        strings.TrimSpace(in.URL),
		"duree":       strings.TrimSpace(in.Duration),
		"date":        in.Date,
		"afficher":    in.Published,
	}
}

// linkTagsByTitle links owner to the tags titled titles, creating the
// missing ones.
func linkTagsByTitle(tx *gorm.DB, kind TagKind, table, ownerCol string, ownerID int, titles []string) error {
	ids := make([]int, 0, len(titles))
	for _, title := range cleanTitles(titles) {
		id, err := findOrCreateTag(tx, kind, title)
		if err != nil {
			return fmt.Errorf("tag %q: %w", title, err)
		}
		ids = append(ids, id)
	}
	return insertLinks(tx, table, ownerCol, ownerID, colTag, ids)
}

func (b *Backoffice) AddVideo(ctx context.Context, in VideoInput) (int, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	video := models.Video{
		Titre:       strings.TrimSpace(in.Title),
		Description: SanitizeMarkdown(in.Description),
		Lien:        strings.TrimSpace(in.URL),
		Duree:       strings.TrimSpace(in.Duration),
		Date:        in.Date,
		Afficher:    in.Published,
	}
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&video).Error; err != nil {
			return err
		}
		return linkTagsByTitle(tx, VideoTags, videoTagLinks, colVideo, video.ID, in.Tags)
	})
	if err != nil {
		b.log.Error("failed to add video", zap.Error(err))
		return 0, err
	}

	b.revalidate(ctx, videosPath)
	return video.ID, nil
}

func (b *Backoffice) UpdateVideo(ctx context.Context, id int, in VideoInput) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := in.validate(); err != nil {
		return err
	}

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Video{}).Where("id_vid = ?", id).Updates(in.columns())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := deleteLinks(tx, videoTagLinks, colVideo, id); err != nil {
			return err
		}
		return linkTagsByTitle(tx, VideoTags, videoTagLinks, colVideo, id, in.Tags)
	})
	if err != nil {
		return err
	}

	b.revalidate(ctx, videosPath, fmt.Sprintf("/creations/videos/edit/%d", id))
	return nil
}

func (b *Backoffice) DeleteVideo(ctx context.Context, id int) error {
	if err := validID(id); err != nil {
		return err
	}

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLinks(tx, videoTagLinks, colVideo, id); err != nil {
			return err
		}
		res := tx.Delete(&models.Video{}, "id_vid = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.revalidate(ctx, videosPath)
	return nil
}

func (b *Backoffice) ListVideos(ctx context.Context) ([]VideoDetail, error) {
	var videos []models.Video
	if err := b.db.WithContext(ctx).Order("date DESC").Find(&videos).Error; err != nil {
		return nil, err
	}
	return b.videoDetails(ctx, videos)
}

func (b *Backoffice) GetVideo(ctx context.Context, id int) (*VideoDetail, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var video models.Video
	if err := b.db.WithContext(ctx).First(&video, "id_vid = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	details, err := b.videoDetails(ctx, []models.Video{video})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (b *Backoffice) videoDetails(ctx context.Context, videos []models.Video) ([]VideoDetail, error) {
	ids := make([]int, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}
	tags, err := linkedTags(b.db.WithContext(ctx), videoTagLinks, colVideo, VideoTags.Table, ids)
	if err != nil {
		return nil, err
	}

	out := make([]VideoDetail, len(videos))
	for i, v := range videos {
		out[i] = VideoDetail{
			Video:     v,
			YoutubeID: mediaurl.YoutubeID(v.Lien),
			Tags:      orEmpty(tags[v.ID]),
		}
	}
	return out, nil
}
