package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AlbumInput struct {
	Title       string
	Description string
	Date        *time.Time
	Published   bool
	TagIDs      []int
	PhotoIDs    []int
}

type AlbumDetail struct {
	models.PhotoAlbum
	PhotoCount int            `json:"photo_count"`
	Cover      string         `json:"cover,omitempty"`
	Tags       []models.Tag   `json:"tags"`
	Photos     []models.Photo `json:"photos,omitempty"`
}

func albumEditPath(id int) string {
	return fmt.Sprintf("/creations/photos/albums/%d/edit", id)
}

func (in AlbumInput) row() models.PhotoAlbum {
	album := models.PhotoAlbum{
		Titre:    strings.TrimSpace(in.Title),
		Date:     in.Date,
		Afficher: in.Published,
	}
	if d := SanitizeMarkdown(in.Description); d != "" {
		album.Description = &d
	}
	return album
}

func (b *Backoffice) CreateAlbum(ctx context.Context, in AlbumInput) (int, error) {
	if err := requireFields(map[string]string{"title": in.Title}, "title"); err != nil {
		return 0, err
	}

	album := in.row()
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&album).Error; err != nil {
			return err
		}
		if err := insertLinks(tx, albumTagLinks, colAlbum, album.ID, colTag, in.TagIDs); err != nil {
			return err
		}
		return insertLinks(tx, photoAlbumLinks, colAlbum, album.ID, colPhoto, in.PhotoIDs)
	})
	if err != nil {
		b.log.Error("failed to create album", zap.Error(err))
		return 0, err
	}

	b.revalidate(ctx, albumsPath)
	return album.ID, nil
}

// UpdateAlbum rewrites the album and replaces its tag and photo links.
func (b *Backoffice) UpdateAlbum(ctx context.Context, id int, in AlbumInput) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := requireFields(map[string]string{"title": in.Title}, "title"); err != nil {
		return err
	}

	album := in.row()
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PhotoAlbum{}).Where("id_alb = ?", id).Updates(map[string]interface{}{
			"titre":       album.Titre,
			"description": album.Description,
			"date":        album.Date,
			"afficher":    album.Afficher,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := replaceLinks(tx, albumTagLinks, colAlbum, id, colTag, in.TagIDs); err != nil {
			return err
		}
		return replaceLinks(tx, photoAlbumLinks, colAlbum, id, colPhoto, in.PhotoIDs)
	})
	if err != nil {
		return err
	}

	b.revalidate(ctx, albumsPath, albumEditPath(id))
	return nil
}

// DeleteAlbum removes the album and its links. Photos are kept.
func (b *Backoffice) DeleteAlbum(ctx context.Context, id int) error {
	if err := validID(id); err != nil {
		return err
	}

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLinks(tx, albumTagLinks, colAlbum, id); err != nil {
			return err
		}
		if err := deleteLinks(tx, photoAlbumLinks, colAlbum, id); err != nil {
			return err
		}
		res := tx.Delete(&models.PhotoAlbum{}, "id_alb = ?", id)
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

	b.revalidate(ctx, albumsPath)
	return nil
}

func (b *Backoffice) ListAlbums(ctx context.Context) ([]AlbumDetail, error) {
	db := b.db.WithContext(ctx)

	var albums []models.PhotoAlbum
	if err := db.Order("date DESC").Find(&albums).Error; err != nil {
		return nil, err
	}
	ids := make([]int, len(albums))
	for i, a := range albums {
		ids[i] = a.ID
	}

	tags, err := linkedTags(db, albumTagLinks, colAlbum, PhotoTags.Table, ids)
	if err != nil {
		return nil, err
	}
	photoIDs, err := linkedIDs(db, photoAlbumLinks, colAlbum, colPhoto, ids)
	if err != nil {
		return nil, err
	}
	covers, err := b.albumCovers(db, photoIDs)
	if err != nil {
		return nil, err
	}

	out := make([]AlbumDetail, len(albums))
	for i, a := range albums {
		out[i] = AlbumDetail{
			PhotoAlbum: a,
			PhotoCount: len(photoIDs[a.ID]),
			Cover:      covers[a.ID],
			Tags:       orEmpty(tags[a.ID]),
		}
	}
	return out, nil
}

// GetAlbum returns the album with its photos, newest first.
func (b *Backoffice) GetAlbum(ctx context.Context, id int) (*AlbumDetail, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	db := b.db.WithContext(ctx)

	var album models.PhotoAlbum
	if err := db.First(&album, "id_alb = ?", id).Error; err != nil {
		return nil, notFound(err)
	}

	tags, err := linkedTags(db, albumTagLinks, colAlbum, PhotoTags.Table, []int{id})
	if err != nil {
		return nil, err
	}

	photos := []models.Photo{}
	err = db.Table("photos").
		Select("photos.*").
		Joins("JOIN "+photoAlbumLinks+" AS l ON l.id_pho = photos.id_pho").
		Where("l.id_alb = ?", id).
		Order("photos.date_ajout DESC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}

	detail := &AlbumDetail{
		PhotoAlbum: album,
		PhotoCount: len(photos),
		Tags:       orEmpty(tags[id]),
		Photos:     photos,
	}
	if len(photos) > 0 {
		detail.Cover = photoPreview(photos[0])
	}
	return detail, nil
}

// albumCovers picks the first photo of each album as its cover.
func (b *Backoffice) albumCovers(db *gorm.DB, photoIDs map[int][]int) (map[int]string, error) {
	var all []int
	for _, ids := range photoIDs {
		if len(ids) > 0 {
			all = append(all, ids[0])
		}
	}
	covers := make(map[int]string, len(photoIDs))
	if len(all) == 0 {
		return covers, nil
	}

	var photos []models.Photo
	if err := db.Where("id_pho IN ?", all).Find(&photos).Error; err != nil {
		return nil, err
	}
	byID := make(map[int]models.Photo, len(photos))
	for _, p := range photos {
		byID[p.ID] = p
	}
	for albumID, ids := range photoIDs {
		if len(ids) == 0 {
			continue
		}
		if p, ok := byID[ids[0]]; ok {
			covers[albumID] = photoPreview(p)
		}
	}
	return covers, nil
}

func photoPreview(p models.Photo) string {
	if low := p.LowRes(); low != "" {
		return low
	}
	return p.LienHigh
}
