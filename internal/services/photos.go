package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"github.com/AnshRaj112/portfolio-admin/pkg/mediaurl"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	photosPath      = "/creations/photos"
	albumsPath      = "/creations/photos/albums"
	photoUploadDest = "uploads/photos"
)

var hostedPhotoPrefixes = []string{"/photos/", "/uploads/"}

type PhotoInput struct {
	High         *Upload
	Low          *Upload
	Width        int
	Height       int
	Alt          string
	Published    bool
	TagIDs       []int
	SearchTagIDs []int
	AlbumIDs     []int
}

type BatchPhotoItem struct {
	File           *Upload
	Alt            string
	GenerateLowRes bool
}

// BatchPhotoInput shares tags, search tags, albums and visibility between
// every uploaded item.
type BatchPhotoInput struct {
	Items        []BatchPhotoItem
	Published    bool
	TagIDs       []int
	SearchTagIDs []int
	AlbumIDs     []int
}

type AlbumRef struct {
	ID    int    `gorm:"column:id_alb" json:"id_alb"`
	Titre string `gorm:"column:titre" json:"titre"`
}

type PhotoDetail struct {
	models.Photo
	Tags       []models.Tag `json:"tags"`
	SearchTags []models.Tag `json:"search_tags"`
	Albums     []AlbumRef   `json:"albums"`
}

func (b *Backoffice) uploadHighRes(ctx context.Context, file *Upload) (string, error) {
	return b.hostUpload(ctx, HostPhotosEndpoint, file, HostUploadOptions{Type: "high", Destination: photoUploadDest})
}

func (b *Backoffice) uploadLowRes(ctx context.Context, file *Upload) (string, error) {
	opts := LowResOptions(file.ContentType)
	opts.Type = "low"
	opts.Destination = photoUploadDest
	return b.hostUpload(ctx, HostPhotosEndpoint, file, opts)
}

func (b *Backoffice) fillDimensions(file *Upload, width, height int) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}
	w, h, err := ImageDimensions(file.Data)
	if err != nil {
		b.log.Warn("could not detect image dimensions", zap.String("file", file.Filename), zap.Error(err))
		return width, height
	}
	if width <= 0 {
		width = w
	}
	if height <= 0 {
		height = h
	}
	return width, height
}

func insertPhotoLinks(tx *gorm.DB, photoID int, tagIDs, searchTagIDs, albumIDs []int) error {
	if err := insertLinks(tx, photoTagLinks, colPhoto, photoID, colTag, tagIDs); err != nil {
		return err
	}
	if err := insertLinks(tx, photoSearchTagLinks, colPhoto, photoID, colTag, searchTagIDs); err != nil {
		return err
	}
	return insertLinks(tx, photoAlbumLinks, colPhoto, photoID, colAlbum, albumIDs)
}

// AddPhoto uploads the high and low resolution files and stores the photo
// with its links. Without a low resolution file the high one is reused.
func (b *Backoffice) AddPhoto(ctx context.Context, in PhotoInput) (int, error) {
	if !in.High.Present() {
		return 0, &ValidationError{Fields: []string{"imageHigh"}}
	}
	low := in.Low
	if !low.Present() {
		low = in.High
	}

	width, height := b.fillDimensions(in.High, in.Width, in.Height)

	lienHigh, err := b.uploadHighRes(ctx, in.High)
	if err != nil {
		return 0, err
	}
	lienLow, err := b.uploadLowRes(ctx, low)
	if err != nil {
		return 0, err
	}

	photo := models.Photo{
		LienHigh:  lienHigh,
		LienLow:   &lienLow,
		Largeur:   width,
		Hauteur:   height,
		Alt:       strings.TrimSpace(in.Alt),
		DateAjout: b.now(),
		Afficher:  in.Published,
	}
	err = b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&photo).Error; err != nil {
			return err
		}
		return insertPhotoLinks(tx, photo.ID, in.TagIDs, in.SearchTagIDs, in.AlbumIDs)
	})
	if err != nil {
		b.log.Error("failed to save photo", zap.Error(err))
		return 0, err
	}

	b.log.Info("photo added", zap.Int("id", photo.ID), zap.String("lien_high", lienHigh))
	b.revalidate(ctx, photosPath)
	return photo.ID, nil
}

// UpdatePhoto replaces the submitted files, keeps the stored dimensions and
// alt text when the form leaves them empty, and rebuilds every link set.
// Hosted files that are no longer referenced are deleted afterwards.
func (b *Backoffice) UpdatePhoto(ctx context.Context, id int, in PhotoInput) error {
	if err := validID(id); err != nil {
		return err
	}

	var existing models.Photo
	if err := b.db.WithContext(ctx).First(&existing, "id_pho = ?", id).Error; err != nil {
		return notFound(err)
	}

	lienHigh := existing.LienHigh
	lienLow := existing.LowRes()
	if in.High.Present() {
		url, err := b.uploadHighRes(ctx, in.High)
		if err != nil {
			return err
		}
		lienHigh = url
	}
	if in.Low.Present() {
		url, err := b.uploadLowRes(ctx, in.Low)
		if err != nil {
			return err
		}
		lienLow = url
	}

	width, height := in.Width, in.Height
	if width <= 0 {
		width = existing.Largeur
	}
	if height <= 0 {
		height = existing.Hauteur
	}
	alt := strings.TrimSpace(in.Alt)
	if alt == "" {
		alt = existing.Alt
	}

	changes := map[string]interface{}{
		"lien_high": lienHigh,
		"lien_low":  nullable(lienLow),
		"largeur":   width,
		"hauteur":   height,
		"alt":       alt,
		"afficher":  in.Published,
	}
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Photo{}).Where("id_pho = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		if err := replaceLinks(tx, photoSearchTagLinks, colPhoto, id, colTag, in.SearchTagIDs); err != nil {
			return err
		}
		if err := replaceLinks(tx, photoTagLinks, colPhoto, id, colTag, in.TagIDs); err != nil {
			return err
		}
		return replaceLinks(tx, photoAlbumLinks, colPhoto, id, colAlbum, in.AlbumIDs)
	})
	if err != nil {
		b.log.Error("failed to update photo", zap.Int("id", id), zap.Error(err))
		return err
	}

	b.deleteHosted(ctx, HostPhotosEndpoint, orphanedPaths(
		[]string{existing.LienHigh, existing.LowRes()},
		[]string{lienHigh, lienLow},
		hostedPhotoPrefixes,
	)...)

	b.revalidate(ctx, photosPath)
	return nil
}

// DeletePhoto removes the photo, its links and its hosted files.
func (b *Backoffice) DeletePhoto(ctx context.Context, id int) error {
	if err := validID(id); err != nil {
		return err
	}

	var photo models.Photo
	if err := b.db.WithContext(ctx).First(&photo, "id_pho = ?", id).Error; err != nil {
		return notFound(err)
	}

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, link := range []string{photoSearchTagLinks, photoTagLinks, photoAlbumLinks} {
			if err := deleteLinks(tx, link, colPhoto, id); err != nil {
				return err
			}
		}
		return tx.Delete(&models.Photo{}, "id_pho = ?", id).Error
	})
	if err != nil {
		b.log.Error("failed to delete photo", zap.Int("id", id), zap.Error(err))
		return err
	}

	b.deleteHosted(ctx, HostPhotosEndpoint, orphanedPaths(
		[]string{photo.LienHigh, photo.LowRes()}, nil, hostedPhotoPrefixes,
	)...)

	b.revalidate(ctx, photosPath)
	return nil
}

// BatchUploadPhotos stores every item independently: an item that fails is
// logged and skipped. It returns the number of photos created.
func (b *Backoffice) BatchUploadPhotos(ctx context.Context, in BatchPhotoInput) (int, error) {
	if len(in.Items) == 0 {
		return 0, ErrNoImages
	}

	count := 0
	for i, item := range in.Items {
		if !item.File.Present() {
			continue
		}
		if err := b.storeBatchItem(ctx, in, item); err != nil {
			b.log.Error("batch photo upload failed", zap.Int("index", i), zap.String("file", item.File.Filename), zap.Error(err))
			continue
		}
		count++
	}

	b.log.Info("batch photo upload done", zap.Int("requested", len(in.Items)), zap.Int("created", count))
	b.revalidate(ctx, photosPath, albumsPath)
	return count, nil
}

func (b *Backoffice) storeBatchItem(ctx context.Context, in BatchPhotoInput, item BatchPhotoItem) error {
	width, height, err := ImageDimensions(item.File.Data)
	if err != nil {
		return err
	}

	lienHigh, err := b.uploadHighRes(ctx, item.File)
	if err != nil {
		return err
	}

	var lienLow *string
	if item.GenerateLowRes {
		url, err := b.uploadLowRes(ctx, item.File)
		if err != nil {
			return err
		}
		lienLow = &url
	}

	photo := models.Photo{
		LienHigh:  lienHigh,
		LienLow:   lienLow,
		Largeur:   width,
		Hauteur:   height,
		Alt:       strings.TrimSpace(item.Alt),
		DateAjout: b.now(),
		Afficher:  in.Published,
	}
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&photo).Error; err != nil {
			return err
		}
		return insertPhotoLinks(tx, photo.ID, in.TagIDs, in.SearchTagIDs, in.AlbumIDs)
	})
}

// RemovePhotoFromAlbum deletes one photo/album link.
func (b *Backoffice) RemovePhotoFromAlbum(ctx context.Context, photoID, albumID int) error {
	if photoID <= 0 || albumID <= 0 {
		return ErrInvalidID
	}

	res := b.db.WithContext(ctx).Exec(
		"DELETE FROM "+photoAlbumLinks+" WHERE id_pho = ? AND id_alb = ?", photoID, albumID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotInAlbum
	}

	b.revalidate(ctx,
		albumsPath,
		fmt.Sprintf("/creations/photos/albums/%d/edit", albumID),
		fmt.Sprintf("/creations/photos/%d/edit", photoID),
	)
	return nil
}

func (b *Backoffice) ListPhotos(ctx context.Context) ([]PhotoDetail, error) {
	var photos []models.Photo
	if err := b.db.WithContext(ctx).Order("date_ajout DESC").Find(&photos).Error; err != nil {
		return nil, err
	}
	return b.photoDetails(ctx, photos)
}

func (b *Backoffice) GetPhoto(ctx context.Context, id int) (*PhotoDetail, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var photo models.Photo
	if err := b.db.WithContext(ctx).First(&photo, "id_pho = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	details, err := b.photoDetails(ctx, []models.Photo{photo})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (b *Backoffice) photoDetails(ctx context.Context, photos []models.Photo) ([]PhotoDetail, error) {
	db := b.db.WithContext(ctx)
	ids := make([]int, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
	}

	tags, err := linkedTags(db, photoTagLinks, colPhoto, PhotoTags.Table, ids)
	if err != nil {
		return nil, err
	}
	searchTags, err := linkedTags(db, photoSearchTagLinks, colPhoto, PhotoSearchTags.Table, ids)
	if err != nil {
		return nil, err
	}

	albums := map[int][]AlbumRef{}
	if len(ids) > 0 {
		var rows []struct {
			PhotoID int `gorm:"column:id_pho"`
			AlbumRef
		}
		err = db.Table(photoAlbumLinks+" AS l").
			Select("l.id_pho, a.id_alb, a.titre").
			Joins("JOIN photos_albums AS a ON a.id_alb = l.id_alb").
			Where("l.id_pho IN ?", ids).
			Order("a.titre ASC").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			albums[r.PhotoID] = append(albums[r.PhotoID], r.AlbumRef)
		}
	}

	out := make([]PhotoDetail, len(photos))
	for i, p := range photos {
		refs := albums[p.ID]
		if refs == nil {
			refs = []AlbumRef{}
		}
		out[i] = PhotoDetail{
			Photo:      p,
			Tags:       orEmpty(tags[p.ID]),
			SearchTags: orEmpty(searchTags[p.ID]),
			Albums:     refs,
		}
	}
	return out, nil
}

// orphanedPaths lists the old hosted paths that the new row no longer
// references, without duplicates.
func orphanedPaths(old, current []string, prefixes []string) []string {
	keep := make(map[string]struct{}, len(current))
	for _, p := range current {
		keep[p] = struct{}{}
	}

	var out []string
	for _, p := range old {
		if p == "" || !mediaurl.IsHostedUpload(p, prefixes...) {
			continue
		}
		if _, ok := keep[p]; ok {
			continue
		}
		keep[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
