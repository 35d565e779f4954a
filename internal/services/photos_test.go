package services

import (
	"context"
	"testing"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPhotoRequiresHighRes(t *testing.T) {
	f := newFixture(t)

	_, err := f.b.AddPhoto(context.Background(), PhotoInput{Low: upload("low.jpg")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"imageHigh"}, verr.Fields)
	assert.Empty(t, f.host.uploads)
}

func TestAddPhotoReusesHighResForLowRes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	albumID, err := f.b.CreateAlbum(ctx, AlbumInput{Title: "Lisbon"})
	require.NoError(t, err)
	tag, err := f.b.CreateTag(ctx, PhotoTags, "city", false)
	require.NoError(t, err)

	id, err := f.b.AddPhoto(ctx, PhotoInput{
		High:      upload("a.jpg"),
		Width:     1200,
		Height:    800,
		Alt:       " tram ",
		Published: true,
		TagIDs:    []int{tag.ID, tag.ID},
		AlbumIDs:  []int{albumID},
	})
	require.NoError(t, err)

	require.Len(t, f.host.options, 2)
	assert.Equal(t, "high", f.host.options[0].Type)
	assert.Equal(t, "low", f.host.options[1].Type)
	assert.True(t, f.host.options[1].ConvertToWebp)

	photo, err := f.b.GetPhoto(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/photos/1-a.jpg", photo.LienHigh)
	assert.Equal(t, "/uploads/photos/2-a.jpg", photo.LowRes())
	assert.Equal(t, "tram", photo.Alt)
	assert.Equal(t, 1200, photo.Largeur)
	assert.True(t, photo.DateAjout.Equal(fixedNow))
	require.Len(t, photo.Tags, 1)
	assert.Equal(t, "city", photo.Tags[0].Titre)
	require.Len(t, photo.Albums, 1)
	assert.Equal(t, albumID, photo.Albums[0].ID)
	assert.Empty(t, photo.SearchTags)
}

func TestAddPhotoReadsDimensionsFromFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	file := &Upload{Filename: "p.png", ContentType: "image/png", Data: pngBytes(t, 30, 20)}
	id, err := f.b.AddPhoto(ctx, PhotoInput{High: file})
	require.NoError(t, err)

	photo, err := f.b.GetPhoto(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 30, photo.Largeur)
	assert.Equal(t, 20, photo.Hauteur)
}

func TestUpdatePhotoDeletesReplacedFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tag, err := f.b.CreateTag(ctx, PhotoTags, "old", false)
	require.NoError(t, err)
	id, err := f.b.AddPhoto(ctx, PhotoInput{High: upload("a.jpg"), Width: 10, Height: 5, Alt: "first", TagIDs: []int{tag.ID}})
	require.NoError(t, err)

	err = f.b.UpdatePhoto(ctx, id, PhotoInput{High: upload("b.jpg"), Published: true})
	require.NoError(t, err)

	photo, err := f.b.GetPhoto(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/photos/3-b.jpg", photo.LienHigh)
	assert.Equal(t, "/uploads/photos/2-a.jpg", photo.LowRes())
	assert.Equal(t, 10, photo.Largeur)
	assert.Equal(t, 5, photo.Hauteur)
	assert.Equal(t, "first", photo.Alt)
	assert.True(t, photo.Afficher)
	assert.Empty(t, photo.Tags)

	assert.Equal(t, []string{"/uploads/photos/1-a.jpg"}, f.host.deletedPaths())
	assert.ErrorIs(t, f.b.UpdatePhoto(ctx, 404, PhotoInput{}), ErrNotFound)
}

func TestDeletePhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	albumID, err := f.b.CreateAlbum(ctx, AlbumInput{Title: "Porto"})
	require.NoError(t, err)
	id, err := f.b.AddPhoto(ctx, PhotoInput{High: upload("a.jpg"), Low: upload("a-low.jpg"), Width: 1, Height: 1, AlbumIDs: []int{albumID}})
	require.NoError(t, err)

	require.NoError(t, f.b.DeletePhoto(ctx, id))

	_, err = f.b.GetPhoto(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ElementsMatch(t, []string{"/uploads/photos/1-a.jpg", "/uploads/photos/2-a-low.jpg"}, f.host.deletedPaths())

	var n int64
	f.db.Table(photoAlbumLinks).Where("id_alb = ?", albumID).Count(&n)
	assert.Zero(t, n)

	assert.ErrorIs(t, f.b.DeletePhoto(ctx, id), ErrNotFound)
}

func TestBatchUploadPhotosSkipsFailedItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	albumID, err := f.b.CreateAlbum(ctx, AlbumInput{Title: "Batch"})
	require.NoError(t, err)

	count, err := f.b.BatchUploadPhotos(ctx, BatchPhotoInput{
		Items: []BatchPhotoItem{
			{File: &Upload{Filename: "ok.png", ContentType: "image/png", Data: pngBytes(t, 8, 6)}, Alt: "ok", GenerateLowRes: true},
			{File: &Upload{Filename: "garbage.png", Data: []byte("not an image")}},
			{File: &Upload{Filename: "empty.png"}},
			{File: &Upload{Filename: "plain.png", ContentType: "image/png", Data: pngBytes(t, 2, 2)}},
		},
		Published: true,
		AlbumIDs:  []int{albumID},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var photos []models.Photo
	require.NoError(t, f.db.Order("id_pho").Find(&photos).Error)
	require.Len(t, photos, 2)
	assert.Equal(t, 8, photos[0].Largeur)
	assert.NotEmpty(t, photos[0].LowRes())
	assert.Empty(t, photos[1].LowRes())

	album, err := f.b.GetAlbum(ctx, albumID)
	require.NoError(t, err)
	assert.Equal(t, 2, album.PhotoCount)
	assert.Contains(t, f.pages.paths, albumsPath)

	_, err = f.b.BatchUploadPhotos(ctx, BatchPhotoInput{})
	assert.ErrorIs(t, err, ErrNoImages)
}

func TestRemovePhotoFromAlbum(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	albumID, err := f.b.CreateAlbum(ctx, AlbumInput{Title: "A"})
	require.NoError(t, err)
	photoID, err := f.b.AddPhoto(ctx, PhotoInput{High: upload("a.jpg"), Width: 1, Height: 1, AlbumIDs: []int{albumID}})
	require.NoError(t, err)

	require.NoError(t, f.b.RemovePhotoFromAlbum(ctx, photoID, albumID))
	assert.ErrorIs(t, f.b.RemovePhotoFromAlbum(ctx, photoID, albumID), ErrNotInAlbum)
	assert.ErrorIs(t, f.b.RemovePhotoFromAlbum(ctx, 0, albumID), ErrInvalidID)

	_, err = f.b.GetPhoto(ctx, photoID)
	require.NoError(t, err)
}

func TestOrphanedPaths(t *testing.T) {
	got := orphanedPaths(
		[]string{"/uploads/a.jpg", "/uploads/a.jpg", "https://cdn/x.jpg", "", "/uploads/keep.jpg"},
		[]string{"/uploads/keep.jpg"},
		[]string{"/uploads/"},
	)
	assert.Equal(t, []string{"/uploads/a.jpg"}, got)
}
