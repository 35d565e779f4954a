package handlers

import (
	"fmt"
	"net/http"

	"github.com/AnshRaj112/portfolio-admin/internal/services"
)

type photoForm struct {
	Width        int    `schema:"largeur" validate:"gte=0"`
	Height       int    `schema:"hauteur" validate:"gte=0"`
	Alt          string `schema:"alt" validate:"max=500"`
	Published    bool   `schema:"isPublished"`
	TagIDs       []int  `schema:"tags"`
	SearchTagIDs []int  `schema:"tagsRecherche"`
	AlbumIDs     []int  `schema:"albums"`
}

type batchForm struct {
	ImageCount   int   `schema:"imageCount" validate:"gte=0,lte=200"`
	Published    bool  `schema:"isPublished"`
	TagIDs       []int `schema:"tags"`
	SearchTagIDs []int `schema:"tagsRecherche"`
	AlbumIDs     []int `schema:"albums"`
}

func readPhotoInput(w http.ResponseWriter, r *http.Request) (services.PhotoInput, error) {
	var form photoForm
	if err := decodeForm(w, r, &form); err != nil {
		return services.PhotoInput{}, err
	}
	high, err := formFile(r, "imageHigh")
	if err != nil {
		return services.PhotoInput{}, err
	}
	low, err := formFile(r, "imageLow")
	if err != nil {
		return services.PhotoInput{}, err
	}
	return services.PhotoInput{
		High:         high,
		Low:          low,
		Width:        form.Width,
		Height:       form.Height,
		Alt:          form.Alt,
		Published:    form.Published,
		TagIDs:       form.TagIDs,
		SearchTagIDs: form.SearchTagIDs,
		AlbumIDs:     form.AlbumIDs,
	}, nil
}

// ListPhotos handles GET /api/photos
func ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := backoffice.ListPhotos(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, photos)
}

// GetPhoto handles GET /api/photos/{id}
func GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	photo, err := backoffice.GetPhoto(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, photo)
}

// AddPhoto handles POST /api/photos
func AddPhoto(w http.ResponseWriter, r *http.Request) {
	in, err := readPhotoInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := backoffice.AddPhoto(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, id, "Photo added")
}

// UpdatePhoto handles PUT /api/photos/{id}
func UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := readPhotoInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.UpdatePhoto(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Photo updated")
}

// DeletePhoto handles DELETE /api/photos/{id}
func DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.DeletePhoto(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Photo deleted")
}

// BatchUploadPhotos handles POST /api/photos/batch. Files come as photo_0..photo_{imageCount-1}
// with matching alt_i and generateLowRes_i fields.
func BatchUploadPhotos(w http.ResponseWriter, r *http.Request) {
	var form batchForm
	if err := decodeForm(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	if form.ImageCount <= 0 {
		writeError(w, r, services.ErrNoImages)
		return
	}

	in := services.BatchPhotoInput{
		Published:    form.Published,
		TagIDs:       form.TagIDs,
		SearchTagIDs: form.SearchTagIDs,
		AlbumIDs:     form.AlbumIDs,
	}
	for i := 0; i < form.ImageCount; i++ {
		file, err := formFile(r, fmt.Sprintf("photo_%d", i))
		if err != nil {
			writeError(w, r, err)
			return
		}
		in.Items = append(in.Items, services.BatchPhotoItem{
			File:           file,
			Alt:            r.PostFormValue(fmt.Sprintf("alt_%d", i)),
			GenerateLowRes: r.PostFormValue(fmt.Sprintf("generateLowRes_%d", i)) == "true",
		})
	}

	count, err := backoffice.BatchUploadPhotos(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("%d photo(s) uploaded", count),
		Data:    map[string]int{"count": count},
	})
}

// RemovePhotoFromAlbum handles DELETE /api/albums/{albumID}/photos/{id}
func RemovePhotoFromAlbum(w http.ResponseWriter, r *http.Request) {
	albumID, err := idParam(r, "albumID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	photoID, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.RemovePhotoFromAlbum(r.Context(), photoID, albumID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Photo removed from album")
}
