package handlers

import (
	"net/http"

	"github.com/AnshRaj112/portfolio-admin/internal/services"
)

type albumForm struct {
	Title       string `schema:"title" validate:"required,max=255"`
	Description string `schema:"description"`
	Date        string `schema:"date"`
	Published   bool   `schema:"isPublished"`
	TagIDs      []int  `schema:"tags"`
	PhotoIDs    []int  `schema:"images"`
}

func readAlbumInput(w http.ResponseWriter, r *http.Request) (services.AlbumInput, error) {
	var form albumForm
	if err := decodeForm(w, r, &form); err != nil {
		return services.AlbumInput{}, err
	}
	date, err := formDate(form.Date)
	if err != nil {
		return services.AlbumInput{}, err
	}
	return services.AlbumInput{
		Title:       form.Title,
		Description: form.Description,
		Date:        date,
		Published:   form.Published,
		TagIDs:      form.TagIDs,
		PhotoIDs:    form.PhotoIDs,
	}, nil
}

// ListAlbums handles GET /api/albums
func ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := backoffice.ListAlbums(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, albums)
}

// GetAlbum handles GET /api/albums/{id}
func GetAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	album, err := backoffice.GetAlbum(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, album)
}

// CreateAlbum handles POST /api/albums
func CreateAlbum(w http.ResponseWriter, r *http.Request) {
	in, err := readAlbumInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := backoffice.CreateAlbum(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, id, "Album created")
}

// UpdateAlbum handles PUT /api/albums/{id}
func UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := readAlbumInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.UpdateAlbum(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Album updated")
}

// DeleteAlbum handles DELETE /api/albums/{id}
func DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.DeleteAlbum(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Album deleted")
}
