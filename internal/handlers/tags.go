package handlers

import (
	"net/http"

	"github.com/AnshRaj112/portfolio-admin/internal/services"
	"github.com/go-chi/chi/v5"
)

type tagForm struct {
	Title     string `schema:"title" validate:"required,max=255"`
	Important *bool  `schema:"important"`
}

func tagKindParam(w http.ResponseWriter, r *http.Request) (services.TagKind, bool) {
	kind, ok := services.TagKindByName(chi.URLParam(r, "kind"))
	if !ok {
		writeFail(w, http.StatusNotFound, "Unknown tag kind")
	}
	return kind, ok
}

// ListTags handles GET /api/tags/{kind}
func ListTags(w http.ResponseWriter, r *http.Request) {
	kind, ok := tagKindParam(w, r)
	if !ok {
		return
	}
	// usage counts move with every item save, so tag lists are not cached
	tags, err := backoffice.ListTags(r.Context(), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, tags)
}

// CreateTag handles POST /api/tags/{kind}
func CreateTag(w http.ResponseWriter, r *http.Request) {
	kind, ok := tagKindParam(w, r)
	if !ok {
		return
	}
	var form tagForm
	if err := decodeForm(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}

	important := form.Important != nil && *form.Important
	tag, err := backoffice.CreateTag(r.Context(), kind, form.Title, important)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: "Tag created", ID: tag.ID, Data: tag})
}

// UpdateTag handles PUT /api/tags/{kind}/{id}
func UpdateTag(w http.ResponseWriter, r *http.Request) {
	kind, ok := tagKindParam(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var form tagForm
	if err := decodeForm(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}

	if err := backoffice.UpdateTag(r.Context(), kind, id, form.Title, form.Important); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Tag updated")
}

// DeleteTag handles DELETE /api/tags/{kind}/{id}
func DeleteTag(w http.ResponseWriter, r *http.Request) {
	kind, ok := tagKindParam(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := backoffice.DeleteTag(r.Context(), kind, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Tag deleted")
}
