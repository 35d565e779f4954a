package handlers

import (
	"net/http"

	"github.com/AnshRaj112/portfolio-admin/internal/services"
)

type videoForm struct {
	Title       string   `schema:"title" validate:"required,max=255"`
	Description string   `schema:"description"`
	URL         string   `schema:"url" validate:"required,url"`
	Duration    string   `schema:"duree" validate:"max=32"`
	Date        string   `schema:"date"`
	Published   bool     `schema:"isPublished"`
	Tags        []string `schema:"tags"`
}

type autreForm struct {
	Title       string   `schema:"title" validate:"required,max=255"`
	Description string   `schema:"description"`
	GithubURL   string   `schema:"lien_github" validate:"omitempty,url"`
	FigmaURL    string   `schema:"lien_figma" validate:"omitempty,url"`
	SiteURL     string   `schema:"lien_site" validate:"omitempty,url"`
	Categorie   string   `schema:"categorie"`
	Date        string   `schema:"date"`
	Published   bool     `schema:"isPublished"`
	Tags        []string `schema:"tags"`
}

func readVideoInput(w http.ResponseWriter, r *http.Request) (services.VideoInput, error) {
	var form videoForm
	if err := decodeForm(w, r, &form); err != nil {
		return services.VideoInput{}, err
	}
	date, err := formDate(form.Date)
	if err != nil {
		return services.VideoInput{}, err
	}
	return services.VideoInput{
		Title:       form.Title,
		Description: form.Description,
		URL:         form.URL,
		Duration:    form.Duration,
		Date:        date,
		Published:   form.Published,
		Tags:        form.Tags,
	}, nil
}

func readAutreInput(w http.ResponseWriter, r *http.Request) (services.AutreInput, error) {
	var form autreForm
	if err := decodeForm(w, r, &form); err != nil {
		return services.AutreInput{}, err
	}
	thumb, err := formFile(r, "miniature")
	if err != nil {
		return services.AutreInput{}, err
	}
	return services.AutreInput{
		Title:       form.Title,
		Description: form.Description,
		GithubURL:   form.GithubURL,
		FigmaURL:    form.FigmaURL,
		SiteURL:     form.SiteURL,
		Categorie:   form.Categorie,
		Date:        form.Date,
		Published:   form.Published,
		Thumbnail:   thumb,
		Tags:        form.Tags,
	}, nil
}

// ListVideos handles GET /api/videos
func ListVideos(w http.ResponseWriter, r *http.Request) {
	cachedList(w, r, "/creations/videos", backoffice.ListVideos)
}

// GetVideo handles GET /api/videos/{id}
func GetVideo(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	video, err := backoffice.GetVideo(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, video)
}

// AddVideo handles POST /api/videos
func AddVideo(w http.ResponseWriter, r *http.Request) {
	in, err := readVideoInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := backoffice.AddVideo(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, id, "Video added")
}

// UpdateVideo handles PUT /api/videos/{id}
func UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := readVideoInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.UpdateVideo(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Video updated")
}

// DeleteVideo handles DELETE /api/videos/{id}
func DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.DeleteVideo(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Video deleted")
}

// ListAutres handles GET /api/autres
func ListAutres(w http.ResponseWriter, r *http.Request) {
	cachedList(w, r, "/creations/autres", backoffice.ListAutres)
}

// GetAutre handles GET /api/autres/{id}
func GetAutre(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	autre, err := backoffice.GetAutre(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, autre)
}

// AddAutre handles POST /api/autres
func AddAutre(w http.ResponseWriter, r *http.Request) {
	in, err := readAutreInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := backoffice.AddAutre(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, id, "Project added")
}

// UpdateAutre handles PUT /api/autres/{id}
func UpdateAutre(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := readAutreInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.UpdateAutre(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Project updated")
}

// DeleteAutre handles DELETE /api/autres/{id}
func DeleteAutre(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.DeleteAutre(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Project deleted")
}
