package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemoignageLifecycle(t *testing.T) {
	e := newEnv(t)

	rec, body := e.form(http.MethodPost, "/api/temoignages", url.Values{"plateforme": {"Malt"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"client", "contenu"}, body.Fields)

	rec, created := e.form(http.MethodPost, "/api/temoignages", url.Values{
		"client":   {"Ana"},
		"contenu":  {"**Great** work"},
		"afficher": {"on"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, list := e.get("/api/temoignages")
	require.Equal(t, http.StatusOK, rec.Code)
	var tems []models.Temoignage
	decodeData(t, list, &tems)
	require.Len(t, tems, 1)
	assert.Nil(t, tems[0].Date)
	assert.True(t, tems[0].Afficher)
	assert.True(t, e.pages.cached("/accueil/temoignages"))

	rec, _ = e.form(http.MethodPut, "/api/temoignages/"+itoa(created.ID), url.Values{
		"client":  {"Ana"},
		"contenu": {"Updated"},
		"date":    {"2024-02-02"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, e.pages.cached("/accueil/temoignages"))

	_, got := e.get("/api/temoignages/" + itoa(created.ID))
	var tem models.Temoignage
	decodeData(t, got, &tem)
	assert.Equal(t, "Updated", tem.Contenu)
	require.NotNil(t, tem.Date)
	assert.Equal(t, "2024-02-02", *tem.Date)
	assert.False(t, tem.Afficher)

	rec, _ = e.delete("/api/temoignages/" + itoa(created.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = e.delete("/api/temoignages/" + itoa(created.ID))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJournalEntry(t *testing.T) {
	e := newEnv(t)

	rec, body := e.form(http.MethodPost, "/api/journal", url.Values{"titre": {"Trip"}, "media_type": {"video"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"media_type"}, body.Fields)

	rec, created := e.multipart(http.MethodPost, "/api/journal",
		url.Values{"titre": {"Trip"}, "media_type": {"image"}, "poste_actuel": {"on"}},
		file{field: "image", name: "trip.png", data: pngBytes(t, 5, 5)},
	)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	_, got := e.get("/api/journal/" + itoa(created.ID))
	var entry models.Experience
	decodeData(t, got, &entry)
	assert.Equal(t, "/uploads/photos/1-trip.png", entry.URLImg)
	assert.Equal(t, "personnel", entry.Categorie)
	assert.Equal(t, "centre", entry.PositionImg)
	assert.Equal(t, "left", entry.Position)
	assert.Equal(t, 1, entry.PosteActuel)

	rec, _ = e.form(http.MethodPut, "/api/journal/"+itoa(created.ID), url.Values{
		"titre":      {"Trip"},
		"media_type": {"youtube"},
		"url_img":    {"https://youtu.be/abc"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, got = e.get("/api/journal/" + itoa(created.ID))
	decodeData(t, got, &entry)
	assert.Equal(t, "https://youtu.be/abc", entry.URLImg)

	rec, _ = e.delete("/api/journal/" + itoa(created.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccueilGeneral(t *testing.T) {
	e := newEnv(t)

	rec, body := e.get("/api/accueil/general")
	require.Equal(t, http.StatusOK, rec.Code)
	var gen models.AccueilGeneral
	decodeData(t, body, &gen)
	assert.Empty(t, gen.Photo)

	rec, _ = e.multipart(http.MethodPut, "/api/accueil/general",
		url.Values{"credit_nom": {"Studio"}, "credit_url": {"https://studio.example.com"}},
		file{field: "photo", name: "hero.png", data: pngBytes(t, 6, 4)},
		file{field: "video_mobile", name: "hero.mp4", data: []byte("mp4")},
	)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	_, body = e.get("/api/accueil/general")
	decodeData(t, body, &gen)
	assert.Equal(t, "Studio", gen.CreditNom)
	assert.True(t, strings.HasPrefix(gen.Photo, "https://res.cloudinary.com/demo/image/upload/"), gen.Photo)
	assert.True(t, strings.HasPrefix(gen.VideoMobile, "https://res.cloudinary.com/demo/video/upload/"), gen.VideoMobile)
	assert.Empty(t, gen.VideoDesktop)
}

func TestAccueilGeneralUploadFailure(t *testing.T) {
	e := newEnv(t)
	e.cdn.fail = true

	rec, body := e.multipart(http.MethodPut, "/api/accueil/general",
		url.Values{"credit_nom": {"Studio"}},
		file{field: "photo", name: "hero.png", data: pngBytes(t, 2, 2)},
	)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "photo")
	assert.Empty(t, body.Error)

	var count int64
	require.NoError(t, e.db.Model(&models.AccueilGeneral{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAProposValidationUsesMessage(t *testing.T) {
	e := newEnv(t)

	rec, body := e.form(http.MethodPut, "/api/a-propos/general", url.Values{"credit_url": {"nope"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"credit_url"}, body.Fields)
	assert.NotEmpty(t, body.Message)
	assert.Empty(t, body.Error)
}

func TestOutilsOrdering(t *testing.T) {
	e := newEnv(t)

	for _, v := range []url.Values{
		{"titre": {"Lightroom"}, "ordre": {"2"}},
		{"titre": {"Figma"}, "ordre": {"1"}},
		{"titre": {"Blender"}, "ordre": {"2"}},
	} {
		rec, _ := e.form(http.MethodPost, "/api/a-propos/outils", v)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec, body := e.get("/api/a-propos/outils")
	require.Equal(t, http.StatusOK, rec.Code)
	var outils []models.Outil
	decodeData(t, body, &outils)
	require.Len(t, outils, 3)
	assert.Equal(t, []string{"Figma", "Blender", "Lightroom"}, []string{outils[0].Titre, outils[1].Titre, outils[2].Titre})

	rec, invalid := e.form(http.MethodPost, "/api/a-propos/outils", url.Values{"titre": {"X"}, "ordre": {"-1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"ordre"}, invalid.Fields)
}
