package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag(t *testing.T) {
	e := newEnv(t)

	rec, body := e.form(http.MethodPost, "/api/tags/videos", url.Values{"title": {" Nature "}, "important": {"on"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, body.Success)
	require.Positive(t, body.ID)

	var tag models.Tag
	require.NoError(t, e.db.Table("videos_tags").Where("id_tags = ?", body.ID).Take(&tag).Error)
	assert.Equal(t, "Nature", tag.Titre)
	assert.True(t, tag.Important)

	rec, dup := e.form(http.MethodPost, "/api/tags/videos", url.Values{"title": {"Nature"}})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, dup.Success)
	assert.Equal(t, body.ID, dup.ID)

	rec, invalid := e.form(http.MethodPost, "/api/tags/videos", url.Values{"title": {""}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"title"}, invalid.Fields)
}

func TestTagKindMustExist(t *testing.T) {
	e := newEnv(t)

	rec, body := e.get("/api/tags/music")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Unknown tag kind", body.Error)
}

func TestUpdateTagKeepsImportantWhenOmitted(t *testing.T) {
	e := newEnv(t)

	_, created := e.form(http.MethodPost, "/api/tags/photos", url.Values{"title": {"Portrait"}, "important": {"true"}})
	require.Positive(t, created.ID)
	path := "/api/tags/photos/" + itoa(created.ID)

	rec, _ := e.form(http.MethodPut, path, url.Values{"title": {"Portraits"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tag models.Tag
	require.NoError(t, e.db.Table("photos_tags").Where("id_tags = ?", created.ID).Take(&tag).Error)
	assert.Equal(t, "Portraits", tag.Titre)
	assert.True(t, tag.Important)

	rec, _ = e.form(http.MethodPut, "/api/tags/photos/999", url.Values{"title": {"Ghost"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = e.form(http.MethodPut, "/api/tags/photos/abc", url.Values{"title": {"Ghost"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndDeleteTags(t *testing.T) {
	e := newEnv(t)

	_, created := e.form(http.MethodPost, "/api/tags/autres", url.Values{"title": {"Web"}})
	require.Positive(t, created.ID)

	rec, body := e.get("/api/tags/autres")
	require.Equal(t, http.StatusOK, rec.Code)
	var tags []struct {
		ID    int    `json:"id_tags"`
		Titre string `json:"titre"`
		Usage int64  `json:"usage"`
	}
	decodeData(t, body, &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, "Web", tags[0].Titre)
	assert.Zero(t, tags[0].Usage)

	rec, _ = e.delete("/api/tags/autres/" + itoa(created.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = e.delete("/api/tags/autres/" + itoa(created.ID))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tags/videos", nil)
	req.Header.Set("Authorization", "Bearer not-a-session")
	rec, body := e.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid session token", body.Error)

	e.token = ""
	rec, body = e.get("/api/tags/videos")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing session token", body.Error)
}
