package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaHostUploadSendsImageAndOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, HostPhotosEndpoint, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, fh, err := r.FormFile("image")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "pixels", string(data))
		assert.Equal(t, "a.png", fh.Filename)
		assert.Equal(t, "low", r.FormValue("type"))
		assert.Equal(t, "uploads/photos", r.FormValue("destination"))
		assert.Equal(t, "true", r.FormValue("resize"))
		assert.Equal(t, "800", r.FormValue("maxWidth"))
		assert.Equal(t, "true", r.FormValue("convertToWebp"))
		assert.Equal(t, "70", r.FormValue("quality"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"imageUrl": "/uploads/photos/a.webp"})
	}))
	defer srv.Close()

	c := NewMediaHostClient(srv.URL, "tok")
	opts := LowResOptions("image/png")
	opts.Type = "low"
	opts.Destination = "uploads/photos"

	got, err := c.Upload(context.Background(), HostPhotosEndpoint, &Upload{Filename: "a.png", ContentType: "image/png", Data: []byte("pixels")}, opts)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/photos/a.webp", got)
}

func TestMediaHostUploadErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "non json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte("<html>bad gateway</html>"))
			},
			wantErr: "non-JSON response",
		},
		{
			name: "error field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid token"}`))
			},
			wantErr: "invalid token",
		},
		{
			name: "missing url",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{}`))
			},
			wantErr: "no imageUrl",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewMediaHostClient(srv.URL, "tok")
			_, err := c.Upload(context.Background(), HostAutresEndpoint, &Upload{Filename: "x.jpg", Data: []byte("x")}, HostUploadOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMediaHostUploadRequiresFile(t *testing.T) {
	c := NewMediaHostClient("http://unused", "tok")
	_, err := c.Upload(context.Background(), HostAutresEndpoint, &Upload{}, HostUploadOptions{})
	assert.ErrorIs(t, err, ErrNoImages)
}

func TestMediaHostDeleteSendsImagePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "/uploads/autres/a.webp", body["imagePath"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewMediaHostClient(srv.URL, "tok")
	require.NoError(t, c.Delete(context.Background(), HostAutresEndpoint, "/uploads/autres/a.webp"))
}

func TestMediaHostDeleteResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "no content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
		},
		{
			name: "plain text ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.Write([]byte("deleted"))
			},
		},
		{
			name: "json error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error":"file not found"}`))
			},
			wantErr: "file not found",
		},
		{
			name: "html error page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("<html>bad gateway</html>"))
			},
			wantErr: "Bad Gateway",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			err := NewMediaHostClient(srv.URL, "tok").Delete(context.Background(), HostPhotosEndpoint, "/uploads/photos/a.jpg")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLowResOptions(t *testing.T) {
	webp := LowResOptions("image/webp")
	assert.Equal(t, 75, webp.Quality)
	assert.False(t, webp.ConvertToWebp)
	assert.True(t, webp.Resize)
	assert.Equal(t, 800, webp.MaxWidth)

	jpeg := LowResOptions("image/jpeg")
	assert.Equal(t, 70, jpeg.Quality)
	assert.True(t, jpeg.ConvertToWebp)
	assert.True(t, jpeg.Optimize)
}
