package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/AnshRaj112/portfolio-admin/internal/handlers"
	"github.com/AnshRaj112/portfolio-admin/internal/middleware"
	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"github.com/AnshRaj112/portfolio-admin/internal/routes"
	"github.com/AnshRaj112/portfolio-admin/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeHost struct {
	mu      sync.Mutex
	n       int
	deleted []string
}

func (h *fakeHost) Upload(_ context.Context, _ string, file *services.Upload, _ services.HostUploadOptions) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.n++
	return fmt.Sprintf("/uploads/photos/%d-%s", h.n, file.Filename), nil
}

func (h *fakeHost) Delete(_ context.Context, _ string, imagePath string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deleted = append(h.deleted, imagePath)
	return nil
}

type fakeCDN struct {
	mu   sync.Mutex
	n    int
	fail bool
}

func (c *fakeCDN) upload(r io.Reader, kind, folder string) (*services.UploadedAsset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return nil, errors.New("cdn down")
	}
	io.Copy(io.Discard, r)
	c.n++
	id := fmt.Sprintf("%s/asset%d", folder, c.n)
	return &services.UploadedAsset{
		URL:      fmt.Sprintf("https://res.cloudinary.com/demo/%s/upload/v1/%s", kind, id),
		PublicID: id,
	}, nil
}

func (c *fakeCDN) UploadImage(_ context.Context, r io.Reader, folder string, _ services.ImageTransform) (*services.UploadedAsset, error) {
	return c.upload(r, "image", folder)
}

func (c *fakeCDN) UploadVideo(_ context.Context, r io.Reader, folder string, _ services.VideoTransform) (*services.UploadedAsset, error) {
	return c.upload(r, "video", folder)
}

func (c *fakeCDN) Destroy(context.Context, string, string) error { return nil }

// memoryPages is a page cache that both serves lists and receives the
// invalidations of the backoffice, like the Redis one.
type memoryPages struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

func (p *memoryPages) Get(_ context.Context, path string, dest interface{}) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	raw, ok := p.entries[path]
	if !ok {
		return false, nil
	}
	p.hits++
	return true, json.Unmarshal(raw, dest)
}

func (p *memoryPages) Set(_ context.Context, path string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[path] = raw
	return nil
}

func (p *memoryPages) Revalidate(_ context.Context, paths ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, path := range paths {
		delete(p.entries, path)
	}
	return nil
}

func (p *memoryPages) cached(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.entries[path]
	return ok
}

type memorySessions struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
	down   bool
}

func (m *memorySessions) Create(_ context.Context, adminID uuid.UUID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := uuid.NewString()
	m.tokens[token] = adminID
	return token, nil
}

func (m *memorySessions) Validate(_ context.Context, token string) (uuid.UUID, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return uuid.Nil, false, errors.New("redis: connection refused")
	}
	id, ok := m.tokens[token]
	return id, ok, nil
}

func (m *memorySessions) Refresh(context.Context, string) error { return nil }

func (m *memorySessions) Invalidate(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

type memoryLedger struct {
	mu        sync.Mutex
	events    []services.MediaEvent
	lastLimit int
}

func (l *memoryLedger) Record(_ context.Context, ev services.MediaEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

func (l *memoryLedger) RecentFailures(_ context.Context, limit int) ([]services.MediaEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastLimit = limit
	out := []services.MediaEvent{}
	for _, ev := range l.events {
		if ev.Status == "failed" {
			out = append(out, ev)
		}
	}
	return out, nil
}

const (
	adminUser     = "admin"
	adminPassword = "correct horse battery"
)

type env struct {
	t        *testing.T
	router   chi.Router
	db       *gorm.DB
	host     *fakeHost
	cdn      *fakeCDN
	pages    *memoryPages
	ledger   *memoryLedger
	sessions *memorySessions
	token    string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	e := &env{
		t:        t,
		db:       db,
		host:     &fakeHost{},
		cdn:      &fakeCDN{},
		pages:    &memoryPages{entries: map[string][]byte{}},
		ledger:   &memoryLedger{},
		sessions: &memorySessions{tokens: map[string]uuid.UUID{}},
	}

	log := zap.NewNop()
	auth := services.NewAdminAuth(db, e.sessions, log)
	_, err = auth.EnsureAdmin(context.Background(), adminUser, "admin@example.com", adminPassword)
	require.NoError(t, err)

	backoffice := services.NewBackoffice(services.BackofficeDeps{
		DB:        db,
		CDN:       e.cdn,
		Host:      e.host,
		Pages:     e.pages,
		Media:     e.ledger,
		Log:       log,
		PublicDir: t.TempDir(),
	})
	handlers.Init(handlers.Deps{
		Backoffice:     backoffice,
		Auth:           auth,
		Pages:          e.pages,
		Media:          e.ledger,
		Hub:            services.NewRevalidationHub(log),
		Log:            log,
		MaxUploadBytes: 8 << 20,
	})

	r := chi.NewRouter()
	routes.SetupRoutes(r, middleware.RequireAdmin(auth, log))
	e.router = r

	token, _, err := auth.SignIn(context.Background(), adminUser, adminPassword)
	require.NoError(t, err)
	e.token = token
	return e
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	ID      int             `json:"id"`
	Fields  []string        `json:"fields"`
	Data    json.RawMessage `json:"data"`
}

func (e *env) do(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	if e.token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var body envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func (e *env) get(path string) (*httptest.ResponseRecorder, envelope) {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *env) delete(path string) (*httptest.ResponseRecorder, envelope) {
	return e.do(httptest.NewRequest(http.MethodDelete, path, nil))
}

func (e *env) form(method, path string, values url.Values) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

type file struct {
	field, name string
	data        []byte
}

func (e *env) multipart(method, path string, values url.Values, files ...file) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vs := range values {
		for _, v := range vs {
			require.NoError(e.t, mw.WriteField(key, v))
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(e.t, err)
		_, err = part.Write(f.data)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(req)
}

func decodeData(t *testing.T, body envelope, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body.Data, dst), string(body.Data))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func itoa(n int) string { return strconv.Itoa(n) }
