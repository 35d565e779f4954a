package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/AnshRaj112/portfolio-admin/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PageStore caches list payloads by page path.
type PageStore interface {
	Get(ctx context.Context, path string, dest interface{}) (bool, error)
	Set(ctx context.Context, path string, value interface{}) error
}

// Deps are the collaborators shared by every handler. Pages and Hub may be
// nil: lists are then served uncached and the websocket feed is disabled.
type Deps struct {
	Backoffice     *services.Backoffice
	Auth           *services.AdminAuth
	Pages          PageStore
	Hub            *services.RevalidationHub
	Media          services.MediaRecorder
	Log            *zap.Logger
	MaxUploadBytes int64
}

var (
	backoffice     *services.Backoffice
	adminAuth      *services.AdminAuth
	pageStore      PageStore
	revalidations  *services.RevalidationHub
	mediaLedger    services.MediaRecorder
	logger         = zap.NewNop()
	maxUploadBytes int64 = 100 << 20
)

// Init wires the handlers. It must run before the router serves requests.
func Init(d Deps) {
	backoffice = d.Backoffice
	adminAuth = d.Auth
	pageStore = d.Pages
	revalidations = d.Hub
	mediaLedger = d.Media
	if mediaLedger == nil {
		mediaLedger = services.NopMediaLog{}
	}
	if d.Log != nil {
		logger = d.Log
	}
	if d.MaxUploadBytes > 0 {
		maxUploadBytes = d.MaxUploadBytes
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	ID      int         `json:"id,omitempty"`
	Fields  []string    `json:"fields,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: true, Message: msg})
}

func writeCreated(w http.ResponseWriter, id int, msg string) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: msg, ID: id})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: false, Error: msg})
}

// errorResponse maps service errors to a status and the failure envelope.
func errorResponse(r *http.Request, err error) (int, Response) {
	var verr *services.ValidationError
	var dup *services.DuplicateTagError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, Response{Error: verr.Error(), Fields: verr.Fields}
	case errors.As(err, &dup):
		return http.StatusConflict, Response{Error: dup.Error(), ID: dup.ID}
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, Response{Error: "Not found"}
	case errors.Is(err, services.ErrNotInAlbum):
		return http.StatusNotFound, Response{Error: err.Error()}
	case errors.Is(err, services.ErrInvalidID), errors.Is(err, services.ErrNoImages):
		return http.StatusBadRequest, Response{Error: err.Error()}
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, Response{Error: "Invalid username or password"}
	case errors.Is(err, services.ErrMediaUnavailable):
		return http.StatusServiceUnavailable, Response{Error: err.Error()}
	}
	logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	return http.StatusInternalServerError, Response{Error: err.Error()}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := errorResponse(r, err)
	writeJSON(w, status, resp)
}

// writeMessageError is writeError for the settings pages, whose UI reads
// failures from message.
func writeMessageError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := errorResponse(r, err)
	resp.Message, resp.Error = resp.Error, ""
	writeJSON(w, status, resp)
}

// idParam reads a positive integer URL parameter.
func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, services.ErrInvalidID
	}
	return id, nil
}

// cachedList serves path from the page cache, loading and storing it on a
// miss. Cache errors are logged and the list is served from the database.
func cachedList[T any](w http.ResponseWriter, r *http.Request, path string, load func(context.Context) (T, error)) {
	ctx := r.Context()
	if pageStore != nil {
		var cached T
		hit, err := pageStore.Get(ctx, path, &cached)
		if err != nil {
			logger.Warn("page cache read failed", zap.String("path", path), zap.Error(err))
		}
		if hit {
			writeData(w, cached)
			return
		}
	}

	data, err := load(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if pageStore != nil {
		if err := pageStore.Set(ctx, path, data); err != nil {
			logger.Warn("page cache write failed", zap.String("path", path), zap.Error(err))
		}
	}
	writeData(w, data)
}
