package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/AnshRaj112/portfolio-admin/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	formDecoder = newFormDecoder()
	validate    = validator.New()
)

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	// HTML checkboxes submit "on"
	d.RegisterConverter(false, func(s string) reflect.Value {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "on", "true", "1", "yes":
			return reflect.ValueOf(true)
		}
		return reflect.ValueOf(false)
	})
	return d
}

// parseForm accepts multipart and urlencoded bodies up to maxUploadBytes.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(32 << 20)
	}
	return r.ParseForm()
}

// decodeForm parses the request and fills dst from its form values, then
// runs the validate tags of dst.
func decodeForm(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := parseForm(w, r); err != nil {
		return &services.ValidationError{Msg: "invalid form: " + err.Error()}
	}
	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		return &services.ValidationError{Msg: "invalid form: " + err.Error()}
	}
	return validateForm(dst)
}

func validateForm(dst interface{}) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, formName(dst, fe.StructField()))
	}
	return &services.ValidationError{Fields: fields, Msg: "invalid fields: " + strings.Join(fields, ", ")}
}

// formName returns the schema tag of field so errors name the form input.
func formName(dst interface{}, field string) string {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(field); ok {
		if tag := strings.Split(f.Tag.Get("schema"), ",")[0]; tag != "" {
			return tag
		}
	}
	return field
}

// formFile reads an optional file input. An absent or empty input gives nil.
func formFile(r *http.Request, field string) (*services.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	return readUpload(headers[0])
}

func readUpload(fh *multipart.FileHeader) (*services.Upload, error) {
	if fh.Size == 0 {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return &services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// formDate parses an optional YYYY-MM-DD or RFC 3339 value.
func formDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, &services.ValidationError{Fields: []string{"date"}, Msg: "invalid date: " + s}
}
