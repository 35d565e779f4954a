package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"
)

// MediaHostClient talks to the upload API exposed by the public portfolio
// site. Every request carries the shared bearer token.
type MediaHostClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewMediaHostClient(baseURL, token string) *MediaHostClient {
	return &MediaHostClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type hostResponse struct {
	ImageURL string `json:"imageUrl"`
	Error    string `json:"error"`
}

// Upload posts file as the "image" part and returns the stored path.
func (c *MediaHostClient) Upload(ctx context.Context, endpoint string, file *Upload, opts HostUploadOptions) (string, error) {
	if !file.Present() {
		return "", ErrNoImages
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, file.Filename))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", err
	}

	fields := opts.fields()
	for _, k := range []string{"type", "destination", "resize", "maxWidth", "optimize", "convertToWebp", "quality"} {
		if v, ok := fields[k]; ok {
			if err := mw.WriteField(k, v); err != nil {
				return "", err
			}
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	out, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	if out.ImageURL == "" {
		return "", errors.New("upload failed: response has no imageUrl")
	}
	return out.ImageURL, nil
}

// Delete asks the host to remove a previously uploaded file.
func (c *MediaHostClient) Delete(ctx context.Context, endpoint, imagePath string) error {
	payload, err := json.Marshal(map[string]string{"imagePath": imagePath})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, raw, err := c.send(req)
	if err != nil {
		return fmt.Errorf("delete %s failed: %w", imagePath, err)
	}
	// any 2xx counts, whatever the body
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	var out hostResponse
	if isJSON(resp) && json.Unmarshal(raw, &out) == nil && out.Error != "" {
		return fmt.Errorf("delete %s failed: %s", imagePath, out.Error)
	}
	return fmt.Errorf("delete %s failed: %s", imagePath, http.StatusText(resp.StatusCode))
}

func (c *MediaHostClient) send(req *http.Request) (*http.Response, []byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, err
	}
	return resp, raw, nil
}

func isJSON(resp *http.Response) bool {
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return mediaType == "application/json"
}

// do sends req and decodes the JSON body the host answers uploads with.
func (c *MediaHostClient) do(req *http.Request) (*hostResponse, error) {
	resp, raw, err := c.send(req)
	if err != nil {
		return nil, err
	}

	if !isJSON(resp) {
		snippet := raw
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, fmt.Errorf("non-JSON response (status %d): %s", resp.StatusCode, snippet)
	}

	var out hostResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if out.Error != "" {
			return nil, errors.New(out.Error)
		}
		return nil, errors.New(http.StatusText(resp.StatusCode))
	}
	return &out, nil
}

func (o HostUploadOptions) fields() map[string]string {
	f := map[string]string{}
	if o.Type != "" {
		f["type"] = o.Type
	}
	if o.Destination != "" {
		f["destination"] = o.Destination
	}
	if o.Resize {
		f["resize"] = "true"
	}
	if o.MaxWidth > 0 {
		f["maxWidth"] = strconv.Itoa(o.MaxWidth)
	}
	if o.Optimize {
		f["optimize"] = "true"
	}
	if o.ConvertToWebp {
		f["convertToWebp"] = "true"
	}
	if o.Quality > 0 {
		f["quality"] = strconv.Itoa(o.Quality)
	}
	return f
}
