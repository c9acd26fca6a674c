// Package blobstore talks to the external file storage collaborator.
// Files are opaque {id, url} pairs once uploaded; the service never
// reads them back.
package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/AlexRizo/flowee-bodesa-backend/config"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the blob storage contract the lifecycle manager depends on.
// Delete failures are logged by callers, never escalated.
type Store interface {
	Upload(ctx context.Context, data []byte, nameHint string) (entities.FileRef, error)
	Delete(ctx context.Context, fileID string) error
}

// Client is an HTTP client for the blob storage API.
type Client struct {
	log    *zap.SugaredLogger
	http   *http.Client
	cfg    config.BlobstoreConfig
}

// NewClient builds a blob store client from configuration.
func NewClient(log *zap.SugaredLogger, cfg config.BlobstoreConfig) *Client {
	return &Client{
		log: log.Named("blobstore"),
		http: &http.Client{
			Timeout: cfg.UploadTimeout,
		},
		cfg: cfg,
	}
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// Upload sends the file to the store and returns its reference. The
// stored name is derived from nameHint plus a short unique suffix so
// repeated uploads of the same file never collide.
func (c *Client) Upload(ctx context.Context, data []byte, nameHint string) (entities.FileRef, error) {
	publicID := Slugify(nameHint) + "-" + uuid.NewString()[:6]

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("folder", c.cfg.Folder); err != nil {
		return entities.FileRef{}, fmt.Errorf("write folder field: %w", err)
	}
	if err := mw.WriteField("public_id", publicID); err != nil {
		return entities.FileRef{}, fmt.Errorf("write public_id field: %w", err)
	}
	fw, err := mw.CreateFormFile("file", publicID)
	if err != nil {
		return entities.FileRef{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return entities.FileRef{}, fmt.Errorf("write file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return entities.FileRef{}, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/upload", &body)
	if err != nil {
		return entities.FileRef{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return entities.FileRef{}, fmt.Errorf("%w: upload: %v", entities.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return entities.FileRef{}, fmt.Errorf("%w: upload status %d", entities.ErrUpstream, resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return entities.FileRef{}, fmt.Errorf("%w: decode upload response: %v", entities.ErrUpstream, err)
	}

	c.log.Infow("file uploaded", "file_id", out.PublicID)
	return entities.FileRef{ID: out.PublicID, URL: out.SecureURL}, nil
}

// Delete removes a previously uploaded file.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.cfg.BaseURL+"/files/"+fileID, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: delete: %v", entities.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: delete status %d", entities.ErrUpstream, resp.StatusCode)
	}
	return nil
}

// Slugify lowers the name and collapses anything outside [a-z0-9] into
// single hyphens, mirroring how stored file names are normalized.
func Slugify(name string) string {
	if dot := strings.LastIndexByte(name, '.'); dot > 0 {
		name = name[:dot]
	}
	name = strings.ToLower(name)

	var b strings.Builder
	lastHyphen := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
