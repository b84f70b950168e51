// Package media uploads product images to the configured image host and
// returns the hosted URL plus the public ID used for later deletes.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	apperrors "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/errors"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/remote"
)

// MaxImageSize caps the decoded image payload at 5 MiB.
const MaxImageSize = 5 << 20

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Upload is the hosted image returned by the image host.
type Upload struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// Uploader pushes images to the remote image host.
type Uploader struct {
	uploadURL string
	folder    string
	client    remote.Doer
	logger    *slog.Logger
}

// NewUploader creates an Uploader posting to uploadURL, placing assets
// under folder.
func NewUploader(uploadURL, folder string, client remote.Doer, logger *slog.Logger) *Uploader {
	return &Uploader{
		uploadURL: uploadURL,
		folder:    folder,
		client:    client,
		logger:    logger,
	}
}

type uploadRequest struct {
	File   string `json:"file"`
	Folder string `json:"folder,omitempty"`
}

// UploadImage validates and base64-encodes data, posts it as a data URI
// and returns the hosted result.
func (u *Uploader) UploadImage(ctx context.Context, data []byte, contentType string) (*Upload, error) {
	if len(data) == 0 {
		return nil, apperrors.InvalidInput("image payload is empty")
	}
	if len(data) > MaxImageSize {
		return nil, apperrors.InvalidInput(fmt.Sprintf("image payload exceeds %d bytes", MaxImageSize))
	}
	if !allowedContentTypes[contentType] {
		return nil, apperrors.InvalidInput(fmt.Sprintf("content type %q is not allowed", contentType))
	}

	payload := uploadRequest{
		File:   fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)),
		Folder: u.folder,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal upload payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("upload image: status %d: %s", resp.StatusCode, raw)
	}

	var result Upload
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if result.URL == "" {
		return nil, fmt.Errorf("upload response missing secure_url")
	}

	u.logger.InfoContext(ctx, "image uploaded",
		slog.String("public_id", result.PublicID),
		slog.Int("size", len(data)),
	)
	return &result, nil
}
