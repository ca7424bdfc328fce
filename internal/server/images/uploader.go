// Package images инкапсулирует работу со сторонним image-хостингом.
// Сервер не хранит бинарные данные картинок, только публичные URL.
package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

//go:generate moq -out uploader_moq_test.go . Uploader

// UploadResult содержит результат загрузки картинки на хостинг
type UploadResult struct {
	// URL публичный адрес картинки
	URL string
	// DeleteToken непрозрачный токен для последующего удаления
	DeleteToken string
}

// Uploader defines interface for third-party image hosting
type Uploader interface {
	// Upload sends image bytes to the hosting and returns its public URL
	Upload(ctx context.Context, filename string, data []byte) (*UploadResult, error)

	// Delete removes a previously uploaded image by its delete token.
	// Хостинг может уже не знать токен, это не считается ошибкой.
	Delete(ctx context.Context, deleteToken string) error
}

// HTTPUploader загружает картинки на хостинг через его HTTP API
// (multipart upload, JSON-ответ с url и delete_token).
type HTTPUploader struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPUploader создает новый HTTPUploader
func NewHTTPUploader(logger *slog.Logger, baseURL, apiKey string) *HTTPUploader {
	return &HTTPUploader{
		logger:  logger,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type uploadResponse struct {
	Data struct {
		URL         string `json:"url"`
		DeleteToken string `json:"delete_token"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload sends image bytes to the hosting and returns its public URL
func (u *HTTPUploader) Upload(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := mw.WriteField("key", u.apiKey); err != nil {
		return nil, fmt.Errorf("failed to write api key field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("image hosting returned status %d: %s", resp.StatusCode, string(b))
	}

	var uploadResp uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if !uploadResp.Success || uploadResp.Data.URL == "" {
		return nil, fmt.Errorf("image hosting rejected upload")
	}

	return &UploadResult{
		URL:         uploadResp.Data.URL,
		DeleteToken: uploadResp.Data.DeleteToken,
	}, nil
}

// Delete removes a previously uploaded image by its delete token
func (u *HTTPUploader) Delete(ctx context.Context, deleteToken string) error {
	if deleteToken == "" {
		return nil
	}

	form := url.Values{}
	form.Set("key", u.apiKey)
	form.Set("delete_token", deleteToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		u.baseURL+"/delete", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	defer resp.Body.Close()

	// 404 означает, что хостинг уже забыл токен
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("image hosting returned status %d", resp.StatusCode)
	}

	return nil
}
