// Package catbox uploads files to the catbox.moe hosting API.
package catbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Darkatse/SimiluBot/pkg/retrylimit"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	apiURL = "https://catbox.moe/user/api.php"

	// MaxFileSize is catbox's upload cap.
	MaxFileSize int64 = 200 * 1024 * 1024
)

type httpStatusError struct {
	code int
	body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("catbox returned status %d: %s", e.code, e.body)
}
func (e *httpStatusError) StatusCode() int { return e.code }

type Uploader struct {
	UserHash string
	APIURL   string
	client   *http.Client
	limiter  *retrylimit.AdaptiveLimiter
}

// NewUploader builds an uploader. userHash may be empty for anonymous
// uploads (required for deletes).
func NewUploader(userHash string) *Uploader {
	return &Uploader{
		UserHash: userHash,
		APIURL:   apiURL,
		client: &http.Client{
			Timeout: 5 * time.Minute, // large files take a while
		},
		limiter: retrylimit.NewAdaptiveLimiter(rate.Limit(1), rate.Limit(0.2), rate.Limit(2), 0.1, 0.5),
	}
}

// Upload sends the file to catbox and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, filePath string) (string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return "", fmt.Errorf("stat upload file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("file is %d MB, catbox limit is %d MB",
			info.Size()/(1024*1024), MaxFileSize/(1024*1024))
	}

	var fileURL string
	err = retrylimit.WithRetryMax(ctx, func() error {
		url, err := u.uploadOnce(ctx, filePath)
		if err != nil {
			return err
		}
		fileURL = url
		return nil
	}, u.limiter, 3)
	if err != nil {
		return "", err
	}

	log.Info().Str("file", filepath.Base(filePath)).Str("url", fileURL).Msg("uploaded to catbox")
	return fileURL, nil
}

func (u *Uploader) uploadOnce(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", &retrylimit.FatalError{Err: err}
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("reqtype", "fileupload"); err != nil {
		return "", err
	}
	if u.UserHash != "" {
		if err := writer.WriteField("userhash", u.UserHash); err != nil {
			return "", err
		}
	}

	part, err := writer.CreateFormFile("fileToUpload", filepath.Base(filePath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.APIURL, &body)
	if err != nil {
		return "", &retrylimit.FatalError{Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", &httpStatusError{code: resp.StatusCode, body: strings.TrimSpace(string(respBody))}
	}

	fileURL := strings.TrimSpace(string(respBody))
	if !strings.HasPrefix(fileURL, "http") {
		return "", fmt.Errorf("unexpected catbox response: %s", fileURL)
	}
	return fileURL, nil
}

// Delete removes previously uploaded files by name. Requires a userhash.
func (u *Uploader) Delete(ctx context.Context, fileNames ...string) error {
	if u.UserHash == "" {
		return fmt.Errorf("deleting requires a catbox userhash")
	}
	if len(fileNames) == 0 {
		return nil
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("reqtype", "deletefiles")
	writer.WriteField("userhash", u.UserHash)
	writer.WriteField("files", strings.Join(fileNames, " "))
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.APIURL, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &httpStatusError{code: resp.StatusCode, body: strings.TrimSpace(string(respBody))}
	}
	return nil
}
