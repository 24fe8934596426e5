package view

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"

	"github.com/ymatsuda/trackboard/internal/api"
	"github.com/ymatsuda/trackboard/internal/notify"
)

// Upload screen-time widget states.
const (
	UploadPlaceholder = "placeholder"
	UploadPreview     = "preview"
	UploadResult      = "result"
)

const maxScreenshotBytes = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/heic": true,
	"image/heif": true,
	"image/webp": true,
}

// Upload is the screenshot widget's state for one date. It moves
// placeholder -> preview -> result; reset returns it to placeholder
// from anywhere.
type Upload struct {
	Date           string
	State          string
	Filename       string
	PreviewDataURL template.URL
	Result         *api.ScreenTime
	data           []byte
}

// snapshot copies the fields the template reads.
func (u *Upload) snapshot() *Upload {
	c := *u
	c.data = nil
	return &c
}

// uploadLocked returns the widget state for a date, creating it on
// first use. Caller holds s.mu.
func (s *Shell) uploadLocked(date string) *Upload {
	u, ok := s.uploads[date]
	if !ok {
		u = &Upload{Date: date, State: UploadPlaceholder}
		s.uploads[date] = u
	}
	return u
}

// PreviewScreenshot validates a picked image and moves the widget to
// the preview state. Rejections toast and leave the state untouched.
func (s *Shell) PreviewScreenshot(date, filename, contentType string, data []byte) {
	if len(data) == 0 {
		s.notes.Notify(notify.LevelError, "Pick an image first.")
		return
	}
	if len(data) > maxScreenshotBytes {
		s.notes.Notify(notify.LevelError, "That image is over 10MB. Pick a smaller one.")
		return
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !allowedImageTypes[contentType] {
		s.notes.Notify(notify.LevelError, fmt.Sprintf("Unsupported image type %s.", contentType))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.uploadLocked(date)
	u.State = UploadPreview
	u.Filename = filename
	u.data = data
	u.Result = nil
	u.PreviewDataURL = template.URL("data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// UploadScreenshot sends the previewed image for extraction. On success
// the widget shows the per-app breakdown; on failure the preview stays
// so the user can retry.
func (s *Shell) UploadScreenshot(ctx context.Context, date string) {
	s.mu.Lock()
	u := s.uploadLocked(date)
	filename := u.Filename
	data := u.data
	s.mu.Unlock()

	if len(data) == 0 {
		s.notes.Notify(notify.LevelError, "Pick an image first.")
		return
	}

	s.notes.Notify(notify.LevelInfo, "Extracting screen time. This can take a moment...")
	st, err := s.api.UploadScreenshot(ctx, date, filename, bytes.NewReader(data))
	if err != nil {
		s.notes.Notify(notify.LevelError, err.Error())
		return
	}

	s.mu.Lock()
	u = s.uploadLocked(date)
	u.State = UploadResult
	u.Result = st
	u.data = nil
	u.PreviewDataURL = ""
	s.mu.Unlock()
	s.notes.Notify(notify.LevelSuccess, "Screen time extracted.")
}

// ResetScreenshot returns the widget to the empty picker.
func (s *Shell) ResetScreenshot(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[date] = &Upload{Date: date, State: UploadPlaceholder}
}
