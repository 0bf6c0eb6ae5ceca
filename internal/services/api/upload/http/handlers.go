// Package http accepts camera video uploads and serves them back
package http

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"wildwatch/internal/modkit/httpkit"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"

	"github.com/google/uuid"
)

// Config for the upload handlers
type Config struct {
	Dir      string
	MaxBytes int64
}

type handlers struct {
	cfg Config
}

// Register mounts POST /api/upload and the /uploads file server
func Register(r httpkit.Router, cfg Config) {
	h := &handlers{cfg: cfg}

	httpkit.Post(r, "/api/upload", h.upload)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", noListing(http.FileServer(http.Dir(cfg.Dir)))))
}

// File describes a stored upload
type File struct {
	Filename string `json:"filename" example:"6f1c2e0a-7d55-4c1e-9a53-2a0c1b7f9d10-trailcam.mp4"`
	Path     string `json:"path"     example:"uploads/6f1c2e0a-7d55-4c1e-9a53-2a0c1b7f9d10-trailcam.mp4"`
	Size     int64  `json:"size"     example:"1048576"`
}

// UploadResponse wraps the stored file
type UploadResponse struct {
	File File `json:"file"`
}

// @Summary Upload a camera video
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "video file"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} httpkit.Envelope "No video file provided"
// @Router /api/upload [post]
func (h *handlers) upload(r *http.Request) (any, error) {
	if h.cfg.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, h.cfg.MaxBytes)
	}
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, perr.Validationf("No video file provided")
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, perr.Validationf("No video file provided")
		}
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeValidation, "malformed multipart body")
		}
		if part.FormName() != "file" || part.FileName() == "" {
			_ = part.Close()
			continue
		}
		f, err := h.store(part)
		_ = part.Close()
		if err != nil {
			return nil, err
		}
		logger.C(r.Context()).Info().Str("filename", f.Filename).Int64("size", f.Size).Msg("video uploaded")
		return httpkit.Message("Video uploaded successfully", UploadResponse{File: f}), nil
	}
}

func isVideo(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && strings.HasPrefix(mt, "video/")
}

// store writes p to <dir>/<uuid>-<base name>; a failed copy leaves nothing behind
func (h *handlers) store(p *multipart.Part) (File, error) {
	if !isVideo(p.Header.Get("Content-Type")) {
		return File{}, perr.WithField(perr.Validationf("Invalid file type. Only videos are allowed."), "file")
	}
	if err := os.MkdirAll(h.cfg.Dir, 0o755); err != nil {
		return File{}, perr.Wrap(err, perr.ErrorCodeUnknown, "Error uploading video")
	}

	name := uuid.NewString() + "-" + filepath.Base(filepath.Clean("/"+p.FileName()))
	path := filepath.Join(h.cfg.Dir, name)
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return File{}, perr.Wrap(err, perr.ErrorCodeUnknown, "Error uploading video")
	}
	n, err := io.Copy(out, p)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return File{}, perr.WithField(perr.Validationf("file exceeds %d bytes", tooBig.Limit), "file")
		}
		return File{}, perr.Wrap(err, perr.ErrorCodeUnknown, "Error uploading video")
	}
	return File{Filename: name, Path: path, Size: n}, nil
}

// noListing hides directory indexes
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
