package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"choreboard/internal/domain"
)

const uploadField = "image"

type uploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// stores one image under a random name and returns its public url
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request, user *domain.User) {
	if s.uploadDir == "" {
		s.writeError(w, r, errors.New("uploads are not configured"))
		return
	}

	// leave room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize+1<<20)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, badRequest("file is too large"))
			return
		}
		s.writeError(w, r, badRequest("no file in field \"image\""))
		return
	}
	defer file.Close()

	if header.Size > s.maxUploadSize {
		s.writeError(w, r, badRequest("file is too large"))
		return
	}

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		s.writeError(w, r, badRequest("only image files are allowed"))
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		s.writeError(w, r, fmt.Errorf("failed to create upload directory: %w", err))
		return
	}

	filename := "image-" + uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	if err := storeFile(filepath.Join(s.uploadDir, filename), file); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info().Str("file", filename).Int64("size", header.Size).Int64("user_id", user.ID).Msg("image uploaded")

	writeJSON(w, http.StatusOK, uploadResponse{
		URL:      strings.TrimSuffix(s.publicUploadURL, "/") + "/" + filename,
		Filename: filename,
	})
}

// writes src to path; a partly written file is removed on failure
func storeFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create upload file: %w", err)
	}

	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to store upload: %w", err)
	}

	return nil
}
