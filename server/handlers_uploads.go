package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

const maxUploadSize = 5 << 20

var imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

type upload struct {
	contentType string
	data        []byte
}

// uploadStore keeps uploaded images in memory for the life of the server.
type uploadStore struct {
	mu    sync.RWMutex
	files map[string]upload
}

func newUploadStore() *uploadStore {
	return &uploadStore{files: make(map[string]upload)}
}

func (u *uploadStore) put(name string, f upload) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.files[name] = f
}

func (u *uploadStore) get(name string) (upload, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	f, ok := u.files[name]
	return f, ok
}

// saveUpload stores the multipart field "file" and returns the URL it is served at.
func (s *Server) saveUpload(w http.ResponseWriter, r *http.Request, prefix string) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrInvalidInput, "multipart field \"file\" is required")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		return "", apperrors.Wrapf(apperrors.ErrInvalidInput, "unsupported image type %q", ext)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrInvalidInput, "reading upload: %v", err)
	}

	name := fmt.Sprintf("%s-%s%s", prefix, uuid.New().String(), ext)
	s.uploads.put(name, upload{
		contentType: http.DetectContentType(buf.Bytes()),
		data:        buf.Bytes(),
	})
	return fmt.Sprintf("%s://%s/uploads/%s", getScheme(r), r.Host, name), nil
}

func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := s.uploads.get(r.PathValue("name"))
		if !ok {
			writeMessage(w, http.StatusNotFound, "file not found")
			return
		}
		w.Header().Set("Content-Type", f.contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(f.data)
	}
}
