package handlers

import (
	"net/http"
	"path"

	"github.com/Mohameddacar/xasuusqor/internal/annotate"
	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
	"github.com/Mohameddacar/xasuusqor/internal/media"
)

// maxUploadBytes caps a single upload request.
const maxUploadBytes = 32 << 20

// UploadHandler handles file uploads and serves stored files.
type UploadHandler struct {
	annotator annotate.Annotator
	storage   *media.Storage
	thumbs    *media.Thumbnailer
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(annotator annotate.Annotator, storage *media.Storage) *UploadHandler {
	return &UploadHandler{
		annotator: annotator,
		storage:   storage,
		thumbs:    media.NewThumbnailer(320, 320),
	}
}

// Upload handles POST /uploads with a multipart "file" field. The
// response carries the stored file's stable URL; callers must not assume
// the file is reachable before the response arrives.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrUploadTooBig, "upload exceeds size limit", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInvalid, "missing file field", err))
		return
	}
	defer file.Close()

	stored, err := h.annotator.UploadFile(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// Serve handles GET /files/{name}, optionally as a thumbnail with
// ?thumb=true.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.PathValue("name")
	if name == "" {
		name = path.Base(r.URL.Path)
	}

	f, err := h.storage.Open(name)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrNotFound, "file not found", err))
		return
	}
	defer f.Close()

	if r.URL.Query().Get("thumb") == "true" {
		w.Header().Set("Content-Type", "image/jpeg")
		if err := h.thumbs.Thumbnail(f, w); err != nil {
			writeError(w, apperrors.Wrap(apperrors.ErrInternal, "failed to render thumbnail", err))
		}
		return
	}

	info, err := f.Stat()
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrInternal, "failed to stat file", err))
		return
	}
	http.ServeContent(w, r, name, info.ModTime(), f)
}
