package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/repository"
	"github.com/meridianfs/meridian-backend/internal/service"
)

// maxUploadSize bounds document uploads at 32 MB.
const maxUploadSize = 32 << 20

type DocumentHandler struct {
	documentService *service.DocumentService
	uploadDir       string
}

func NewDocumentHandler(documentService *service.DocumentService, uploadDir string) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		uploadDir:       uploadDir,
	}
}

// Create accepts a multipart form with a "file" part and document metadata
// fields, stores the file under the upload directory, and creates the record.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	kind := domain.DocumentKind(r.FormValue("kind"))
	categoryID, err := uuid.Parse(r.FormValue("categoryId"))
	if title == "" || err != nil {
		http.Error(w, "Title and category ID are required", http.StatusBadRequest)
		return
	}

	published, _ := strconv.ParseBool(r.FormValue("published"))

	var tags datatypes.JSON
	if raw := r.FormValue("tags"); raw != "" {
		if !json.Valid([]byte(raw)) {
			http.Error(w, "Tags must be a JSON array", http.StatusBadRequest)
			return
		}
		tags = datatypes.JSON([]byte(raw))
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filePath, size, err := h.saveUpload(file, header.Filename)
	if err != nil {
		slog.Error("failed to store upload", "error", err)
		http.Error(w, "Failed to store file", http.StatusInternalServerError)
		return
	}

	document, err := h.documentService.Create(r.Context(), service.CreateDocumentInput{
		Title:       title,
		CategoryID:  categoryID,
		Kind:        kind,
		FileName:    header.Filename,
		FilePath:    filePath,
		FileSize:    size,
		ContentType: header.Header.Get("Content-Type"),
		Tags:        tags,
		Published:   published,
	})
	if err != nil {
		os.Remove(filePath)
		switch {
		case errors.Is(err, domain.ErrInvalidKind):
			http.Error(w, "Invalid document kind", http.StatusBadRequest)
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Category not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(document)
}

func (h *DocumentHandler) saveUpload(file io.Reader, originalName string) (string, int64, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", 0, err
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(originalName))
	path := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(path)
		return "", 0, err
	}
	return path, size, nil
}

// ListPublished serves the public document library.
func (h *DocumentHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	categoryID, kind, err := parseDocumentQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	documents, err := h.documentService.ListPublished(r.Context(), categoryID, kind)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(documents)
}

// ListAll serves the admin view, including unpublished documents.
func (h *DocumentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	categoryID, kind, err := parseDocumentQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	documents, err := h.documentService.List(r.Context(), repository.DocumentFilter{
		CategoryID: categoryID,
		Kind:       kind,
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(documents)
}

func parseDocumentQuery(r *http.Request) (*uuid.UUID, *domain.DocumentKind, error) {
	var categoryID *uuid.UUID
	var kind *domain.DocumentKind

	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, errors.New("Invalid category ID")
		}
		categoryID = &id
	}
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k := domain.DocumentKind(raw)
		if !domain.ValidKind(k) {
			return nil, nil, errors.New("Invalid document kind")
		}
		kind = &k
	}
	return categoryID, kind, nil
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	document, err := h.documentService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(document)
}

type UpdateDocumentRequest struct {
	Title      *string          `json:"title"`
	CategoryID *uuid.UUID       `json:"categoryId"`
	Kind       *string          `json:"kind"`
	Tags       *json.RawMessage `json:"tags"`
	Published  *bool            `json:"published"`
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	var req UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input := service.UpdateDocumentInput{
		Title:      req.Title,
		CategoryID: req.CategoryID,
		Published:  req.Published,
	}
	if req.Kind != nil {
		kind := domain.DocumentKind(*req.Kind)
		input.Kind = &kind
	}
	if req.Tags != nil {
		input.Tags = datatypes.JSON(*req.Tags)
	}

	document, err := h.documentService.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrInvalidKind):
			http.Error(w, "Invalid document kind", http.StatusBadRequest)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(document)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	if err := h.documentService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *DocumentHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	if err := h.documentService.Restore(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Download streams the stored file and records the download.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	document, err := h.documentService.Download(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.FileName))
	if document.ContentType != "" {
		w.Header().Set("Content-Type", document.ContentType)
	}
	http.ServeFile(w, r, document.FilePath)
}
