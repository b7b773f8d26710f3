package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docview/internal/parser"
	"github.com/dgallion1/docview/internal/render"
	"github.com/dgallion1/docview/internal/store"
	"github.com/go-chi/chi/v5"
)

// handleUpload parses an uploaded document and stores it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	// Duplicate detection by content hash.
	force := r.FormValue("force") == "true"
	if existing, ok := s.store.FindByHash(store.ContentHashHex(data)); ok && !force {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "duplicate document",
			"doc_id": existing.ID,
		})
		return
	}

	opts := parser.Options{
		AllowPlain:           s.cfg.AllowPlain || r.FormValue("allow_plain") == "true",
		PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext,
	}

	start := time.Now()
	entry, err := s.store.LoadWithOptions(filename, data, opts)
	s.parseStats.Observe(time.Since(start))
	if err != nil {
		if errors.Is(err, parser.ErrNoHeadings) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.log.Info("document loaded",
		"doc_id", entry.ID,
		"filename", entry.Filename,
		"sections", entry.Document.SectionCount(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":   entry.ID,
		"title":    entry.Title,
		"headings": entry.Document.Headings(),
		"sections": entry.Document.SectionCount(),
	})
}

// handleListDocuments lists stored documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": s.store.List()})
}

// handleGetDocument returns entry metadata plus the section tree.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":       entry.ID,
		"filename":     entry.Filename,
		"title":        entry.Title,
		"content_hash": entry.ContentHash,
		"loaded_at":    entry.LoadedAt,
		"document":     entry.Document,
	})
}

// handleRender renders a stored document in the requested format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}

	formatStr := r.URL.Query().Get("format")
	if formatStr == "" {
		formatStr = s.cfg.DefaultFormat
	}
	format, err := render.ParseFormat(formatStr)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	out, err := render.Render(entry.Document, format)
	s.renderStats.Observe(time.Since(start))
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if format == render.FormatHTML {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Write([]byte(out))
}

// handleOutline is a convenience for format=outline.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}

	start := time.Now()
	out, err := render.Render(entry.Document, render.FormatOutline)
	s.renderStats.Observe(time.Since(start))
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(out))
}

// handleDeleteDocument removes a stored document.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.store.Delete(docID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

// handleStats reports rolling parse/render latency aggregates.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"parse":  s.parseStats.Snapshot(),
		"render": s.renderStats.Snapshot(),
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*store.Entry, bool) {
	docID := chi.URLParam(r, "docID")
	entry, err := s.store.Get(docID)
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return entry, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
