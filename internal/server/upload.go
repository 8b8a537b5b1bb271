package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/claude/liftplan/internal/ingest/document"
	"github.com/claude/liftplan/internal/ingest/program"
	"github.com/google/uuid"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const multipartMemory = 8 << 20

// uploadError carries the HTTP status for a rejected upload.
type uploadError struct {
	status int
	msg    string
}

func (e *uploadError) Error() string { return e.msg }

// handleUpload stores an uploaded program file, parses it and persists the
// resulting plan. The file is kept only when a plan was stored.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	doc, opts, path, err := s.receiveDocument(w, r)
	if err != nil {
		s.writeUploadError(w, err)
		return
	}

	result, err := s.provider.Ingest(r.Context(), doc, opts)
	if err != nil {
		s.discardUpload(path)
		s.writeUploadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleParse parses an uploaded program file and returns the plan without
// storing it.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	doc, opts, path, err := s.receiveDocument(w, r)
	if err != nil {
		s.writeUploadError(w, err)
		return
	}
	s.discardUpload(path)

	plan, err := s.provider.Preview(doc, opts)
	if err != nil {
		s.writeUploadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// receiveDocument reads the multipart "file" field (and optional
// "plan_name"), saves the file under the upload directory and extracts it.
// On error nothing is left on disk.
func (s *Server) receiveDocument(w http.ResponseWriter, r *http.Request) (program.Document, program.Options, string, error) {
	var opts program.Options

	if s.upload.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.upload.MaxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return program.Document{}, opts, "", &uploadError{http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", tooLarge.Limit)}
		}
		return program.Document{}, opts, "", &uploadError{http.StatusBadRequest, "invalid multipart form: " + err.Error()}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return program.Document{}, opts, "", &uploadError{http.StatusBadRequest, "file field is required"}
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if !document.Supported(name) {
		return program.Document{}, opts, "", &uploadError{http.StatusBadRequest, fmt.Sprintf("unsupported file type %q; allowed: %v", filepath.Ext(name), document.Extensions)}
	}
	opts.SourceFilename = name
	opts.PlanName = r.FormValue("plan_name")

	path, err := s.saveUpload(file, name)
	if err != nil {
		return program.Document{}, opts, "", err
	}
	s.log.Info("upload stored", "file", name, "path", path, "bytes", header.Size)

	doc, err := document.Extract(r.Context(), path)
	if err != nil {
		s.discardUpload(path)
		return program.Document{}, opts, "", err
	}
	return doc, opts, path, nil
}

// discardUpload removes a saved upload that did not produce a stored plan.
func (s *Server) discardUpload(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("removing upload", "path", path, "error", err)
	}
}

func (s *Server) saveUpload(src io.Reader, name string) (string, error) {
	if err := os.MkdirAll(s.upload.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}

	path := filepath.Join(s.upload.Dir, uuid.NewString()+"_"+name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("closing upload file: %w", err)
	}
	return path, nil
}

func (s *Server) writeUploadError(w http.ResponseWriter, err error) {
	var ue *uploadError
	switch {
	case errors.As(err, &ue):
		writeJSON(w, ue.status, map[string]string{"error": ue.msg})
	case errors.Is(err, document.ErrUnsupportedFormat):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, program.ErrDocumentUnreadable):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, program.ErrNothingImportable):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "nothing importable: " + err.Error()})
	default:
		s.log.Error("upload failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
