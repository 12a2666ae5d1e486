package http

import (
	"errors"
	"log/slog"
	"net/http"

	"mealtrack/internal/snapshot"
)

func (s *Server) handleExportSnapshot(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.ExportSnapshot()
	if err != nil {
		slog.ErrorContext(r.Context(), "Snapshot export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="mealtrack-snapshot.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *Server) handleImportSnapshot(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid file")
		return
	}

	if err := s.svc.ImportSnapshot(r.Context(), p.GetRaw()); err != nil {
		if errors.Is(err, snapshot.ErrInvalidDocument) {
			writeError(w, http.StatusUnprocessableEntity, "invalid file: "+err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Snapshot import failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
