package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/poissondor/catimport/internal/catalog"
	"github.com/poissondor/catimport/internal/feed"
	"github.com/poissondor/catimport/internal/logging"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleImport accepts a multipart .xlsx feed under the "feed" field, runs
// one import batch, and returns the summary. "dry_run=true" plans without
// writing. A systemic failure returns 502 with the summary of the aborted
// batch; nothing was committed in that case.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Feed.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Feed.MaxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}

	file, header, err := r.FormFile("feed")
	if err != nil {
		writeError(w, http.StatusBadRequest, `missing "feed" file field`)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	rows, err := feed.Read(data, s.feedOptions())
	if err != nil {
		logger.Warn("feed rejected", "file", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	dry := r.URL.Query().Get("dry_run") == "true"
	logger.Info("import requested", "file", header.Filename, "rows", len(rows), "dry_run", dry)

	var summary catalog.Summary
	if dry {
		summary, err = s.importer.DryRun(ctx, rows)
	} else {
		summary, err = s.importer.Run(ctx, rows)
	}
	if err != nil {
		var se *catalog.SystemicError
		status := http.StatusInternalServerError
		if errors.As(err, &se) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, importResponse{
			Summary:  summary,
			Aborted:  true,
			ErrorMsg: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, importResponse{Summary: summary})
}

// importResponse is the JSON body returned by the import endpoint.
type importResponse struct {
	catalog.Summary
	Aborted  bool   `json:"aborted,omitempty"`
	ErrorMsg string `json:"error,omitempty"`
}

func (s *Server) feedOptions() feed.Options {
	return feed.Options{
		Sheet: s.cfg.Feed.Sheet,
		Columns: feed.Columns{
			Barcode: s.cfg.Feed.BarcodeColumn,
			Name:    s.cfg.Feed.NameColumn,
			Price:   s.cfg.Feed.PriceColumn,
		},
		HeaderRows: s.cfg.Feed.HeaderRows,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
