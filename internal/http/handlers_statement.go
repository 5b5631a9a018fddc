package http

import (
	"bytes"
	"fmt"
	"net/http"

	"vitien/internal/apperr"
	"vitien/internal/core"
	"vitien/internal/report"
)

func (s *Server) statementFromRequest(r *http.Request) (core.Statement, error) {
	claims, _ := claimsFromContext(r.Context())
	q := r.URL.Query()

	walletID := q.Get("walletId")
	if walletID == "" {
		return core.Statement{}, apperr.InvalidInput("walletId is required")
	}
	start, err := parseDate(q.Get("start"))
	if err != nil {
		return core.Statement{}, apperr.InvalidInput("invalid start date")
	}
	end, err := parseDate(q.Get("end"))
	if err != nil {
		return core.Statement{}, apperr.InvalidInput("invalid end date")
	}

	return s.statements.Get(r.Context(), claims.TenantID, claims.UserID, walletID, start, end)
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	st, err := s.statementFromRequest(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatementJSON(st))
}

// handleStatementExport renders the statement as a downloadable document.
// The format query parameter picks pdf or xlsx; pdf when omitted.
func (s *Server) handleStatementExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(report.FormatPDF)
	}
	renderer, ok := report.ForFormat(format)
	if !ok {
		writeError(w, http.StatusBadRequest, "format must be pdf or xlsx")
		return
	}

	st, err := s.statementFromRequest(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Render to a buffer first so failures still produce a clean error
	// response instead of a truncated download.
	var buf bytes.Buffer
	if err := renderer.Render(&buf, st); err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename(st, renderer.Format())))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
