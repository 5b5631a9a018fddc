// Package report renders period statements into downloadable documents.
package report

import (
	"fmt"
	"io"
	"strings"

	"vitien/internal/core"
)

// Format selects the output document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Renderer writes a statement document to w.
type Renderer interface {
	Render(w io.Writer, st core.Statement) error
	// ContentType is the MIME type of the rendered document.
	ContentType() string
	Format() Format
}

// ForFormat returns the renderer for a format string, or false when the
// format is unknown.
func ForFormat(f string) (Renderer, bool) {
	switch Format(strings.ToLower(f)) {
	case FormatPDF:
		return NewPDFRenderer(), true
	case FormatXLSX:
		return NewXLSXRenderer(), true
	}
	return nil, false
}

// Filename builds the download name for a rendered statement:
// statement_<wallet>_<start>_<end>.<ext>.
func Filename(st core.Statement, f Format) string {
	return fmt.Sprintf("statement_%s_%s_%s.%s",
		sanitize(st.WalletName),
		st.Start.Format("2006-01-02"),
		st.End.Format("2006-01-02"),
		f)
}

// sanitize keeps the wallet name filesystem- and header-safe: lowercase
// alphanumerics, everything else collapsed to single dashes.
func sanitize(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
