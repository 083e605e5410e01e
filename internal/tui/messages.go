package tui

import "github.com/andy/quotepad/internal/export"

// exportReadyMsg is sent from the export timer when a build is published
type exportReadyMsg struct {
	artifact *export.Artifact
	err      error
}

// pdfSavedMsg reports the result of writing the PDF to disk
type pdfSavedMsg struct {
	path string
	err  error
}
