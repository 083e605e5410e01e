// Package web serves the interactive editor to a browser. Pages are rendered
// from the same view tree the terminal editor and the PDF printer use.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/service"
	"github.com/andy/quotepad/internal/style"
	"github.com/andy/quotepad/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

const isoLayout = "2006-01-02"

const shutdownTimeout = 10 * time.Second

// Server is the browser surface of the editor
type Server struct {
	editor  service.EditorService
	profile domain.Profile
	tmpl    *template.Template
	router  *mux.Router
	now     func() time.Time

	// mu serializes form submissions; line items are addressed by index
	mu sync.Mutex
}

// NewServer creates a server for editor. The editor must already be open.
func NewServer(editor service.EditorService, profile domain.Profile) (*Server, error) {
	tmpl, err := template.New("page.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		editor:  editor,
		profile: profile,
		tmpl:    tmpl,
		router:  mux.NewRouter(),
		now:     time.Now,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(recoverer, requestLogger)

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleUpdate).Methods(http.MethodPost)
	s.router.HandleFunc("/lines", s.handleAddLine).Methods(http.MethodPost)
	s.router.HandleFunc("/lines/{index:[0-9]+}/remove", s.handleRemoveLine).Methods(http.MethodPost)
	s.router.HandleFunc("/export.pdf", s.handleExport).Methods(http.MethodGet)
	s.router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/logo", s.handleLogo).Methods(http.MethodGet)
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("web editor listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("web editor stopped")
	return nil
}

func (s *Server) compose(inv domain.Invoice) *view.Node {
	return view.Compose(inv, view.Options{Mode: view.Interactive, Profile: s.profile, Now: s.now()})
}

var templateFuncs = template.FuncMap{
	"kind":    nodeKind,
	"wkind":   widgetKind,
	"action":  actionName,
	"isoDate": isoDate,
	"css": func(st style.Style) template.CSS {
		return template.CSS(st.CSS())
	},
}

func nodeKind(n *view.Node) string {
	switch n.Kind {
	case view.KindText:
		return "text"
	case view.KindField:
		return "field"
	case view.KindControl:
		return "control"
	}
	return "container"
}

func widgetKind(w *view.Widget) string {
	switch w.Kind {
	case view.Choice:
		return "choice"
	case view.TextArea:
		return "area"
	case view.DatePicker:
		return "date"
	}
	return "text"
}

func actionName(c *view.Control) string {
	switch c.Action {
	case view.ActionAddLine:
		return "add"
	case view.ActionRemoveLine:
		return "remove"
	}
	return "download"
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(isoLayout)
}
