package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/export"
	"github.com/andy/quotepad/internal/view"
)

type pageData struct {
	Title  string
	Doc    *view.Node
	Export export.Status
}

type statusResponse struct {
	State    string `json:"state"`
	FileName string `json:"fileName,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	inv := s.editor.Current()
	data := pageData{
		Title:  s.profile.Heading(inv) + inv.InvoiceNumber,
		Doc:    s.compose(inv),
		Export: s.editor.ExportStatus(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		slog.Error("render page", "err", err)
	}
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyForm(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAddLine(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyForm(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.apply(r, domain.AddLineItem{})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRemoveLine(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "invalid line index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyForm(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.apply(r, domain.RemoveLineItem{Index: index})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	art, err := s.editor.Export()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, export.ErrNothingScheduled) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", contentDisposition(art.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
	if _, err := w.Write(art.Data); err != nil {
		slog.Warn("write pdf", "err", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.editor.ExportStatus()
	resp := statusResponse{State: st.State.String()}
	if st.Artifact != nil {
		resp.FileName = st.Artifact.FileName
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Warn("write status", "err", err)
	}
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	if s.profile.Logo == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.profile.Logo)
}

// applyForm commits every posted widget value that differs from the live
// invoice, in document order. Callers hold s.mu.
func (s *Server) applyForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	for _, t := range view.Targets(s.compose(s.editor.Current())) {
		if t.Widget == nil {
			continue
		}
		posted, ok := r.PostForm[t.ID]
		if !ok || len(posted) == 0 {
			continue
		}
		value, changed := formValue(t.Widget, posted[0])
		if !changed {
			continue
		}
		s.apply(r, t.Widget.Commit(value))
	}
	return nil
}

// apply runs op. A failed save is logged by the service and the edit stays.
func (s *Server) apply(r *http.Request, op domain.Op) {
	if op == nil {
		return
	}
	if _, err := s.editor.Apply(r.Context(), op); err != nil {
		slog.Warn("apply edit", "op", op, "err", err)
	}
}

// formValue converts a posted value to the widget's own format and reports
// whether it changed.
func formValue(w *view.Widget, posted string) (string, bool) {
	switch w.Kind {
	case view.DatePicker:
		t, err := time.Parse(isoLayout, posted)
		if err != nil || isoDate(t) == isoDate(w.Date) {
			return "", false
		}
		return domain.FormatDate(t), true
	case view.TextArea:
		posted = strings.ReplaceAll(posted, "\r\n", "\n")
	}
	return posted, posted != w.Value
}

func contentDisposition(name string) string {
	return "attachment; filename=\"invoice.pdf\"; filename*=UTF-8''" + url.PathEscape(name)
}
