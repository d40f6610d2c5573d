package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Exporter renders a task list in one of the formats it lists. It is
// satisfied by export.Exporter.
type Exporter interface {
	Formats() []string
	Export(tasks []Task, format string) (body []byte, contentType string, err error)
}

// Handler exposes a Store over JSON. It does no locking of its own; mount it
// behind httpmw.WithSerialized.
type Handler struct {
	store    *Store
	exporter Exporter
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) SetExporter(e Exporter) {
	h.exporter = e
}

type stateView struct {
	Tasks       []Task  `json:"tasks"`
	Mode        string  `json:"mode"`
	EditingID   *TaskID `json:"editingId,omitempty"`
	PendingText string  `json:"pendingText"`
	SubmitLabel string  `json:"submitLabel"`
	Query       string  `json:"query"`
}

func newStateView(s *Store, query string) stateView {
	mode := s.Mode()
	v := stateView{
		Tasks:       Filter(s.List(), query),
		Mode:        mode.String(),
		PendingText: s.PendingText(),
		SubmitLabel: SubmitLabel(mode),
		Query:       query,
	}
	if id, ok := mode.EditingID(); ok {
		v.EditingID = &id
	}
	return v
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// /api/tasks
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	writeJSON(w, 200, Filter(h.store.List(), r.URL.Query().Get("q")))
}

// /api/tasks/{id} and /api/tasks/{id}/{edit|toggle}
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	tail = strings.Trim(tail, "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	parts := strings.Split(tail, "/")
	id := TaskID(parts[0])

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			t, ok := h.store.Get(id)
			if !ok {
				writeErr(w, 404, "not found")
				return
			}
			writeJSON(w, 200, t)
			return

		case http.MethodDelete:
			if !h.store.DeleteTask(id) {
				writeErr(w, 404, "not found")
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return

		default:
			writeErr(w, 405, "method not allowed")
			return
		}
	}

	if len(parts) == 2 && r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}

	// /api/tasks/{id}/edit
	if len(parts) == 2 && parts[1] == "edit" {
		if !h.store.BeginEdit(id) {
			writeErr(w, 404, "not found")
			return
		}
		writeJSON(w, 200, newStateView(h.store, ""))
		return
	}

	// /api/tasks/{id}/toggle
	if len(parts) == 2 && parts[1] == "toggle" {
		t, ok := h.store.ToggleCompletion(id)
		if !ok {
			writeErr(w, 404, "not found")
			return
		}
		writeJSON(w, 200, t)
		return
	}

	writeErr(w, 404, "not found")
}

// /api/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	writeJSON(w, 200, newStateView(h.store, r.URL.Query().Get("q")))
}

// /api/input
func (h *Handler) Input(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeErr(w, 405, "method not allowed")
		return
	}
	var in struct {
		Text *string `json:"text"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, 400, "bad json")
		return
	}
	if in.Text == nil {
		writeErr(w, 400, `missing field "text"`)
		return
	}
	h.store.SetPendingText(*in.Text)
	writeJSON(w, 200, newStateView(h.store, ""))
}

// /api/commit
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}
	_, editing := h.store.Mode().EditingID()

	t, err := h.store.Commit()
	if errors.Is(err, ErrEmptyText) {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}

	code := http.StatusCreated
	if editing {
		code = http.StatusOK
	}
	writeJSON(w, code, t)
}

// /api/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}
	h.store.CancelEdit()
	writeJSON(w, 200, newStateView(h.store, ""))
}

// /api/export?format=json|csv|pdf&q=
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	if h.exporter == nil {
		writeErr(w, 404, "export disabled")
		return
	}
	q := r.URL.Query()
	format := strings.ToLower(strings.TrimSpace(q.Get("format")))
	if format == "" {
		format = "json"
	}
	if !slices.Contains(h.exporter.Formats(), format) {
		writeErr(w, 400, "unknown export format: "+strconv.Quote(format))
		return
	}

	body, contentType, err := h.exporter.Export(Filter(h.store.List(), q.Get("q")), format)
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(200)
	_, _ = w.Write(body)
}
