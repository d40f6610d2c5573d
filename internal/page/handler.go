package page

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"tasklist/internal/config"
	"tasklist/internal/task"
)

// Handler serves the HTML page and its form posts. Like task.Handler it
// expects requests to be serialized by the caller.
type Handler struct {
	store       *task.Store
	ui          config.UIConfig
	exportLinks bool
}

func NewHandler(store *task.Store, ui config.UIConfig, exportLinks bool) *Handler {
	ui.ApplyDefaults()
	return &Handler{store: store, ui: ui, exportLinks: exportLinks}
}

func (h *Handler) view(query, notice string) View {
	return View{
		Title:       h.ui.Title,
		Placeholder: h.ui.Placeholder,
		CharLimit:   h.ui.CharLimit,
		Tasks:       task.Filter(h.store.List(), query),
		Query:       query,
		PendingText: h.store.PendingText(),
		Mode:        h.store.Mode(),
		Notice:      notice,
		ExportLinks: h.exportLinks,
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, query, notice string) {
	templ.Handler(TasksPage(h.view(query, notice)), templ.WithStatus(status)).ServeHTTP(w, r)
}

func backTo(w http.ResponseWriter, r *http.Request, query string) {
	target := "/"
	if query != "" {
		target += "?" + url.Values{"q": {query}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.render(w, r, http.StatusOK, r.URL.Query().Get("q"), "")
}

// POST /ui/commit
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	query := r.PostForm.Get("q")

	h.store.SetPendingText(r.PostForm.Get("text"))
	if _, err := h.store.Commit(); err != nil {
		if errors.Is(err, task.ErrEmptyText) {
			h.render(w, r, http.StatusUnprocessableEntity, query, "Task cannot be empty")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	backTo(w, r, query)
}

// POST /ui/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_ = r.ParseForm()
	h.store.CancelEdit()
	backTo(w, r, r.PostForm.Get("q"))
}

// POST /ui/tasks/{id}/{edit|delete|toggle}
//
// Unknown ids are ignored: the page may be stale after another tab deleted
// the task.
func (h *Handler) TaskAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/ui/tasks/"), "/")
	parts := strings.Split(tail, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	_ = r.ParseForm()
	id := task.TaskID(parts[0])

	switch parts[1] {
	case "edit":
		h.store.BeginEdit(id)
	case "delete":
		h.store.DeleteTask(id)
	case "toggle":
		h.store.ToggleCompletion(id)
	default:
		http.NotFound(w, r)
		return
	}
	backTo(w, r, r.PostForm.Get("q"))
}
