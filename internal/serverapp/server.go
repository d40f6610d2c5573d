package serverapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"tasklist/internal/config"
	"tasklist/internal/export"
	"tasklist/internal/httpmw"
	"tasklist/internal/page"
	"tasklist/internal/task"
	"tasklist/internal/telemetry"
	staticfiles "tasklist/static"
)

type Options struct {
	Config *config.Config
	// Store defaults to a new store seeded from Config.Seed.
	Store  *task.Store
	Logger *httpmw.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	cfg := opts.Config
	if opts.Store == nil {
		opts.Store = task.NewSeededStore(cfg.Seed)
	}
	logger := opts.Logger

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if cfg.Server.DevStatic {
		staticHandler = http.FileServer(http.Dir(cfg.Server.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "tasklist",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	exportOn := cfg.Export.Enabled == nil || *cfg.Export.Enabled

	taskHandler := task.NewHandler(opts.Store)
	if exportOn {
		taskHandler.SetExporter(export.NewExporter(cfg.Export.Title))
	}
	pageHandler := page.NewHandler(opts.Store, cfg.UI, exportOn)

	// Every route below touches the store, so they share one lock.
	var mu sync.Mutex
	serial := httpmw.WithSerialized(&mu)
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, serial(fn))
	}

	handle("/api/tasks", taskHandler.TasksRoot)
	handle("/api/tasks/", taskHandler.TasksSub)
	handle("/api/state", taskHandler.State)
	handle("/api/input", taskHandler.Input)
	handle("/api/commit", taskHandler.Commit)
	handle("/api/cancel", taskHandler.Cancel)
	handle("/api/export", taskHandler.Export)

	handle("/", pageHandler.Home)
	handle("/ui/commit", pageHandler.Commit)
	handle("/ui/cancel", pageHandler.Cancel)
	handle("/ui/tasks/", pageHandler.TaskAction)

	events := telemetry.NewMemoryRepository()
	events.Watch(opts.Store)
	mux.HandleFunc("/api/stats", telemetry.StatsHandler(events))

	opts.Store.OnChange(func(snap task.Snapshot) {
		logger.Info("store_changed", map[string]any{
			"tasks": len(snap.Tasks),
			"mode":  snap.Mode.String(),
		})
	})

	return httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(logger),
		httpmw.WithRecover(logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
