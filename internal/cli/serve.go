package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/chidanandgowda/huffman-coding/pkg/cache"
	apperrors "github.com/chidanandgowda/huffman-coding/pkg/errors"
	"github.com/chidanandgowda/huffman-coding/pkg/pipeline"
	"github.com/chidanandgowda/huffman-coding/pkg/render"
	"github.com/chidanandgowda/huffman-coding/pkg/snapshot"
	"github.com/chidanandgowda/huffman-coding/pkg/viewport"
)

// serveCommand creates the serve command, exposing snapshots and tree
// building over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve snapshots and tree building over HTTP",
		Long: `Start an HTTP server exposing the snapshot store and the build pipeline.

Endpoints:
  GET  /healthz                     liveness probe
  GET  /api/snapshots               list saved snapshots
  GET  /api/snapshots/{id}          fetch one snapshot document
  GET  /api/snapshots/{id}/svg      render a snapshot (query: zoom, panx, pany, codes)
  POST /api/trees                   build a tree from posted text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string) error {
	ctx := cmd.Context()

	store, err := c.newStore(cmd)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()

	backend, err := c.newCache(cmd, false)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	// HTTP builds get their own cache namespace so a shared Redis backend
	// never mixes them with CLI entries.
	runner := pipeline.NewRunner(backend, cache.NewScopedKeyer(nil, "http:"), c.Logger)
	defer runner.Close()

	srv := &server{
		store:  store,
		runner: runner,
		config: c.Config,
		logger: c.Logger,
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		// Fresh context: the command context is already cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	c.Logger.Info("listening", "addr", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// server bundles the handler dependencies.
type server struct {
	store  snapshot.Store
	runner *pipeline.Runner
	config Config
	logger *log.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshots", s.handleListSnapshots)
		r.Get("/snapshots/{id}", s.handleGetSnapshot)
		r.Get("/snapshots/{id}/svg", s.handleSnapshotSVG)
		r.Post("/trees", s.handleCreateTree)
	})
	return r
}

// logRequests logs one line per request with status and duration.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if infos == nil {
		infos = []snapshot.Info{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) handleSnapshotSVG(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}

	vp := viewport.New(viewport.WithZoomBounds(s.config.Viewport.ZoomMin, s.config.Viewport.ZoomMax))
	if z := queryFloat(r, "zoom", 1.0); z != 1.0 {
		vp.SetZoom(z)
	}
	// Pan parameters are screen-space offsets, like drag deltas.
	panX := queryFloat(r, "panx", 0)
	panY := queryFloat(r, "pany", 0)
	if panX != 0 || panY != 0 {
		vp.PanBy(panX, panY)
	}

	var opts []render.SVGOption
	zoom, px, py := vp.Transform()
	opts = append(opts, render.WithViewport(zoom, px, py))
	if doc.Name != "" {
		opts = append(opts, render.WithTitle(doc.Name))
	}
	if r.URL.Query().Get("codes") == "true" {
		opts = append(opts, render.WithShowCodes())
	}

	tree, box := doc.Tree()
	svg := render.SVG(tree, box, opts...)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// treeRequest is the POST /api/trees body.
type treeRequest struct {
	Text      string `json:"text"`
	Source    string `json:"source,omitempty"`
	Format    string `json:"format,omitempty"`
	Title     string `json:"title,omitempty"`
	ShowCodes bool   `json:"show_codes,omitempty"`
	Save      bool   `json:"save,omitempty"`
	Name      string `json:"name,omitempty"`
}

func (s *server) handleCreateTree(w http.ResponseWriter, r *http.Request) {
	var req treeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTreeRequestBytes)).Decode(&req); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if req.Source == "" {
		req.Source = "http"
	}
	if req.Format == "" {
		req.Format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "validate format"))
		return
	}

	opts := pipeline.Options{
		Source:    req.Source,
		Input:     []byte(req.Text),
		Layout:    s.config.layoutConfig(),
		Format:    req.Format,
		Title:     req.Title,
		ShowCodes: req.ShowCodes,
		Logger:    s.logger,
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if req.Save {
		name := req.Name
		if name == "" {
			name = req.Source
		}
		if err := apperrors.ValidateSnapshotName(name); err != nil {
			s.writeError(w, err)
			return
		}
		result.Document.Name = name
		if err := s.store.Put(r.Context(), result.Document); err != nil {
			s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "save snapshot"))
			return
		}
		w.Header().Set("Location", "/api/snapshots/"+result.Document.ID)
	}

	w.Header().Set("Content-Type", formatContentType(req.Format))
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(result.Artifact)
}

// loadSnapshot fetches the snapshot named in the URL, writing the error
// response itself on failure.
func (s *server) loadSnapshot(w http.ResponseWriter, r *http.Request) (*render.Document, bool) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if doc == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "no snapshot with id %s", id))
		return nil, false
	}
	return doc, true
}

// maxTreeRequestBytes bounds POST /api/trees bodies.
const maxTreeRequestBytes = 8 << 20

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidID, apperrors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeSnapshotNotFound, apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": apperrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func formatContentType(format string) string {
	switch format {
	case pipeline.FormatSVG, pipeline.FormatDOTSVG:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

func queryFloat(r *http.Request, name string, def float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
