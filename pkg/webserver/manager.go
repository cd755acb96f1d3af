package webserver

import (
	"context"
	"embed"
	"f1q1report/pkg/display"
	"f1q1report/pkg/logging"
	"f1q1report/pkg/model"
	"f1q1report/pkg/store"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Manager struct {
	r            *mux.Router
	addr         string
	defaultOrder display.Order
	// results is the base set built at start-up. Handlers only read it.
	results   []model.RaceResult
	store     *store.Manager
	templates *template.Template
	logger    *slog.Logger
}

func NewManager(st *store.Manager, defaultOrder display.Order, addr string, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	results, err := st.Results()
	if err != nil {
		return nil, errors.Wrap(err, "loading results")
	}
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}

	m := &Manager{
		r:            mux.NewRouter(),
		addr:         addr,
		defaultOrder: defaultOrder,
		results:      results,
		store:        st,
		templates:    templates,
		logger:       logger,
	}
	m.rootHandlers()
	m.reportHandlers()
	return m, nil
}

func (m *Manager) Router() *mux.Router {
	return m.r
}

func (m *Manager) rootHandlers() {
	m.r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/report/", http.StatusMovedPermanently)
	}).Methods(http.MethodGet)
	m.r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The page is not found", http.StatusNotFound)
	})
}

func (m *Manager) reportHandlers() {
	sr := m.r.PathPrefix("/report").Subrouter()
	sr.HandleFunc("/", m.handleReport).Methods(http.MethodGet)
	sr.HandleFunc("/drivers", m.handleDrivers).Methods(http.MethodGet)
	sr.HandleFunc("/drivers/", m.handleDriver).Methods(http.MethodGet)
	sr.HandleFunc("/chart.png", m.handleChart).Methods(http.MethodGet)
	sr.HandleFunc("/ws", m.handleStream).Methods(http.MethodGet)
}

// Routes lists the registered path templates.
func (m *Manager) Routes() []string {
	routes := []string{}
	_ = m.r.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := route.GetMethods()
		routes = append(routes, strings.TrimSpace(strings.Join(methods, ",")+" "+pathTemplate))
		return nil
	})
	return routes
}

// Serve blocks until ctx is cancelled, then shuts the server down.
func (m *Manager) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         m.addr,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.r,
	}

	errCh := make(chan error, 1)
	go func() {
		m.logger.Info("webserver listening", "addr", m.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	m.logger.Info("webserver shutting down")
	return err
}
