// Package shell serves the compiled WASM client: the go-app PWA handler,
// static assets, a QR code for sharing rooms, and health/version endpoints.
// It hosts no game logic; the realtime channel runs straight from the
// browser to the external game server.
package shell

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"wordrace/internal/frontend"
)

const requestTimeout = 10 * time.Second

// Config is the shell's runtime configuration, populated by the CLI.
type Config struct {
	Bind       string
	Port       int
	GameServer string // ws(s):// URL of the external game server, passed to the client
	Version    string
	Verbose    bool
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	return nil
}

func (c *Config) addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

// NewRouter builds the shell's routes. The go-app handler is the NotFound
// fallback so it prerenders every page route and serves the WASM bundle.
func NewRouter(cfg *Config) *httprouter.Router {
	// Register the page routes so server-side prerender knows the root
	// component, and init the client state it renders against.
	app.Route("/", func() app.Composer { return &frontend.Home{} })
	frontend.InitState()

	env := map[string]string{}
	if cfg.GameServer != "" {
		env["WORDRACE_GAME_SERVER"] = cfg.GameServer
	}

	h := &app.Handler{
		Name:        "WordRace",
		Description: "A realtime two-player word-search race",
		Version:     cfg.Version,
		Env:         env,
		Styles: []string{
			"/web/css/pico.min.css",
			"/web/css/main.css",
		},
	}

	mux := httprouter.New()
	mux.GET("/healthz", serveHealthCheck())
	mux.GET("/version", serveVersion(cfg))
	mux.GET("/qr/:roomid", serveRoomQR())
	mux.Handler(http.MethodGet, "/web/*filepath",
		http.StripPrefix("/web/", http.FileServer(http.Dir("web/"))))
	mux.NotFound = h

	return mux
}

func serveHealthCheck() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}
}

func serveVersion(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "wordrace v%s\n", cfg.Version)
	}
}

// Run serves until the context is canceled, then shuts down gracefully.
func Run(ctx context.Context, cfg *Config) error {
	mux := NewRouter(cfg)

	srv := &http.Server{
		Addr:              cfg.addr(),
		Handler:           mux,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       requestTimeout,
		ReadHeaderTimeout: requestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		klog.Infof("shell: listening on http://%s/", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	klog.Infof("shell: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
