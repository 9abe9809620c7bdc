//go:build !js

// Command wasm-demo serves the WebAssembly build of the demo.
//
//	GOOS=js GOARCH=wasm go build -o cmd/wasm-demo/main.wasm ./cmd/demo
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" cmd/wasm-demo/
//	go run ./cmd/wasm-demo
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"
)

func main() {
	addr := pflag.String("addr", ":8080", "listen address")
	baseDir := pflag.String("dir", filepath.Join("cmd", "wasm-demo"), "directory holding index.html, main.wasm and wasm_exec.js")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := serve(*addr, *baseDir, logger); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func serve(addr, baseDir string, logger *slog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: logRequests(logger, newHandler(baseDir))}

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", addr, "dir", baseDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newHandler(baseDir string) http.Handler {
	files := http.FileServer(http.Dir(baseDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.ServeFile(w, r, filepath.Join(baseDir, "index.html"))
			return
		}
		files.ServeHTTP(w, r)
	})
}

func logRequests(logger *slog.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		h.ServeHTTP(w, r)
	})
}
