// cmd/tool-server/main.go — standalone HTTP tool server for polyterm
//
// Exposes the polyterm tool-call layer as an HTTP endpoint for AI agent
// frameworks.
//
// Usage:
//   go run cmd/tool-server/main.go -port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/njchilds90/polyterm"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("polyterm tool server listening", slog.String("addr", addr))

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRouter(logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/tool", func(w http.ResponseWriter, req *http.Request) {
		req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
		defer req.Body.Close()

		dec := json.NewDecoder(req.Body)
		dec.DisallowUnknownFields()

		var toolReq polyterm.ToolRequest
		if err := dec.Decode(&toolReq); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		resp := polyterm.HandleToolCall(toolReq)
		if resp.Error != "" {
			logger.Debug("tool call failed",
				slog.String("tool", toolReq.Tool),
				slog.String("error", resp.Error))
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/schema", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, polyterm.ToolSpec())
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
