package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arqiv-labs/research-pipeline/internal/research"
	"github.com/arqiv-labs/research-pipeline/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the research HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(env.Service),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func newRouter(svc *research.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/research", func(w http.ResponseWriter, req *http.Request) {
		var rr research.Request
		if err := json.NewDecoder(req.Body).Decode(&rr); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		res, err := svc.Run(req.Context(), rr)
		if err != nil {
			zap.L().Error("research run failed", zap.String("query", rr.Query), zap.Error(err))
			writeError(w, statusFor(err), "research failed")
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	r.Post("/research/save", func(w http.ResponseWriter, req *http.Request) {
		var res research.Result
		if err := json.NewDecoder(req.Body).Decode(&res); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		saved, err := svc.Save(req.Context(), userID(req), &res)
		if errors.Is(err, store.ErrAlreadySaved) {
			writeError(w, http.StatusConflict, "already saved")
			return
		}
		if err != nil {
			zap.L().Error("save failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "save failed")
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	})

	r.Get("/saved", func(w http.ResponseWriter, req *http.Request) {
		out, err := svc.Saved(req.Context(), userID(req), 0)
		if err != nil {
			zap.L().Error("list saved failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "list failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"saved": out})
	})

	r.Delete("/saved/{id}", func(w http.ResponseWriter, req *http.Request) {
		err := svc.Delete(req.Context(), userID(req), chi.URLParam(req, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			zap.L().Error("delete saved failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "delete failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

// userID identifies the caller. Single-user deployments fall back to a
// fixed id.
func userID(req *http.Request) string {
	if id := req.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "local"
}

func statusFor(err error) int {
	if errors.Is(err, research.ErrEmptyQuery) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
