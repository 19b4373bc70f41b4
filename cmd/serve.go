package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/intel-cli/internal/intel"
	"github.com/sells-group/intel-cli/internal/model"
	"github.com/sells-group/intel-cli/internal/score"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initService(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Handler: newRouter(e.Service, cfg.Server.AllowedOrigins),
		}

		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			return eris.Wrap(err, "server listen")
		}

		zap.L().Info("starting server", zap.Int("port", port))
		return serveHTTP(ctx, srv, ln)
	},
}

// serveHTTP runs the server until ctx is cancelled, then drains in-flight
// requests before returning. The drain gets its own deadline; the signal
// context is already cancelled by the time shutdown starts.
func serveHTTP(ctx context.Context, srv *http.Server, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("server shutdown incomplete", zap.Error(err))
		}
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server serve")
	}
	return nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func newRouter(svc *intel.Service, origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	if len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"sources": svc.SourceHealth(),
		})
	})

	r.Get("/v1/competitors", func(w http.ResponseWriter, req *http.Request) {
		profile := score.Profile{Industry: req.URL.Query().Get("industry")}
		records, err := svc.GetCompetingDomains(req.Context(), req.URL.Query().Get("domain"), profile)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	})

	r.Get("/v1/metrics", func(w http.ResponseWriter, req *http.Request) {
		bundle, err := svc.GetDomainMetrics(req.Context(), req.URL.Query().Get("domain"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bundle)
	})

	r.Post("/v1/metrics/batch", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Domains []string `json:"domains"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || len(body.Domains) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "domains is required"})
			return
		}
		results, err := svc.GetDomainMetricsBatch(req.Context(), body.Domains)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, results)
	})

	r.Post("/v1/score/likeability", func(w http.ResponseWriter, req *http.Request) {
		var m model.ContentMetrics
		if err := json.NewDecoder(req.Body).Decode(&m); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		writeJSON(w, http.StatusOK, svc.CalculateLikeabilityIndex(m))
	})

	r.Post("/v1/score/opportunity", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Subject string `json:"subject"`
			model.Subtopic
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		writeJSON(w, http.StatusOK, svc.CalculateOpportunityIndex(body.Subject, body.Subtopic))
	})

	r.Post("/v1/score/niche", func(w http.ResponseWriter, req *http.Request) {
		var sub model.Subject
		if err := json.NewDecoder(req.Body).Decode(&sub); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		writeJSON(w, http.StatusOK, svc.CalculateNichePotential(sub))
	})

	r.Post("/v1/score/engagement", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Asset   model.ContentAsset `json:"asset"`
			Market  model.Market       `json:"market"`
			Persona model.Persona      `json:"persona"`
			Project bool               `json:"project"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		result := svc.CalculateEngagementIndex(body.Asset, body.Market, body.Persona)
		out := map[string]any{"result": result}
		if body.Project {
			out["projection"] = svc.ProjectEngagementImpact(result.Value, body.Asset)
		}
		writeJSON(w, http.StatusOK, out)
	})

	return r
}

// requestID tags every request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, req)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var verr *intel.ValidationError
	status := http.StatusBadGateway
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case eris.Is(err, intel.ErrNoData):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
