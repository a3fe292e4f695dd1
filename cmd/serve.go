package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scorandini/fcr-cli/internal/export"
	"github.com/scorandini/fcr-cli/internal/model"
	"github.com/scorandini/fcr-cli/internal/report"
)

var (
	serveInput string
	servePort  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve report aggregations over HTTP",
	Long: `Loads a classified CSV and serves the reporting aggregations as JSON.
This is the boundary the dashboard consumes; no rendering happens here.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		records, err := export.ReadCSVFile(serveInput)
		if err != nil {
			return eris.Wrap(err, "serve: read classified table")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: reportRouter(records),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(cmd.Context())
		}()

		zap.L().Info("serving report api",
			zap.Int("port", port),
			zap.Int("records", len(records)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "serve: listen")
		}
		return nil
	},
}

// reportRouter builds the JSON report API over one classified table.
func reportRouter(records []model.ClassifiedRecord) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/months", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, report.Months(records))
	})

	r.Get("/reports/summary", func(w http.ResponseWriter, req *http.Request) {
		monthly, ok := monthlySlice(w, req, records)
		if !ok {
			return
		}
		payload, err := buildReportPayload(monthly, req.URL.Query().Get("month"))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, payload)
	})

	r.Get("/reports/values", func(w http.ResponseWriter, req *http.Request) {
		monthly, ok := monthlySlice(w, req, records)
		if !ok {
			return
		}
		if status := req.URL.Query().Get("status"); status != "" {
			monthly = report.FilterStatus(monthly, status)
		}

		field := req.URL.Query().Get("field")
		extract, err := report.FieldSelector(field)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, report.ValueCounts(monthly, extract))
	})

	r.Get("/reports/daily", func(w http.ResponseWriter, req *http.Request) {
		monthly, ok := monthlySlice(w, req, records)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, report.DailySeries(monthly))
	})

	return r
}

// monthlySlice resolves the required month query parameter and filters the
// records. Writes the error response itself when the parameter is missing.
func monthlySlice(w http.ResponseWriter, req *http.Request, records []model.ClassifiedRecord) ([]model.ClassifiedRecord, bool) {
	month := req.URL.Query().Get("month")
	if month == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "month query parameter is required"})
		return nil, false
	}
	return report.FilterMonth(records, month), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().StringVar(&serveInput, "input", "", "classified CSV produced by classify")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	_ = serveCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(serveCmd)
}
