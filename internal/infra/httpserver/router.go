package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/bryanwahyu/propsight-ai/internal/application/analysis"
	appcalc "github.com/bryanwahyu/propsight-ai/internal/application/calculations"
	domain "github.com/bryanwahyu/propsight-ai/internal/domain/analysis"
	"github.com/bryanwahyu/propsight-ai/internal/middleware"
)

const maxBodyBytes = 1 << 20 // requests are calculator payloads, 1MB is generous

type Router struct {
	analysisSvc *appanalysis.Service
	calcSvc     *appcalc.Service
}

func NewRouter(analysisSvc *appanalysis.Service, calcSvc *appcalc.Service) http.Handler {
	r := &Router{analysisSvc: analysisSvc, calcSvc: calcSvc}
	mux := chi.NewRouter()

	// frontend calls straight from the browser, so CORS stays wide open
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
	}))

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyze", r.handleAnalyze)
		rt.Post("/calculations", r.handleSaveCalculation)
	})

	return mux
}

// POST /v1/analyze
// Body: the analysis request document, either as a JSON object or as a
// JSON-encoded string containing one (some gateways double-encode).
// Always answers with a schema-valid analysis, fallback included on failure.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	body, err := decodeLoose(req.Body)
	if err != nil {
		log.Printf("analyze request decode failed: %v", err)
		env := &appanalysis.Envelope{
			Success:   false,
			RequestID: "unknown",
			Error:     err.Error(),
			Analysis:  domain.FallbackResult(),
		}
		writeJSON(w, http.StatusInternalServerError, env)
		return
	}

	env, err := r.analysisSvc.Analyze(req.Context(), domain.Request(body))
	if err != nil {
		log.Printf("analyze failed: request_id=%s err=%v", env.RequestID, err)
		middleware.IncrementAnalysesFailed()
		writeJSON(w, http.StatusInternalServerError, env)
		return
	}

	middleware.IncrementAnalyses()
	writeJSON(w, http.StatusOK, env)
}

// POST /v1/calculations
// Body: {"inputs": {...financial fields...}}
func (r *Router) handleSaveCalculation(w http.ResponseWriter, req *http.Request) {
	fail := func(err error) {
		log.Printf("save calculation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Error storing analysis",
			"error":   err.Error(),
		})
	}

	body, err := decodeLoose(req.Body)
	if err != nil {
		fail(err)
		return
	}
	inputs, ok := body["inputs"].(map[string]any)
	if !ok {
		fail(fmt.Errorf("inputs is required"))
		return
	}

	if _, err := r.calcSvc.Save(req.Context(), inputs); err != nil {
		fail(err)
		return
	}

	middleware.IncrementCalculationsStored()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Success"})
}

// decodeLoose accepts both an object body and a string body wrapping one
func decodeLoose(body io.Reader) (map[string]any, error) {
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if s, ok := v.(string); ok {
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("invalid request body: %w", err)
		}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("request body must be a JSON object")
	}
	return obj, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("response encode failed: %v", err)
	}
}
