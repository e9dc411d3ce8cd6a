// Package http implements the HTTP transport for voicebridge.
//
// It exposes the single synchronous endpoint POST /translate, parsing the
// inbound request into a validated TranslationRequest and serializing the
// pipeline's result into the response: raw WAV audio on success, a
// stage-tagged JSON error otherwise.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/voicebridge/voicebridge/internal/message"
	"github.com/voicebridge/voicebridge/internal/pipeline"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// maxBodyBytes caps the request body; audio payloads beyond this are rejected.
const maxBodyBytes = 25 << 20 // 25 MB

// Runner runs one validated translation request through the pipeline.
type Runner interface {
	Run(ctx context.Context, req *message.TranslationRequest) ([]byte, error)
}

// Server is the HTTP request adapter in front of the pipeline.
type Server struct {
	port     int
	pipeline Runner
	server   *http.Server
}

// New creates a new HTTP server on the given port.
func New(port int, p Runner) *Server {
	return &Server{port: port, pipeline: p}
}

// ListenAndServe starts the HTTP server. It blocks until the context is
// cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()

	// POST /translate — accepts audio + translation config, returns translated audio.
	mux.HandleFunc("POST /translate", s.handleTranslate)

	// Swagger UI — serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		slog.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// handleTranslate processes a POST /translate request.
//
// @Summary     Translate spoken audio between languages
// @Description Accepts base64-encoded audio (raw PCM or WAV) plus source/target locales and a neural
// @Description voice name. The audio is recognized in the source locale, translated, and re-synthesized
// @Description in the target locale with the named voice. The pipeline is strictly sequential; any
// @Description stage failure aborts the request and is reported with the stage it occurred at.
// @Tags        translate
// @Accept      json
// @Produce     audio/wav
// @Produce     json
// @Param       request  body      message.TranslationRequest  true  "Translation request"
// @Success     200  {file}    binary  "Synthesized WAV audio in the target locale"
// @Failure     400  {object}  map[string]string  "Malformed JSON, missing fields, or invalid base64 audio"
// @Failure     500  {object}  map[string]string  "Stage-tagged pipeline failure"
// @Router      /translate [post]
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	slog.Info("translation request received")

	var req message.TranslationRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid json payload", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON payload"})
		return
	}

	if err := req.Validate(); err != nil {
		slog.Warn("missing required fields in request body")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		return
	}

	slog.Info("processing request",
		"source", req.SourceLocale, "target", req.TargetLocale, "voice", req.NeuralVoice)

	audioData, err := s.pipeline.Run(r.Context(), &req)
	if err != nil {
		s.writeStageError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audioData)
}

// writeStageError maps a pipeline failure to the HTTP response contract:
// a decode failure is the client's fault (400), anything past it is a
// stage-tagged internal error (500).
func (s *Server) writeStageError(w http.ResponseWriter, err error) {
	var stageErr *pipeline.StageError
	if !errors.As(err, &stageErr) {
		// The pipeline labels every failure; treat anything else as internal.
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if stageErr.Stage == pipeline.StageDecodeAudio {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("Invalid audio data: %v", stageErr.Err),
			"stage": string(stageErr.Stage),
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": stageErr.Err.Error(),
		"stage": string(stageErr.Stage),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Close gracefully shuts down the HTTP server.
func (s *Server) Close() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}
