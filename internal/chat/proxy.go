package chat

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/TripleGChat/TG-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// Service forwards chat completion requests to an OpenAI-compatible upstream.
// The body passes through untouched in both directions so the client can use
// any model parameters (including streaming) the upstream supports.
type Service struct {
	UpstreamURL string
	APIKey      string
	Client      *http.Client
}

func NewService(upstreamURL, apiKey string) *Service {
	return &Service{
		UpstreamURL: upstreamURL,
		APIKey:      apiKey,
		Client:      &http.Client{Timeout: 5 * time.Minute},
	}
}

func (s *Service) CompletionHandler(w http.ResponseWriter, r *http.Request) {
	if s.UpstreamURL == "" {
		utils.RespondError(w, http.StatusServiceUnavailable, "Chat upstream is not configured")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost,
		s.UpstreamURL+"/chat/completions", r.Body)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)

	// Headers are already out, so a mid-stream failure can't change the
	// response; log it so truncated streams can be traced.
	if _, err := io.Copy(flushWriter{w}, resp.Body); err != nil {
		requestID, _ := utils.GetRequestIDFromContext(r.Context())
		log.Printf("chat proxy: stream copy aborted (request %s): %v", requestID, err)
	}
}

// flushWriter pushes each chunk out immediately so server-sent-event streams
// reach the client as they arrive.
type flushWriter struct {
	w http.ResponseWriter
}

func (fw flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if f, ok := fw.w.(http.Flusher); ok {
		f.Flush()
	}
	return n, err
}

func (s *Service) SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.CompletionHandler)
	return r
}
