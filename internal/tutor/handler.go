package tutor

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/san-kum/chemlab/internal/observability"
)

const maxBodyBytes = 64 << 10

type errorBody struct {
	Error string `json:"error"`
}

type hintsBody struct {
	KnowledgeID string   `json:"knowledgeId"`
	Hints       []string `json:"hints"`
}

type healthBody struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// HandleAsk serves POST /api/ai/tutor. Only malformed requests are
// rejected; every well-formed question gets an answer.
func (t *Tutor) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		t.collector.ObserveRequest(observability.OutcomeInvalid)
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		t.collector.ObserveRequest(observability.OutcomeInvalid)
		WriteError(w, http.StatusBadRequest, "question is required")
		return
	}

	writeJSON(w, http.StatusOK, t.Ask(r.Context(), req))
}

// HandleHints serves GET /api/hints?knowledgeId=...
func HandleHints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := r.URL.Query().Get("knowledgeId")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "knowledgeId is required")
		return
	}
	writeJSON(w, http.StatusOK, hintsBody{KnowledgeID: id, Hints: Hints(id)})
}

func (t *Tutor) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{
		Status:    "ok",
		Service:   "chemlab",
		Timestamp: t.now().UTC().Format(time.RFC3339),
	})
}
