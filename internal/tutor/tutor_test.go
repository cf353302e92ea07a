package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/chemlab/internal/observability"
)

type fakeUpstream struct {
	answer string
	err    error
	block  bool

	calls    int
	lastKey  string
	lastSys  string
	lastText string
}

func (f *fakeUpstream) Complete(ctx context.Context, apiKey, system, question string) (string, error) {
	f.calls++
	f.lastKey, f.lastSys, f.lastText = apiKey, system, question
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.answer, f.err
}

func TestPresetAnswer(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		question string
		want     string
	}{
		{"keyword", "atom-structure", "质子有什么作用？", "质子数等于原子序数，决定元素的种类。质子数相同的原子属于同一种元素。"},
		{"first keyword wins", "covalent-bond", "极性键是怎么形成的", "极性共价键：共用电子对偏向电负性大的原子；非极性共价键：共用电子对不偏移。"},
		{"topic default", "chemical-equilibrium", "什么是平衡？", presets["chemical-equilibrium"].fallback},
		{"unknown topic", "benzene", "苯环稳定吗", genericAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PresetAnswer(tt.id, tt.question); got != tt.want {
				t.Errorf("PresetAnswer(%q, %q) = %q, want %q", tt.id, tt.question, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	if Name("titration") != "酸碱中和滴定" {
		t.Errorf("unexpected name %q", Name("titration"))
	}
	if Name("nope") != genericName {
		t.Errorf("unknown topic should use the generic name")
	}
}

func TestHints(t *testing.T) {
	if len(Hints("galvanic-cell")) != 4 {
		t.Error("expected 4 galvanic-cell hints")
	}
	h := Hints("nope")
	if len(h) != 3 {
		t.Fatalf("expected 3 generic hints, got %d", len(h))
	}
	h[0] = "changed"
	if genericHints[0] == "changed" {
		t.Error("Hints must return a copy")
	}
}

func TestAsk_Upstream(t *testing.T) {
	up := &fakeUpstream{answer: "Le Chatelier"}
	tu := New(up, WithDefaultKey("server-key"))

	ans := tu.Ask(context.Background(), Request{
		Question:    "平衡怎么移动？",
		KnowledgeID: "chemical-equilibrium",
		Context:     json.RawMessage(`{"temperature":50}`),
	})

	if ans.IsPreset || ans.Answer != "Le Chatelier" || !ans.Success {
		t.Errorf("unexpected answer %+v", ans)
	}
	if up.lastKey != "server-key" {
		t.Errorf("expected server key, got %q", up.lastKey)
	}
	if !strings.Contains(up.lastSys, "化学平衡") || !strings.Contains(up.lastSys, `{"temperature":50}`) {
		t.Errorf("system prompt missing topic or context: %s", up.lastSys)
	}
}

func TestAsk_RequestKeyWins(t *testing.T) {
	up := &fakeUpstream{answer: "ok"}
	tu := New(up, WithDefaultKey("server-key"))
	tu.Ask(context.Background(), Request{Question: "q", APIKey: "user-key"})
	if up.lastKey != "user-key" {
		t.Errorf("expected request key, got %q", up.lastKey)
	}
}

func TestAsk_EmptyUpstreamAnswer(t *testing.T) {
	tu := New(&fakeUpstream{answer: "  "}, WithDefaultKey("k"))
	ans := tu.Ask(context.Background(), Request{Question: "q"})
	if ans.Answer != emptyAnswer || ans.IsPreset {
		t.Errorf("unexpected answer %+v", ans)
	}
}

func TestAsk_Fallback(t *testing.T) {
	tests := []struct {
		name string
		up   *fakeUpstream
		key  string
	}{
		{"no credential", &fakeUpstream{answer: "unused"}, ""},
		{"upstream error", &fakeUpstream{err: errors.New("502 bad gateway")}, "k"},
		{"timeout", &fakeUpstream{block: true}, "k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			collector, err := observability.NewTutorCollector(reg)
			if err != nil {
				t.Fatal(err)
			}
			tu := New(tt.up, WithTimeout(20*time.Millisecond), WithCollector(collector))

			ans := tu.Ask(context.Background(), Request{
				Question:    "原电池的条件是什么",
				KnowledgeID: "galvanic-cell",
				APIKey:      tt.key,
			})

			if !ans.IsPreset || !ans.Success {
				t.Errorf("expected preset answer, got %+v", ans)
			}
			if ans.Answer != "原电池形成条件：①两种活泼性不同的电极 ②电解质溶液 ③形成闭合回路" {
				t.Errorf("unexpected preset %q", ans.Answer)
			}
			if got := testutil.ToFloat64(collector.Requests.WithLabelValues(observability.OutcomePreset)); got != 1 {
				t.Errorf("expected 1 preset outcome, got %v", got)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	err := redact(errors.New("401 for key sk-secret"), "sk-secret")
	if strings.Contains(err.Error(), "sk-secret") {
		t.Errorf("key leaked: %v", err)
	}
	orig := errors.New("plain")
	if redact(orig, "sk-secret") != orig {
		t.Error("errors without the key should pass through")
	}
}

func TestOpenAIUpstream(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"qwen-turbo",
"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"电子从负极流向正极"}}]}`)
	}))
	defer srv.Close()

	up := NewOpenAIUpstream(srv.URL+"/v1", "", srv.Client())
	text, err := up.Complete(context.Background(), "sk-test", "system", "电子怎么流动")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "电子从负极流向正极" {
		t.Errorf("unexpected text %q", text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotBody["model"] != DefaultModel || gotBody["max_tokens"] != float64(800) || gotBody["temperature"] != 0.7 {
		t.Errorf("unexpected request body %v", gotBody)
	}
}

func TestOpenAIUpstream_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	up := NewOpenAIUpstream(srv.URL+"/v1", "", srv.Client())
	if _, err := up.Complete(context.Background(), "sk-test", "s", "q"); err == nil {
		t.Error("expected error on 401")
	}
}

func TestHandleAsk(t *testing.T) {
	tu := New(&fakeUpstream{err: errors.New("down")}, WithDefaultKey("k"))

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"ok", http.MethodPost, `{"question":"离子键如何形成","knowledgeId":"ionic-bond"}`, http.StatusOK},
		{"bad json", http.MethodPost, `{`, http.StatusBadRequest},
		{"empty question", http.MethodPost, `{"question":" "}`, http.StatusBadRequest},
		{"wrong method", http.MethodGet, ``, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/ai/tutor", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			tu.HandleAsk(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
			if tt.status != http.StatusOK {
				return
			}
			var ans Answer
			if err := json.NewDecoder(rec.Body).Decode(&ans); err != nil {
				t.Fatal(err)
			}
			if !ans.IsPreset || !strings.HasPrefix(ans.Answer, "离子键形成过程") {
				t.Errorf("unexpected answer %+v", ans)
			}
		})
	}
}

func TestHandleHints(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHints(rec, httptest.NewRequest(http.MethodGet, "/api/hints?knowledgeId=ionic-bond", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body hintsBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.KnowledgeID != "ionic-bond" || len(body.Hints) != 4 {
		t.Errorf("unexpected hints %+v", body)
	}

	rec = httptest.NewRecorder()
	HandleHints(rec, httptest.NewRequest(http.MethodGet, "/api/hints", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without knowledgeId, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	tu := New(nil)
	tu.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	rec := httptest.NewRecorder()
	tu.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var body healthBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Timestamp != "2024-01-02T03:04:05Z" {
		t.Errorf("unexpected health %+v", body)
	}
}
