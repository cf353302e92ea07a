// Package tutor answers free-text chemistry questions through an
// OpenAI-compatible chat completion API, falling back to a local preset
// table whenever the upstream cannot be used.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/san-kum/chemlab/internal/logging"
	"github.com/san-kum/chemlab/internal/observability"
)

const (
	DefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	DefaultModel   = "qwen-turbo"
	DefaultTimeout = 15 * time.Second

	maxTokens   = 800
	temperature = 0.7
)

var ErrNoCredential = errors.New("tutor: no API key")

// Request is the body of a tutoring call. Context is passed to the model
// verbatim.
type Request struct {
	Question    string          `json:"question"`
	KnowledgeID string          `json:"knowledgeId"`
	Context     json.RawMessage `json:"context,omitempty"`
	APIKey      string          `json:"apiKey,omitempty"`
}

type Answer struct {
	Success     bool   `json:"success"`
	Answer      string `json:"answer"`
	KnowledgeID string `json:"knowledgeId"`
	IsPreset    bool   `json:"isPreset"`
}

// Upstream produces a completion for one question.
type Upstream interface {
	Complete(ctx context.Context, apiKey, system, question string) (string, error)
}

type OpenAIUpstream struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOpenAIUpstream(baseURL, model string, client *http.Client) *OpenAIUpstream {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenAIUpstream{baseURL: baseURL, model: model, client: client}
}

func (u *OpenAIUpstream) Complete(ctx context.Context, apiKey, system, question string) (string, error) {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(u.baseURL),
		option.WithHTTPClient(u.client),
		option.WithMaxRetries(0),
	)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(u.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(question),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

type Option func(*Tutor)

func WithLogger(l logging.Logger) Option {
	return func(t *Tutor) { t.logger = logging.OrNoop(l) }
}

func WithCollector(c *observability.TutorCollector) Option {
	return func(t *Tutor) { t.collector = c }
}

func WithTimeout(d time.Duration) Option {
	return func(t *Tutor) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithDefaultKey sets a server-side credential used when a request carries
// none.
func WithDefaultKey(key string) Option {
	return func(t *Tutor) { t.defaultKey = key }
}

type Tutor struct {
	upstream   Upstream
	timeout    time.Duration
	defaultKey string
	logger     logging.Logger
	collector  *observability.TutorCollector
	now        func() time.Time
}

func New(upstream Upstream, opts ...Option) *Tutor {
	t := &Tutor{
		upstream: upstream,
		timeout:  DefaultTimeout,
		logger:   logging.Noop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SystemPrompt frames the model as a high-school chemistry teacher for the
// given topic.
func SystemPrompt(knowledgeID string, extra json.RawMessage) string {
	ctxText := "null"
	if len(extra) > 0 {
		ctxText = string(extra)
	}
	var sb strings.Builder
	sb.WriteString("你是一位专业的高中化学老师，正在辅导学生学习化学知识。\n")
	sb.WriteString("当前知识点：" + Name(knowledgeID) + "\n\n")
	sb.WriteString("请根据学生的问题，提供清晰、准确的化学知识解答。\n")
	sb.WriteString("- 使用简洁易懂的语言\n")
	sb.WriteString("- 结合具体例子和化学方程式解释原理\n")
	sb.WriteString("- 适当使用专业术语，但要解释其含义\n")
	sb.WriteString("- 鼓励学生思考和探索\n")
	sb.WriteString("- 如果涉及实验，说明实验原理和注意事项\n")
	sb.WriteString("- 如果涉及计算，给出详细的解题步骤\n\n")
	sb.WriteString("上下文信息：" + ctxText)
	return sb.String()
}

// Ask always returns an answer. Upstream failures, timeouts and a missing
// credential fall back to the preset table.
func (t *Tutor) Ask(ctx context.Context, req Request) Answer {
	key := req.APIKey
	if key == "" {
		key = t.defaultKey
	}

	text, err := t.complete(ctx, key, req)
	if err != nil {
		t.logger.Warn(ctx, "tutor upstream unavailable, answering from presets",
			logging.String("knowledge_id", req.KnowledgeID),
			logging.Err(err),
		)
		t.collector.ObserveRequest(observability.OutcomePreset)
		return Answer{
			Success:     true,
			Answer:      PresetAnswer(req.KnowledgeID, req.Question),
			KnowledgeID: req.KnowledgeID,
			IsPreset:    true,
		}
	}

	t.collector.ObserveRequest(observability.OutcomeUpstream)
	if strings.TrimSpace(text) == "" {
		text = emptyAnswer
	}
	return Answer{Success: true, Answer: text, KnowledgeID: req.KnowledgeID}
}

func (t *Tutor) complete(ctx context.Context, key string, req Request) (string, error) {
	if key == "" {
		return "", ErrNoCredential
	}
	if t.upstream == nil {
		return "", errors.New("tutor: no upstream configured")
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := t.now()
	text, err := t.upstream.Complete(ctx, key, SystemPrompt(req.KnowledgeID, req.Context), req.Question)
	t.collector.ObserveUpstream(t.now().Sub(start))
	if err != nil {
		return "", redact(err, key)
	}
	return text, nil
}

// redact strips the credential from upstream error text before it is
// logged.
func redact(err error, key string) error {
	msg := err.Error()
	if !strings.Contains(msg, key) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, key, "[redacted]"))
}
