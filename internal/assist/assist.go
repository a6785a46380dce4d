// Package assist turns a natural-language sentence into a candidate
// transaction through an external text-understanding model. Failures
// of any shape resolve to "no result"; they never propagate as errors
// and the adapter never touches a store.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"financeiro/internal/core"
)

const (
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 5 * time.Second
)

// Suggestion is the candidate record the model extracted. The caller
// decides whether to persist it; nothing here is pre-validated.
type Suggestion struct {
	Name   string
	Amount decimal.Decimal
	Date   string
}

// generator is the one call the adapter makes to the outside world.
// Tests stub it; production wires Gemini.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// Adapter interprets free text. A nil Adapter is valid and always
// yields no result, which is how the app runs without an API key.
type Adapter struct {
	gen     generator
	timeout time.Duration
	now     func() time.Time
}

// New builds an adapter over a Gemini client.
func New(client *genai.Client, model string, timeout time.Duration) *Adapter {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Adapter{
		gen:     &geminiGenerator{client: client, model: model},
		timeout: timeout,
		now:     time.Now,
	}
}

// Interpret extracts {name, amount, date} from a sentence. Network
// failure, timeout, malformed or incomplete responses all return nil.
// The call is bounded by the adapter's timeout and holds no locks.
func (a *Adapter) Interpret(ctx context.Context, text string) *Suggestion {
	if a == nil || strings.TrimSpace(text) == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	today := core.DateOf(a.now())
	prompt := fmt.Sprintf(
		"Extract name, amount and date from this sentence: %q.\n"+
			"Reply with ONLY a JSON object with exactly these keys:\n"+
			"\"name\" (string), \"amount\" (number), \"date\" (string, dd/mm/yyyy).\n"+
			"If the sentence gives no date, use %s.\n"+
			"No markdown, no code fences, no extra text.",
		text, today)

	raw, err := a.gen.generate(ctx, prompt)
	if err != nil {
		slog.WarnContext(ctx, "Assist request failed", "error", err)
		return nil
	}

	var payload struct {
		Name   string   `json:"name"`
		Amount *float64 `json:"amount"`
		Date   string   `json:"date"`
	}
	if err := json.Unmarshal([]byte(extractObject(raw)), &payload); err != nil {
		slog.WarnContext(ctx, "Assist response not decodable", "error", err)
		return nil
	}
	if strings.TrimSpace(payload.Name) == "" || payload.Amount == nil {
		slog.DebugContext(ctx, "Assist response missing fields")
		return nil
	}

	date := payload.Date
	if _, ok := core.ParseDate(date); !ok {
		date = today
	}

	return &Suggestion{
		Name:   strings.TrimSpace(payload.Name),
		Amount: decimal.NewFromFloat(*payload.Amount).Round(2),
		Date:   date,
	}
}

// extractObject tolerates markdown fences and stray prose around the
// JSON body: everything outside the first '{' and the last '}' is
// dropped before decoding.
func extractObject(raw string) string {
	s := strings.TrimSpace(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("no model client configured")
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}
