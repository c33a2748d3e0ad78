package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cropwatch/entities"
	"cropwatch/pkg/vegetation"
)

type openAI struct {
	endpoint string
	key      string
	model    string
	fallback Client
}

// NewOpenAI talks to any OpenAI-compatible chat endpoint. Every failure
// degrades to the mock's deterministic text so analysis never blocks on the
// advice provider.
func NewOpenAI(endpoint, key, model string) Client {
	return &openAI{endpoint: endpoint, key: key, model: model, fallback: NewMock()}
}

func (c *openAI) Advise(f *entities.Field, eval entities.HealthEvaluation, diag vegetation.Diagnosis) string {
	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are an agronomist who writes concise, actionable field advice in plain language."},
			{"role": "user", "content": renderAdvisePrompt(f, eval, diag)},
		},
		"temperature": 0.2,
	}

	b, _ := json.Marshal(reqBody)
	httpc := &http.Client{Timeout: 25 * time.Second}
	req, _ := http.NewRequest("POST", strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		return c.fallback.Advise(f, eval, diag)
	}
	defer resp.Body.Close()

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Choices) == 0 {
		return c.fallback.Advise(f, eval, diag)
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return c.fallback.Advise(f, eval, diag)
	}
	return content
}

func renderAdvisePrompt(f *entities.Field, eval entities.HealthEvaluation, diag vegetation.Diagnosis) string {
	return fmt.Sprintf(`
Write short, practical advice (max 6 lines) for the farmer managing this field.
- State what the index readings mean for the crop.
- Give concrete next steps; avoid generic phrasing.

FIELD: name=%q crop=%q memo=%q

READINGS: NDVI=%s NDMI=%s NDRE=%s overall=%s

DIAGNOSIS: issues=%v actions=%v
`, f.Name, f.Crop, f.Memo,
		eval.NDVI.Status, eval.NDMI.Status, eval.NDRE.Status, diag.Overall,
		diag.Issues, diag.Actions)
}
