package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"mortgage-agent/domain"
)

type AIService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewAIService creates an AIService. With an empty apiKey every explanation
// is produced locally.
func NewAIService(apiKey string) *AIService {
	return &AIService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		model:   "gpt-4o-mini",
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ExplainProjection describes which financing strategy ends with the highest
// net equity and what it costs in interest.
func (s *AIService) ExplainProjection(ctx context.Context, result domain.ProjectionResult) string {
	if result.Comparison == nil {
		return "No scenario could be computed for these inputs."
	}
	if !s.enabled {
		return s.fallbackExplanation(result)
	}

	explanation, err := s.callLLM(ctx, s.projectionPrompt(result))
	if err != nil {
		log.Printf("Error calling AI service for projection: %v", err)
		return s.fallbackExplanation(result)
	}
	return explanation
}

func (s *AIService) projectionPrompt(result domain.ProjectionResult) string {
	var ranking strings.Builder
	for i, r := range result.Comparison.Ranking {
		fmt.Fprintf(&ranking, "%d. %s: final net equity %.2f, total interest %.2f\n",
			i+1, describeScenario(r.Scenario), r.FinalNetEquity, r.TotalInterest)
	}

	in := result.Input
	return fmt.Sprintf(`Compare these property financing strategies and explain the outcome in 3-4 sentences.

INPUTS:
- Property value: %.2f, expected growth %.2f%% per year
- Loan amount: %.2f at %.2f%% over %d years
- ETF start value: %.2f, dividend yield %.2f%%

RANKING BY FINAL NET EQUITY:
%s
Explain why the best strategy wins, what the trade-off in interest paid is, and note that the projection assumes constant rates.`,
		in.PropertyValue, in.PropertyGrowthRate,
		result.LoanAmount, in.InterestRate, in.TermYears,
		in.ETFInitialValue, in.DividendYield,
		ranking.String())
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a financial advisor explaining mortgage and index fund projections. You are precise with numbers and never promise returns.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

func (s *AIService) fallbackExplanation(result domain.ProjectionResult) string {
	ranking := result.Comparison.Ranking
	best := ranking[0]

	text := fmt.Sprintf("After %d years the %s strategy ends with the highest net equity (%.2f) and pays %.2f in interest.",
		result.Input.TermYears, describeScenario(best.Scenario), best.FinalNetEquity, best.TotalInterest)
	if len(ranking) > 1 {
		runnerUp := ranking[1]
		text += fmt.Sprintf(" It is %.2f ahead of the %s strategy.",
			best.FinalNetEquity-runnerUp.FinalNetEquity, describeScenario(runnerUp.Scenario))
	}
	return text
}

func describeScenario(kind domain.ScenarioKind) string {
	switch kind {
	case domain.ScenarioExtraPayment:
		return "extra payment"
	case domain.ScenarioParallelETF:
		return "loan with parallel ETF"
	case domain.ScenarioDividendPaydown:
		return "dividend-funded paydown"
	}
	return kind.String()
}
