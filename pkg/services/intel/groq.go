package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	DefaultGroqURL   = "https://api.groq.com"
	DefaultGroqModel = "llama-3.3-70b-versatile"

	completionTemperature = 0.3
	completionMaxTokens   = 3000
)

// GroqClient generates buying briefs via Groq's OpenAI-compatible chat
// completions endpoint.
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *retryablehttp.Client
	limiter *rate.Limiter
}

type Option func(*GroqClient)

func WithBaseURL(url string) Option {
	return func(c *GroqClient) { c.baseURL = url }
}

func WithModel(model string) Option {
	return func(c *GroqClient) { c.model = model }
}

func NewGroqClient(apiKey string, opts ...Option) *GroqClient {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil
	client.HTTPClient.Timeout = 30 * time.Second

	c := &GroqClient{
		apiKey:  apiKey,
		baseURL: DefaultGroqURL,
		model:   DefaultGroqModel,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// briefDocument mirrors the JSON structure the system prompt demands.
type briefDocument struct {
	BuyScore struct {
		Score    int    `json:"score"`
		Label    string `json:"label"`
		OneLiner string `json:"one_liner"`
	} `json:"buy_score"`
	AtAGlance struct {
		BestThing       string `json:"best_thing"`
		KnowBeforeYouGo string `json:"know_before_you_go"`
	} `json:"at_a_glance"`
	MarketIntel struct {
		Summary       string   `json:"summary"`
		PricePosition string   `json:"price_position"`
		ValueFactors  []string `json:"value_factors"`
	} `json:"market_intel"`
	WhatToKnow struct {
		GenerationOverview string `json:"generation_overview"`
		KnownQuirks        []struct {
			Item     string `json:"item"`
			Severity string `json:"severity"`
			Context  string `json:"context"`
			WhatToDo string `json:"what_to_do"`
		} `json:"known_quirks"`
		MaintenanceUpcoming []struct {
			Service     string `json:"service"`
			TypicalCost string `json:"typical_cost"`
			Urgency     string `json:"urgency"`
		} `json:"maintenance_upcoming"`
	} `json:"what_to_know"`
	GamePlan struct {
		BeforeYouVisit []string `json:"before_you_visit"`
		AtTheDealer    []struct {
			Ask      string `json:"ask"`
			Why      string `json:"why"`
			GoodSign string `json:"good_sign"`
			HeadsUp  string `json:"heads_up"`
		} `json:"at_the_dealer"`
		OnTheTestDrive []string `json:"on_the_test_drive"`
		AtTheDesk      struct {
			ExpectedOTD    string   `json:"expected_otd"`
			FeesToExpect   []string `json:"fees_to_expect"`
			FeesToQuestion []string `json:"fees_to_question"`
			FinancingTip   string   `json:"financing_tip"`
		} `json:"at_the_desk"`
	} `json:"your_game_plan"`
	CostToOwn struct {
		MonthlyFuel       string `json:"monthly_fuel"`
		AnnualInsurance   string `json:"annual_insurance_range"`
		AnnualMaintenance string `json:"annual_maintenance"`
		TotalAnnual       string `json:"total_annual_estimate"`
		Verdict           string `json:"ownership_verdict"`
	} `json:"cost_to_own"`
	ProTips []string `json:"pro_tips"`
}

// GenerateBrief asks the model for a complete buying brief built from
// everything the pipeline has fetched.
func (c *GroqClient) GenerateBrief(
	ctx context.Context,
	vehicle domain.VehicleProfile,
	comps *domain.MarketComps,
	safety *domain.SafetyRecord,
	listingText string,
) (*domain.Brief, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: groq API key not configured", domain.ErrUnauthorized)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Analyze this vehicle listing and generate a complete buyer intelligence brief:\n\n" +
				buildContext(vehicle, comps, safety, listingText)},
		},
		Temperature:    completionTemperature,
		MaxTokens:      completionMaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/openai/v1/chat/completions", body)
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: groq call failed: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: groq rejected the API key", domain.ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: groq returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode groq response: %v", domain.ErrUpstreamUnavailable, err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("%w: groq returned no choices", domain.ErrUpstreamUnavailable)
	}

	var doc briefDocument
	if err := json.Unmarshal([]byte(decoded.Choices[0].Message.Content), &doc); err != nil {
		return nil, fmt.Errorf("%w: model returned malformed brief JSON: %v", domain.ErrUpstreamUnavailable, err)
	}
	if doc.BuyScore.Score < 1 || doc.BuyScore.Score > 10 {
		return nil, fmt.Errorf("%w: model returned buy score %d outside 1-10", domain.ErrUpstreamUnavailable, doc.BuyScore.Score)
	}

	return mapBrief(doc), nil
}

func mapBrief(doc briefDocument) *domain.Brief {
	brief := &domain.Brief{
		Score: domain.BuyScore{
			Score:    doc.BuyScore.Score,
			Label:    doc.BuyScore.Label,
			OneLiner: doc.BuyScore.OneLiner,
		},
		Glance: domain.AtAGlance{
			BestThing:       doc.AtAGlance.BestThing,
			KnowBeforeYouGo: doc.AtAGlance.KnowBeforeYouGo,
		},
		MarketSummary:      doc.MarketIntel.Summary,
		PricePosition:      domain.PricePosition(doc.MarketIntel.PricePosition),
		ValueFactors:       doc.MarketIntel.ValueFactors,
		GenerationOverview: doc.WhatToKnow.GenerationOverview,
		PrepSteps:          doc.GamePlan.BeforeYouVisit,
		TestDrive:          doc.GamePlan.OnTheTestDrive,
		Negotiation: &domain.NegotiationStrategy{
			ExpectedOTD:    doc.GamePlan.AtTheDesk.ExpectedOTD,
			FeesToExpect:   doc.GamePlan.AtTheDesk.FeesToExpect,
			FeesToQuestion: doc.GamePlan.AtTheDesk.FeesToQuestion,
			FinancingTip:   doc.GamePlan.AtTheDesk.FinancingTip,
		},
		CostToOwn: &domain.CostToOwn{
			MonthlyFuel:       doc.CostToOwn.MonthlyFuel,
			AnnualInsurance:   doc.CostToOwn.AnnualInsurance,
			AnnualMaintenance: doc.CostToOwn.AnnualMaintenance,
			TotalAnnual:       doc.CostToOwn.TotalAnnual,
			Verdict:           doc.CostToOwn.Verdict,
		},
		ProTips: doc.ProTips,
	}

	for _, quirk := range doc.WhatToKnow.KnownQuirks {
		brief.KnownIssues = append(brief.KnownIssues, domain.KnownIssue{
			Item:     quirk.Item,
			Severity: domain.IssueSeverity(quirk.Severity),
			Context:  quirk.Context,
			WhatToDo: quirk.WhatToDo,
		})
	}
	for _, item := range doc.WhatToKnow.MaintenanceUpcoming {
		brief.Maintenance = append(brief.Maintenance, domain.MaintenanceItem{
			Service:     item.Service,
			TypicalCost: item.TypicalCost,
			Urgency:     item.Urgency,
		})
	}
	for _, q := range doc.GamePlan.AtTheDealer {
		brief.SmartQuestions = append(brief.SmartQuestions, domain.SmartQuestion{
			Ask:      q.Ask,
			Why:      q.Why,
			GoodSign: q.GoodSign,
			HeadsUp:  q.HeadsUp,
		})
	}

	return brief
}
