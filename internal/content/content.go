// Package content proxies third-party wellness content (quotes, recipes,
// tips). Upstream faults never surface to clients: every fetch degrades to a
// fixed fallback payload, and a circuit breaker keeps a flapping upstream
// from slowing the journal endpoints down.
package content

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// Quote mirrors the ZenQuotes payload shape.
type Quote struct {
	Text   string `json:"q"`
	Author string `json:"a"`
}

// Tip mirrors the advice-slip payload shape.
type Tip struct {
	Advice string `json:"advice"`
}

// RecipeHit mirrors one hit of the Edamam search response.
type RecipeHit struct {
	Recipe Recipe `json:"recipe"`
}

type Recipe struct {
	Label       string   `json:"label"`
	Image       string   `json:"image"`
	Calories    float64  `json:"calories"`
	Ingredients []string `json:"ingredients"`
}

// Config points the proxy at its upstreams.
type Config struct {
	QuotesURL     string
	AdviceURL     string
	RecipesURL    string
	RecipesAppID  string
	RecipesAppKey string
	Timeout       time.Duration
}

const tipCount = 5

// Service fetches external content with per-upstream circuit breakers.
type Service struct {
	client *resty.Client
	cfg    Config
	log    zerolog.Logger

	quotesCB  *gobreaker.CircuitBreaker[[]Quote]
	recipesCB *gobreaker.CircuitBreaker[[]RecipeHit]
	tipsCB    *gobreaker.CircuitBreaker[[]Tip]
}

func NewService(cfg Config, log zerolog.Logger) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	breaker := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
		}
	}
	return &Service{
		client:    resty.New().SetTimeout(cfg.Timeout),
		cfg:       cfg,
		log:       log,
		quotesCB:  gobreaker.NewCircuitBreaker[[]Quote](breaker("quotes")),
		recipesCB: gobreaker.NewCircuitBreaker[[]RecipeHit](breaker("recipes")),
		tipsCB:    gobreaker.NewCircuitBreaker[[]Tip](breaker("tips")),
	}
}

// Quotes returns live quotes or the fallback set. The second return reports
// whether the fallback was served.
func (s *Service) Quotes(ctx context.Context) ([]Quote, bool) {
	out, err := s.quotesCB.Execute(func() ([]Quote, error) {
		return s.fetchQuotes(ctx)
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("quotes upstream unavailable, serving fallback")
		return fallbackQuotes(), true
	}
	return out, false
}

// Recipes searches recipes for the given query ("healthy" when empty).
func (s *Service) Recipes(ctx context.Context, query string) ([]RecipeHit, bool) {
	if query == "" {
		query = "healthy"
	}
	out, err := s.recipesCB.Execute(func() ([]RecipeHit, error) {
		return s.fetchRecipes(ctx, query)
	})
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("recipes upstream unavailable, serving fallback")
		return fallbackRecipes(), true
	}
	return out, false
}

// WellnessTips returns a handful of live tips or the fallback set.
func (s *Service) WellnessTips(ctx context.Context) ([]Tip, bool) {
	out, err := s.tipsCB.Execute(func() ([]Tip, error) {
		return s.fetchTips(ctx)
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("advice upstream unavailable, serving fallback")
		return fallbackTips(), true
	}
	return out, false
}

func (s *Service) fetchQuotes(ctx context.Context) ([]Quote, error) {
	var out []Quote
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get(s.cfg.QuotesURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("quotes upstream status %d", resp.StatusCode())
	}
	return out, nil
}

func (s *Service) fetchRecipes(ctx context.Context, query string) ([]RecipeHit, error) {
	var out struct {
		Hits []RecipeHit `json:"hits"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":       query,
			"app_id":  s.cfg.RecipesAppID,
			"app_key": s.cfg.RecipesAppKey,
			"to":      "5",
		}).
		SetResult(&out).
		Get(s.cfg.RecipesURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("recipes upstream status %d", resp.StatusCode())
	}
	if out.Hits == nil {
		out.Hits = []RecipeHit{}
	}
	return out.Hits, nil
}

func (s *Service) fetchTips(ctx context.Context) ([]Tip, error) {
	tips := make([]Tip, 0, tipCount)
	for i := 0; i < tipCount; i++ {
		var out struct {
			Slip Tip `json:"slip"`
		}
		resp, err := s.client.R().
			SetContext(ctx).
			SetResult(&out).
			Get(s.cfg.AdviceURL)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("advice upstream status %d", resp.StatusCode())
		}
		tips = append(tips, out.Slip)
	}
	return tips, nil
}
