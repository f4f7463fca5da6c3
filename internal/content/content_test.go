package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(cfg Config) *Service {
	cfg.Timeout = 2 * time.Second
	return NewService(cfg, zerolog.Nop())
}

func TestQuotes_Live(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"q":"Be here now.","a":"Ram Dass"}]`))
	}))
	defer upstream.Close()

	svc := testService(Config{QuotesURL: upstream.URL})
	out, fallback := svc.Quotes(context.Background())

	assert.False(t, fallback)
	require.Len(t, out, 1)
	assert.Equal(t, "Be here now.", out[0].Text)
	assert.Equal(t, "Ram Dass", out[0].Author)
}

func TestQuotes_UpstreamErrorServesFallback(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	svc := testService(Config{QuotesURL: upstream.URL})
	out, fallback := svc.Quotes(context.Background())

	assert.True(t, fallback)
	assert.Equal(t, fallbackQuotes(), out)
	assert.NotEmpty(t, out)
}

func TestQuotes_UnreachableServesFallback(t *testing.T) {
	svc := testService(Config{QuotesURL: "http://127.0.0.1:1"})
	out, fallback := svc.Quotes(context.Background())

	assert.True(t, fallback)
	assert.Equal(t, fallbackQuotes(), out)
}

func TestRecipes_Live(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hits":[{"recipe":{"label":"Lentil Soup","image":"","calories":320,"ingredients":["lentils","carrots"]}}]}`))
	}))
	defer upstream.Close()

	svc := testService(Config{RecipesURL: upstream.URL, RecipesAppID: "id", RecipesAppKey: "key"})
	out, fallback := svc.Recipes(context.Background(), "soup")

	assert.False(t, fallback)
	assert.Equal(t, "soup", gotQuery)
	require.Len(t, out, 1)
	assert.Equal(t, "Lentil Soup", out[0].Recipe.Label)
}

func TestRecipes_DefaultQuery(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"hits":[]}`))
	}))
	defer upstream.Close()

	svc := testService(Config{RecipesURL: upstream.URL})
	out, fallback := svc.Recipes(context.Background(), "")

	assert.False(t, fallback)
	assert.Equal(t, "healthy", gotQuery)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRecipes_UpstreamErrorServesFallback(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	svc := testService(Config{RecipesURL: upstream.URL})
	out, fallback := svc.Recipes(context.Background(), "soup")

	assert.True(t, fallback)
	assert.Equal(t, fallbackRecipes(), out)
}

func TestWellnessTips_Live(t *testing.T) {
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"slip":{"advice":"Drink water."}}`))
	}))
	defer upstream.Close()

	svc := testService(Config{AdviceURL: upstream.URL})
	out, fallback := svc.WellnessTips(context.Background())

	assert.False(t, fallback)
	assert.Equal(t, tipCount, calls)
	require.Len(t, out, tipCount)
	assert.Equal(t, "Drink water.", out[0].Advice)
}

func TestWellnessTips_UpstreamErrorServesFallback(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	svc := testService(Config{AdviceURL: upstream.URL})
	out, fallback := svc.WellnessTips(context.Background())

	assert.True(t, fallback)
	assert.Equal(t, fallbackTips(), out)
}

func TestBreaker_OpensAfterRepeatedFailures(t *testing.T) {
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	svc := testService(Config{QuotesURL: upstream.URL})
	for i := 0; i < 10; i++ {
		_, fallback := svc.Quotes(context.Background())
		assert.True(t, fallback)
	}
	// Once the breaker opens the upstream stops being hit.
	assert.Less(t, calls, 10)
}
