package analyze

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newFakeAzure(t *testing.T, failTasks map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Ocp-Apim-Subscription-Key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		task := strings.TrimPrefix(r.URL.Path, "/text/analytics/v3.1/")
		if failTasks[task] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch task {
		case "sentiment":
			w.Write([]byte(`{"documents":[{"id":"1","sentiment":"negative",
				"confidenceScores":{"positive":0.05,"neutral":0.15,"negative":0.8}}]}`))
		case "keyPhrases":
			w.Write([]byte(`{"documents":[{"id":"1","keyPhrases":["wifi","home office"]}]}`))
		case "languages":
			w.Write([]byte(`{"documents":[{"id":"1","detectedLanguage":{"iso6391Name":"en"}}]}`))
		case "entities/recognition/pii":
			w.Write([]byte(`{"documents":[{"id":"1","entities":[{"category":"Email","text":"a@b.com"}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestAzureAnalyze_AllSlots(t *testing.T) {
	srv := newFakeAzure(t, nil)
	defer srv.Close()

	p := NewAzureProvider(srv.URL, "test-key", 5*time.Second)
	res, err := p.Analyze(context.Background(), "my wifi keeps dropping, mail me at a@b.com")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if res.Sentiment == nil || res.Sentiment.Label != "negative" {
		t.Fatalf("sentiment = %+v", res.Sentiment)
	}
	if len(res.KeyPhrases) != 2 || res.KeyPhrases[0] != "wifi" {
		t.Fatalf("key phrases = %v", res.KeyPhrases)
	}
	if res.Language != "en" {
		t.Fatalf("language = %q", res.Language)
	}
	if len(res.PIIEntities) != 1 || res.PIIEntities[0].Category != "Email" {
		t.Fatalf("pii = %v", res.PIIEntities)
	}
}

func TestAzureAnalyze_PartialFailure(t *testing.T) {
	srv := newFakeAzure(t, map[string]bool{
		"sentiment":                true,
		"entities/recognition/pii": true,
	})
	defer srv.Close()

	p := NewAzureProvider(srv.URL, "test-key", 5*time.Second)
	res, err := p.Analyze(context.Background(), "hello")
	if err != nil {
		t.Fatalf("partial failure should not error: %v", err)
	}

	if res.Sentiment != nil {
		t.Fatalf("failed slot should stay absent, got %+v", res.Sentiment)
	}
	if res.SentimentLabel() != "neutral" {
		t.Fatalf("absent sentiment should read as neutral, got %q", res.SentimentLabel())
	}
	if len(res.KeyPhrases) == 0 || res.Language != "en" {
		t.Fatalf("surviving slots lost: phrases=%v lang=%q", res.KeyPhrases, res.Language)
	}
	if len(res.PIIEntities) != 0 {
		t.Fatalf("pii should be absent, got %v", res.PIIEntities)
	}
}

func TestAzureAnalyze_TotalFailure(t *testing.T) {
	srv := newFakeAzure(t, map[string]bool{
		"sentiment":                true,
		"keyPhrases":               true,
		"languages":                true,
		"entities/recognition/pii": true,
	})
	defer srv.Close()

	p := NewAzureProvider(srv.URL, "test-key", 5*time.Second)
	if _, err := p.Analyze(context.Background(), "hello"); err == nil {
		t.Fatalf("expected an error when every slot fails")
	}
}

func TestStaticProvider(t *testing.T) {
	res, err := NewStaticProvider().Analyze(context.Background(), "whatever")
	if err != nil {
		t.Fatalf("static analyze: %v", err)
	}
	if res.SentimentLabel() != "neutral" {
		t.Fatalf("static sentiment = %q", res.SentimentLabel())
	}
	if len(res.KeyPhrases) != 0 || len(res.PIIEntities) != 0 {
		t.Fatalf("static provider should return nothing else: %+v", res)
	}
}
