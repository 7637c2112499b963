package analyze

import "context"

// Sentiment is the tone verdict for one message. Scores sum to roughly 1.0;
// the provider does not guarantee it and nothing here enforces it.
type Sentiment struct {
	Label    string  `json:"label"` // "positive", "neutral" or "negative"
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// PIIEntity marks a span of potentially confidential text, e.g. an email
// address or card number.
type PIIEntity struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Result carries the four sub-analyses for one message. Each field is
// independently optional: a sub-call that failed leaves its slot absent
// without touching the others.
type Result struct {
	Sentiment   *Sentiment  `json:"sentiment,omitempty"`
	KeyPhrases  []string    `json:"key_phrases,omitempty"`
	Language    string      `json:"language,omitempty"`
	PIIEntities []PIIEntity `json:"pii_entities,omitempty"`
}

// SentimentLabel returns the sentiment label, or "neutral" when the sentiment
// slot is absent.
func (r Result) SentimentLabel() string {
	if r.Sentiment == nil || r.Sentiment.Label == "" {
		return "neutral"
	}
	return r.Sentiment.Label
}

// Analyzer is the NLP provider contract. Analyze returns an error only when
// the whole call failed; partial provider failures surface as absent Result
// slots instead.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Result, error)
}
