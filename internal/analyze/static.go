package analyze

import "context"

// StaticProvider is the offline analyzer: neutral sentiment, nothing else.
// Useful for local runs without Azure credentials.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider { return &StaticProvider{} }

func (p *StaticProvider) Analyze(ctx context.Context, text string) (Result, error) {
	_ = ctx
	_ = text
	return Result{
		Sentiment: &Sentiment{Label: "neutral", Neutral: 1},
	}, nil
}
