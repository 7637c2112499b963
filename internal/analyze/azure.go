package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// AzureProvider calls the Azure Text Analytics v3.1 REST API. The four
// sub-analyses are issued concurrently and joined; each slot either lands in
// the Result or is dropped on its own failure.
type AzureProvider struct {
	Endpoint string
	Key      string
	Client   *http.Client
}

func NewAzureProvider(endpoint, key string, timeout time.Duration) *AzureProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AzureProvider{
		Endpoint: endpoint,
		Key:      key,
		Client:   &http.Client{Timeout: timeout},
	}
}

type azureDocReq struct {
	Documents []azureDoc `json:"documents"`
}

type azureDoc struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
}

type azureSentimentResp struct {
	Documents []struct {
		Sentiment        string `json:"sentiment"`
		ConfidenceScores struct {
			Positive float64 `json:"positive"`
			Neutral  float64 `json:"neutral"`
			Negative float64 `json:"negative"`
		} `json:"confidenceScores"`
	} `json:"documents"`
}

type azureKeyPhrasesResp struct {
	Documents []struct {
		KeyPhrases []string `json:"keyPhrases"`
	} `json:"documents"`
}

type azureLanguagesResp struct {
	Documents []struct {
		DetectedLanguage struct {
			ISO6391Name string `json:"iso6391Name"`
		} `json:"detectedLanguage"`
	} `json:"documents"`
}

type azurePIIResp struct {
	Documents []struct {
		Entities []struct {
			Category string `json:"category"`
			Text     string `json:"text"`
		} `json:"entities"`
	} `json:"documents"`
}

// Analyze fans the text out to the four sub-endpoints and waits for all of
// them. It returns an error only when every slot failed; otherwise partial
// results are fine.
func (p *AzureProvider) Analyze(ctx context.Context, text string) (Result, error) {
	var (
		res  Result
		errs [4]error
		wg   sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		var out azureSentimentResp
		errs[0] = p.post(ctx, "sentiment", text, "en", &out)
		if errs[0] == nil && len(out.Documents) > 0 {
			d := out.Documents[0]
			res.Sentiment = &Sentiment{
				Label:    d.Sentiment,
				Positive: d.ConfidenceScores.Positive,
				Neutral:  d.ConfidenceScores.Neutral,
				Negative: d.ConfidenceScores.Negative,
			}
		}
	}()
	go func() {
		defer wg.Done()
		var out azureKeyPhrasesResp
		errs[1] = p.post(ctx, "keyPhrases", text, "en", &out)
		if errs[1] == nil && len(out.Documents) > 0 {
			res.KeyPhrases = out.Documents[0].KeyPhrases
		}
	}()
	go func() {
		defer wg.Done()
		var out azureLanguagesResp
		errs[2] = p.post(ctx, "languages", text, "", &out)
		if errs[2] == nil && len(out.Documents) > 0 {
			res.Language = out.Documents[0].DetectedLanguage.ISO6391Name
		}
	}()
	go func() {
		defer wg.Done()
		var out azurePIIResp
		errs[3] = p.post(ctx, "entities/recognition/pii", text, "en", &out)
		if errs[3] == nil && len(out.Documents) > 0 {
			for _, e := range out.Documents[0].Entities {
				res.PIIEntities = append(res.PIIEntities, PIIEntity{
					Category: e.Category,
					Text:     e.Text,
				})
			}
		}
	}()
	wg.Wait()

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			log.Printf("analyze slot=%d err=%v", i, err)
		}
	}
	if failed == len(errs) {
		return Result{}, errors.New("azure: all analysis calls failed")
	}
	return res, nil
}

func (p *AzureProvider) post(ctx context.Context, task, text, language string, out any) error {
	if p.Client == nil {
		return errors.New("azure: http client is nil")
	}

	body, err := json.Marshal(azureDocReq{
		Documents: []azureDoc{{ID: "1", Language: language, Text: text}},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/text/analytics/v3.1/%s", p.Endpoint, task)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", p.Key)

	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("azure %s: status %d", task, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
