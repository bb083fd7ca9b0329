package domain

import (
	"context"
	"fmt"
	"strings"
)

// Overall sentiment labels carried by a sentiment document.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// SentimentDataPoint is one day's aggregated sentiment for a drug.
type SentimentDataPoint struct {
	Date      string  `json:"date"`
	Positive  float64 `json:"positive"`
	Neutral   float64 `json:"neutral"`
	Negative  float64 `json:"negative"`
	PostCount int     `json:"post_count"`
}

// SentimentDocument is the unit of data moved through the sentiment cache.
// AnalysisDate is a pointer because the empty response carries an explicit null.
type SentimentDocument struct {
	DrugName           string               `json:"drug_name"`
	SentimentData      []SentimentDataPoint `json:"sentiment_data"`
	OverallSentiment   string               `json:"overall_sentiment"`
	SentimentScore     float64              `json:"sentiment_score"`
	TotalPostsAnalyzed int                  `json:"total_posts_analyzed"`
	AnalysisDate       *string              `json:"analysis_date"`
	TopKeywords        []string             `json:"top_keywords,omitempty"`
	ConfidenceScore    *float64             `json:"confidence_score,omitempty"`

	// Set only on the empty response; absent from stored documents.
	DataAvailable *bool  `json:"data_available,omitempty"`
	Message       string `json:"message,omitempty"`
}

// EmptySentiment returns the canonical "no data" document for a drug.
// It is returned with HTTP 200, never as an error: an absent document is an
// expected condition, not a backend failure.
func EmptySentiment(drugName string) *SentimentDocument {
	available := false
	return &SentimentDocument{
		DrugName:           drugName,
		SentimentData:      []SentimentDataPoint{},
		OverallSentiment:   SentimentNeutral,
		SentimentScore:     0.0,
		TotalPostsAnalyzed: 0,
		AnalysisDate:       nil,
		DataAvailable:      &available,
		Message:            fmt.Sprintf("No sentiment data available for '%s'", drugName),
	}
}

// NormalizeDrugKey produces the storage identity for a drug name:
// lowercase, surrounding whitespace trimmed. This normalized string is the
// only identity drugs have in the sentiment subsystem.
func NormalizeDrugKey(drugName string) string {
	return strings.ToLower(strings.TrimSpace(drugName))
}

// AvailableDrugs is the catalog listing of drugs with sentiment documents.
type AvailableDrugs struct {
	AvailableDrugs []string `json:"available_drugs"`
	TotalCount     int      `json:"total_count"`
}

// SentimentService is the operation surface of the sentiment cache,
// consumed by the HTTP layer.
type SentimentService interface {
	FetchDrugSentiment(ctx context.Context, drugName string) *SentimentDocument
	ListAvailableDrugs(ctx context.Context) *AvailableDrugs
	ClearCache(ctx context.Context, drugName string) error
	ClearAllCache(ctx context.Context) (int, error)
	ForceFetch(ctx context.Context, drugName string) *SentimentDocument
}

// ObjectStore abstracts the remote blob tier (S3 in production).
// Get returns the raw object bytes for a fully qualified key.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
}
