package sentiment

import (
	"encoding/json"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Austin-TB/RxU-backend/internal/domain"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(clockwork.NewFakeClock(), 1)
}

func TestPreprocessText(t *testing.T) {
	a := newTestAnalyzer()

	cleaned := a.PreprocessText("Check out this link: https://example.com @user #health Taking aspirin for my headache!")
	assert.Equal(t, "check out this link user health taking aspirin for my headache", cleaned)
}

func TestPreprocessText_Empty(t *testing.T) {
	a := newTestAnalyzer()
	assert.Equal(t, "", a.PreprocessText(""))
}

func TestAnalyzeText_PositiveKeywords(t *testing.T) {
	a := newTestAnalyzer()

	scores := a.AnalyzeText("this drug is great and effective, highly recommend")
	assert.Greater(t, scores.Positive, scores.Negative)
	assert.InDelta(t, 1.0, scores.Positive+scores.Neutral+scores.Negative, 1e-9)
}

func TestAnalyzeText_NegativeKeywords(t *testing.T) {
	a := newTestAnalyzer()

	scores := a.AnalyzeText("terrible nausea, awful headache, had to stop")
	assert.Greater(t, scores.Negative, scores.Positive)
}

func TestAnalyzeText_NoSentimentWords(t *testing.T) {
	a := newTestAnalyzer()

	scores := a.AnalyzeText("taking the medication as prescribed by my doctor")
	assert.Equal(t, Scores{Positive: 0.1, Neutral: 0.8, Negative: 0.1}, scores)
}

func TestAnalyzeText_Empty(t *testing.T) {
	a := newTestAnalyzer()
	assert.Equal(t, Scores{Neutral: 1.0}, a.AnalyzeText(""))
}

func TestDrugSentiment_ProducesValidDocument(t *testing.T) {
	a := newTestAnalyzer()

	doc := a.DrugSentiment("aspirin")
	assert.Equal(t, "aspirin", doc.DrugName)
	assert.Equal(t, 50, doc.TotalPostsAnalyzed)
	assert.NotEmpty(t, doc.SentimentData)
	require.NotNil(t, doc.AnalysisDate)
	assert.Contains(t, []string{
		domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative,
	}, doc.OverallSentiment)

	// The generated document must pass the same gate stored documents do.
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	_, err = Validate(raw)
	assert.NoError(t, err)
}

func TestDrugSentiment_DataPointsAggregateByDay(t *testing.T) {
	a := newTestAnalyzer()

	doc := a.DrugSentiment("aspirin")
	total := 0
	lastDate := ""
	for _, point := range doc.SentimentData {
		assert.Greater(t, point.PostCount, 0)
		assert.GreaterOrEqual(t, point.Positive, 0.0)
		assert.LessOrEqual(t, point.Positive, 1.0)
		assert.Greater(t, point.Date, lastDate, "data points must be date-ordered")
		lastDate = point.Date
		total += point.PostCount
	}
	assert.Equal(t, doc.TotalPostsAnalyzed, total)
}

func TestDrugSentiment_ConsistentAcrossCalls(t *testing.T) {
	a := newTestAnalyzer()

	first := a.DrugSentiment("aspirin")
	second := a.DrugSentiment("aspirin")
	assert.Equal(t, first.SentimentScore, second.SentimentScore)
	assert.Equal(t, first.SentimentData, second.SentimentData)
}
