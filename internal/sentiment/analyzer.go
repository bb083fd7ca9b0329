package sentiment

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/Austin-TB/RxU-backend/internal/domain"
)

// Analyzer synthesizes sentiment documents from template social posts and a
// keyword-count scoring rule. It exists to produce documents of exactly the
// shape the cache validates, for seeding local datasets; there is no real NLP
// behind it.
type Analyzer struct {
	clock clockwork.Clock

	mu    sync.Mutex
	rng   *rand.Rand
	posts map[string][]MockPost
}

// MockPost is a synthetic social media post about a drug.
type MockPost struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	Date           string `json:"date"`
	Platform       string `json:"platform"`
	Author         string `json:"author"`
	SentimentLabel string `json:"sentiment_label,omitempty"`
}

var (
	urlPattern        = regexp.MustCompile(`http[s]?://(?:[a-zA-Z0-9$\-_@.&+!*(),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)
	mentionPattern    = regexp.MustCompile(`[@#](\w+)`)
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

var positiveTemplates = []string{
	"%s really helped with my pain! Feeling much better now",
	"Been taking %s for a week and the difference is amazing",
	"My doctor recommended %s and it's working great so far",
	"Finally found relief with %s. Highly recommend!",
	"%s has been a game changer for my condition",
	"So grateful that %s exists. Life is so much better now",
	"Love how effective %s is. No major side effects either",
}

var neutralTemplates = []string{
	"Taking %s as prescribed. Will see how it goes",
	"Just started %s. Doctor says it should help",
	"Day 3 of %s treatment. Monitoring progress",
	"Anyone else tried %s? Looking for experiences",
	"Switching to %s from my previous medication",
	"Pharmacy had %s in stock today. Time to start treatment",
	"Reading about %s side effects before starting",
}

var negativeTemplates = []string{
	"%s giving me terrible side effects. Not sure if worth it",
	"Been on %s for 2 weeks, still no improvement",
	"Had to stop taking %s due to nausea and headaches",
	"%s isn't working for me at all. Very disappointed",
	"The side effects of %s are worse than my original problem",
	"Expensive and %s doesn't seem to be helping much",
	"Really struggling with %s. Looking for alternatives",
}

var platforms = []string{"twitter", "reddit", "facebook"}

var positiveWords = map[string]struct{}{
	"great": {}, "amazing": {}, "love": {}, "excellent": {}, "helpful": {},
	"better": {}, "relief": {}, "recommend": {}, "effective": {}, "grateful": {}, "good": {},
}

var negativeWords = map[string]struct{}{
	"terrible": {}, "bad": {}, "awful": {}, "disappointed": {}, "struggling": {},
	"worse": {}, "expensive": {}, "nausea": {}, "headache": {}, "stop": {},
}

// NewAnalyzer creates an analyzer. The clock fixes analysis dates in tests;
// the seed makes post generation reproducible.
func NewAnalyzer(clock clockwork.Clock, seed int64) *Analyzer {
	return &Analyzer{
		clock: clock,
		rng:   rand.New(rand.NewSource(seed)),
		posts: make(map[string][]MockPost),
	}
}

// PreprocessText lowercases, strips URLs, unwraps mentions/hashtags and
// collapses everything else to bare words.
func (a *Analyzer) PreprocessText(text string) string {
	if text == "" {
		return ""
	}
	cleaned := strings.ToLower(text)
	cleaned = urlPattern.ReplaceAllString(cleaned, "")
	cleaned = mentionPattern.ReplaceAllString(cleaned, "$1")
	cleaned = nonWordPattern.ReplaceAllString(cleaned, " ")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Scores holds the per-class sentiment shares of a single text. They sum to 1.
type Scores struct {
	Positive float64
	Neutral  float64
	Negative float64
}

// AnalyzeText scores a single text by counting sentiment keywords.
func (a *Analyzer) AnalyzeText(text string) Scores {
	if text == "" {
		return Scores{Neutral: 1.0}
	}

	words := strings.Fields(a.PreprocessText(text))
	var positiveCount, negativeCount int
	for _, word := range words {
		if _, ok := positiveWords[word]; ok {
			positiveCount++
		}
		if _, ok := negativeWords[word]; ok {
			negativeCount++
		}
	}

	if positiveCount+negativeCount == 0 || len(words) == 0 {
		return Scores{Positive: 0.1, Neutral: 0.8, Negative: 0.1}
	}

	positive := float64(positiveCount) / float64(len(words))
	negative := float64(negativeCount) / float64(len(words))
	neutral := math.Max(0, 1-positive-negative)

	total := positive + neutral + negative
	if total <= 0 {
		return Scores{Positive: 0.1, Neutral: 0.8, Negative: 0.1}
	}
	return Scores{
		Positive: positive / total,
		Neutral:  neutral / total,
		Negative: negative / total,
	}
}

// DrugSentiment generates a complete, valid sentiment document for a drug from
// fifty synthetic posts aggregated by day.
func (a *Analyzer) DrugSentiment(drugName string) *domain.SentimentDocument {
	posts := a.mockPosts(drugName, 50)

	type daily struct {
		positive, neutral, negative float64
		postCount                   int
	}
	byDate := make(map[string]*daily)
	var totalPositive, totalNegative float64

	for _, post := range posts {
		scores := a.AnalyzeText(post.Text)
		day, ok := byDate[post.Date]
		if !ok {
			day = &daily{}
			byDate[post.Date] = day
		}
		day.positive += scores.Positive
		day.neutral += scores.Neutral
		day.negative += scores.Negative
		day.postCount++

		totalPositive += scores.Positive
		totalNegative += scores.Negative
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	sentimentData := make([]domain.SentimentDataPoint, 0, len(dates))
	for _, date := range dates {
		day := byDate[date]
		n := float64(day.postCount)
		sentimentData = append(sentimentData, domain.SentimentDataPoint{
			Date:      date,
			Positive:  round3(day.positive / n),
			Neutral:   round3(day.neutral / n),
			Negative:  round3(day.negative / n),
			PostCount: day.postCount,
		})
	}

	totalPosts := len(posts)
	avgPositive := totalPositive / float64(totalPosts)
	avgNegative := totalNegative / float64(totalPosts)

	var overall string
	var score float64
	switch {
	case avgPositive > avgNegative:
		overall = domain.SentimentPositive
		score = round3(avgPositive - avgNegative)
	case avgNegative > avgPositive:
		overall = domain.SentimentNegative
		score = -round3(avgNegative - avgPositive)
	default:
		overall = domain.SentimentNeutral
	}

	analysisDate := a.clock.Now().Format("2006-01-02 15:04:05")
	confidence := 0.75
	return &domain.SentimentDocument{
		DrugName:           drugName,
		SentimentData:      sentimentData,
		OverallSentiment:   overall,
		SentimentScore:     score,
		TotalPostsAnalyzed: totalPosts,
		AnalysisDate:       &analysisDate,
		TopKeywords:        []string{"pain", "relief", "side effects", "doctor", "treatment"},
		ConfidenceScore:    &confidence,
	}
}

// mockPosts returns cached posts for a drug, generating them on first use so
// repeated calls stay consistent.
func (a *Analyzer) mockPosts(drugName string, count int) []MockPost {
	a.mu.Lock()
	defer a.mu.Unlock()

	cacheKey := fmt.Sprintf("%s_%d", drugName, count)
	if posts, ok := a.posts[cacheKey]; ok {
		return posts
	}

	templates := make([]string, 0, len(positiveTemplates)+len(neutralTemplates)+len(negativeTemplates))
	labels := make([]string, 0, cap(templates))
	for _, t := range positiveTemplates {
		templates = append(templates, t)
		labels = append(labels, domain.SentimentPositive)
	}
	for _, t := range neutralTemplates {
		templates = append(templates, t)
		labels = append(labels, domain.SentimentNeutral)
	}
	for _, t := range negativeTemplates {
		templates = append(templates, t)
		labels = append(labels, domain.SentimentNegative)
	}

	baseDate := a.clock.Now().AddDate(0, 0, -30)
	posts := make([]MockPost, 0, count)
	for i := 0; i < count; i++ {
		idx := a.rng.Intn(len(templates))
		postDate := baseDate.AddDate(0, 0, a.rng.Intn(30))
		posts = append(posts, MockPost{
			ID:             fmt.Sprintf("post_%s_%d", drugName, i+1),
			Text:           fmt.Sprintf(templates[idx], drugName),
			Date:           postDate.Format("2006-01-02"),
			Platform:       platforms[a.rng.Intn(len(platforms))],
			Author:         fmt.Sprintf("user_%d", 1000+a.rng.Intn(9000)),
			SentimentLabel: labels[idx],
		})
	}

	a.posts[cacheKey] = posts
	return posts
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
