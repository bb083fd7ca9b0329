// Package drugs provides search, recommendation and side-effect views over
// the drug catalog.
//
// Recommendations and side-effect classification are stateless string
// transforms over the catalog's semicolon-delimited text columns; there is no
// model behind them.
package drugs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Austin-TB/RxU-backend/internal/domain"
	"github.com/Austin-TB/RxU-backend/internal/metrics"
)

// SearchResult is one formatted catalog match.
type SearchResult struct {
	DrugBankID  string   `json:"drugbank_id"`
	Name        string   `json:"name"`
	GenericName string   `json:"generic_name"`
	BrandNames  []string `json:"brand_names"`
	DrugClass   string   `json:"drug_class"`
	Description string   `json:"description"`
	MatchScore  int      `json:"match_score"`
	MatchType   string   `json:"match_type"`
}

// SearchResponse is the payload of the search endpoint.
type SearchResponse struct {
	Query      string         `json:"query"`
	Results    []SearchResult `json:"results"`
	TotalFound int            `json:"total_found"`
	Message    string         `json:"message,omitempty"`
}

// Recommendation is one alternative drug with a crude similarity score.
type Recommendation struct {
	Name            string  `json:"name"`
	SimilarityScore float64 `json:"similarity_score"`
	Reason          string  `json:"reason"`
}

// RecommendResponse is the payload of the recommendation endpoint.
type RecommendResponse struct {
	OriginalDrug    string           `json:"original_drug"`
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message,omitempty"`
}

// SideEffect is one classified side effect.
type SideEffect struct {
	Effect    string `json:"effect"`
	Frequency string `json:"frequency"`
	Severity  string `json:"severity"`
}

// SideEffectsResponse is the payload of the side-effects endpoint.
type SideEffectsResponse struct {
	DrugName           string       `json:"drug_name"`
	CommonSideEffects  []SideEffect `json:"common_side_effects"`
	SeriousSideEffects []SideEffect `json:"serious_side_effects"`
	Message            string       `json:"message,omitempty"`
}

// Service answers catalog queries. It holds no state beyond the repository.
type Service struct {
	repo domain.DrugRepository
}

func NewService(repo domain.DrugRepository) *Service {
	return &Service{repo: repo}
}

// Search returns formatted catalog matches for a query.
func (s *Service) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	timer := time.Now()
	drugs, err := s.repo.Search(ctx, query, limit)
	metrics.DrugSearchDuration.Observe(time.Since(timer).Seconds())
	if err != nil {
		metrics.DrugSearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("drug search for %q: %w", query, err)
	}

	if len(drugs) == 0 {
		metrics.DrugSearchesTotal.WithLabelValues("empty").Inc()
		return &SearchResponse{
			Query:   query,
			Results: []SearchResult{},
			Message: "No drugs found matching your search query",
		}, nil
	}

	results := make([]SearchResult, 0, len(drugs))
	for _, drug := range drugs {
		results = append(results, formatDrug(drug))
	}

	metrics.DrugSearchesTotal.WithLabelValues("found").Inc()
	return &SearchResponse{
		Query:      query,
		Results:    results,
		TotalFound: len(results),
	}, nil
}

// Info returns the formatted catalog record for a DrugBank ID.
// Returns domain.ErrDrugNotFound when the ID is unknown.
func (s *Service) Info(ctx context.Context, drugbankID string) (*SearchResult, error) {
	drug, err := s.repo.GetByID(ctx, drugbankID)
	if err != nil {
		return nil, err
	}
	result := formatDrug(*drug)
	return &result, nil
}

// Random returns up to count random catalog records, for discovery views.
func (s *Service) Random(ctx context.Context, count int) ([]SearchResult, error) {
	drugs, err := s.repo.Random(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("random drug selection: %w", err)
	}
	results := make([]SearchResult, 0, len(drugs))
	for _, drug := range drugs {
		results = append(results, formatDrug(drug))
	}
	return results, nil
}

// Recommend derives alternative drugs from the matched record's alternatives
// column. The first alternative is considered most similar; scores fall off
// by position down to a floor of 0.5.
func (s *Service) Recommend(ctx context.Context, drugName string) (*RecommendResponse, error) {
	drugs, err := s.repo.Search(ctx, drugName, 1)
	if err != nil {
		return nil, fmt.Errorf("drug lookup for %q: %w", drugName, err)
	}
	if len(drugs) == 0 {
		return &RecommendResponse{
			OriginalDrug:    drugName,
			Recommendations: []Recommendation{},
			Message:         fmt.Sprintf("No drug found matching '%s'", drugName),
		}, nil
	}

	alternatives := splitSemicolonList(drugs[0].Alternatives)
	if len(alternatives) == 0 {
		return &RecommendResponse{
			OriginalDrug:    drugName,
			Recommendations: []Recommendation{},
			Message:         fmt.Sprintf("No alternatives available for '%s'", drugName),
		}, nil
	}

	recommendations := make([]Recommendation, 0, len(alternatives))
	for i, alt := range alternatives {
		score := 0.95 - float64(i)*0.1
		if score < 0.5 {
			score = 0.5
		}
		recommendations = append(recommendations, Recommendation{
			Name:            alt,
			SimilarityScore: score,
			Reason:          "Alternative therapy from the same or similar drug class",
		})
	}

	return &RecommendResponse{
		OriginalDrug:    drugName,
		Recommendations: recommendations,
	}, nil
}

// SideEffects splits and classifies the matched record's side-effect column.
func (s *Service) SideEffects(ctx context.Context, drugName string) (*SideEffectsResponse, error) {
	drugs, err := s.repo.Search(ctx, drugName, 1)
	if err != nil {
		return nil, fmt.Errorf("drug lookup for %q: %w", drugName, err)
	}
	if len(drugs) == 0 {
		return &SideEffectsResponse{
			DrugName:           drugName,
			CommonSideEffects:  []SideEffect{},
			SeriousSideEffects: []SideEffect{},
			Message:            fmt.Sprintf("No drug found matching '%s'", drugName),
		}, nil
	}

	effects := splitSemicolonList(drugs[0].SideEffects)
	if len(effects) == 0 {
		return &SideEffectsResponse{
			DrugName:           drugName,
			CommonSideEffects:  []SideEffect{},
			SeriousSideEffects: []SideEffect{},
			Message:            fmt.Sprintf("No side effects data available for '%s'", drugName),
		}, nil
	}

	common := []SideEffect{}
	serious := []SideEffect{}
	for _, effect := range effects {
		classified, isSerious := classifySideEffect(effect)
		if isSerious {
			serious = append(serious, classified)
		} else {
			common = append(common, classified)
		}
	}

	return &SideEffectsResponse{
		DrugName:           drugName,
		CommonSideEffects:  common,
		SeriousSideEffects: serious,
	}, nil
}

func formatDrug(drug domain.Drug) SearchResult {
	return SearchResult{
		DrugBankID:  drug.DrugBankID,
		Name:        drug.Name,
		GenericName: drug.GenericName,
		BrandNames:  splitSemicolonList(drug.Synonyms),
		DrugClass:   drug.DrugClass,
		Description: drug.Description,
		MatchScore:  100,
		MatchType:   "exact",
	}
}

var seriousKeywords = []string{
	"severe", "major", "serious", "life-threatening", "rare",
	"hemorrhage", "anaphylaxis", "apoplexy",
}

// classifySideEffect buckets one effect string by keyword into a serious or
// common effect with a frequency and severity guess.
func classifySideEffect(effect string) (SideEffect, bool) {
	lower := strings.ToLower(effect)

	if containsAny(lower, seriousKeywords) {
		frequency := "rare"
		if strings.Contains(lower, "rare") {
			frequency = "rare"
		} else if containsAny(lower, []string{"major", "severe"}) {
			frequency = "uncommon"
		}
		return SideEffect{Effect: effect, Frequency: frequency, Severity: "severe"}, true
	}

	frequency := "common"
	if containsAny(lower, []string{"uncommon", "occasional"}) {
		frequency = "uncommon"
	}

	severity := "mild"
	if strings.Contains(lower, "moderate") {
		severity = "moderate"
	}
	return SideEffect{Effect: effect, Frequency: frequency, Severity: severity}, false
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// splitSemicolonList splits a semicolon-delimited column into trimmed,
// non-empty items.
func splitSemicolonList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}
	parts := strings.Split(value, ";")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
