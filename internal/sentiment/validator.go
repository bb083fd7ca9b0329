package sentiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Austin-TB/RxU-backend/internal/domain"
)

// requiredFields is the set a stored document must carry to be served.
// A field that is present but null counts as present; analysis_date is null
// in freshly aggregated documents that never completed a full run.
var requiredFields = []string{
	"drug_name",
	"sentiment_data",
	"overall_sentiment",
	"sentiment_score",
	"total_posts_analyzed",
	"analysis_date",
}

// ErrUnreadableDocument marks bytes that are not valid JSON at all.
var ErrUnreadableDocument = errors.New("sentiment document is not valid JSON")

// SchemaError reports a parseable document missing required fields. It is an
// expected condition: the caller maps it to the empty response.
type SchemaError struct {
	MissingFields []string
}

func (e *SchemaError) Error() string {
	if len(e.MissingFields) == 0 {
		return "sentiment document has wrongly typed fields"
	}
	return fmt.Sprintf("sentiment document missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// Validate checks that raw parses as JSON and carries every required field,
// returning the typed document on success. Only truly unparsable bytes yield
// ErrUnreadableDocument; a well-formed object with the wrong shape yields a
// *SchemaError instead.
func Validate(raw []byte) (*domain.SentimentDocument, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := fields[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{MissingFields: missing}
	}

	var doc domain.SentimentDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Fields are present but typed wrong. Same handling as missing fields.
		return nil, &SchemaError{MissingFields: nil}
	}
	return &doc, nil
}
