package domain

import "context"

// Drug is one record of the drug catalog. The Synonyms, Alternatives and
// SideEffects columns are semicolon-delimited lists in the source dataset
// and are kept raw here; splitting happens in the drugs service.
type Drug struct {
	DrugBankID   string `json:"drugbank_id"`
	Name         string `json:"name"`
	GenericName  string `json:"generic_name"`
	Synonyms     string `json:"-"`
	DrugClass    string `json:"drug_class"`
	Description  string `json:"description"`
	Alternatives string `json:"-"`
	SideEffects  string `json:"-"`
}

// DrugRepository abstracts the tabular drug-record store.
type DrugRepository interface {
	// Search matches query as a case-insensitive substring over name,
	// generic name and synonyms, returning at most limit records.
	Search(ctx context.Context, query string, limit int) ([]Drug, error)
	GetByID(ctx context.Context, drugbankID string) (*Drug, error)
	Random(ctx context.Context, count int) ([]Drug, error)
}
