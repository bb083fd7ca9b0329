package database

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Austin-TB/RxU-backend/internal/domain"
)

// drugColumns must match the Scan order in scanDrug.
const drugColumns = `drugbank_id, name, generic_name, synonyms, drug_class, description, alternatives, side_effects`

// csvHeaderMap translates dataset headers to schema columns. The published
// dataset uses display headers for the DrugBank columns and lowercase names
// for the derived ones.
var csvHeaderMap = map[string]string{
	"DrugBank ID":  "drugbank_id",
	"Common name":  "name",
	"Generic name": "generic_name",
	"Synonyms":     "synonyms",
	"Drug class":   "drug_class",
	"Description":  "description",
	"drugbank_id":  "drugbank_id",
	"name":         "name",
	"generic_name": "generic_name",
	"synonyms":     "synonyms",
	"drug_class":   "drug_class",
	"description":  "description",
	"alternatives": "alternatives",
	"side_effects": "side_effects",
}

// DrugRepo implements domain.DrugRepository backed by SQLite.
type DrugRepo struct {
	db *sql.DB
}

var _ domain.DrugRepository = (*DrugRepo)(nil)

// NewDrugRepo creates a DrugRepo from the shared DB connection.
func NewDrugRepo(db *sql.DB) *DrugRepo {
	return &DrugRepo{db: db}
}

// LoadCSV ingests the drug dataset into the catalog, returning the number of
// records loaded. Rows without a DrugBank ID are skipped.
func (r *DrugRepo) LoadCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open drug dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read dataset header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = csvHeaderMap[strings.TrimSpace(h)]
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin ingest transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO drugs (`+drugColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	loaded := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return loaded, fmt.Errorf("failed to read dataset row: %w", err)
		}

		row := map[string]string{}
		for i, value := range record {
			if i < len(columns) && columns[i] != "" {
				row[columns[i]] = strings.TrimSpace(value)
			}
		}
		if row["drugbank_id"] == "" {
			continue
		}

		if _, err := stmt.ExecContext(ctx,
			row["drugbank_id"], row["name"], row["generic_name"], row["synonyms"],
			row["drug_class"], row["description"], row["alternatives"], row["side_effects"],
		); err != nil {
			return loaded, fmt.Errorf("failed to insert drug %s: %w", row["drugbank_id"], err)
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return loaded, fmt.Errorf("failed to commit ingest: %w", err)
	}
	return loaded, nil
}

// Search matches query as a case-insensitive substring over name, generic
// name and synonyms.
func (r *DrugRepo) Search(ctx context.Context, query string, limit int) ([]domain.Drug, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+drugColumns+`
		FROM drugs
		WHERE lower(name) LIKE ? ESCAPE '\'
		   OR lower(generic_name) LIKE ? ESCAPE '\'
		   OR lower(synonyms) LIKE ? ESCAPE '\'
		ORDER BY name
		LIMIT ?`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("drug search failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectDrugs(rows)
}

// GetByID looks up a single record by DrugBank ID.
func (r *DrugRepo) GetByID(ctx context.Context, drugbankID string) (*domain.Drug, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+drugColumns+`
		FROM drugs
		WHERE drugbank_id = ?`, drugbankID)

	drug, err := scanDrug(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDrugNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("drug lookup failed: %w", err)
	}
	return drug, nil
}

// Random returns up to count random catalog records.
func (r *DrugRepo) Random(ctx context.Context, count int) ([]domain.Drug, error) {
	if count <= 0 {
		count = 5
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+drugColumns+`
		FROM drugs
		ORDER BY RANDOM()
		LIMIT ?`, count)
	if err != nil {
		return nil, fmt.Errorf("random drug query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectDrugs(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDrug(row rowScanner) (*domain.Drug, error) {
	var d domain.Drug
	if err := row.Scan(
		&d.DrugBankID, &d.Name, &d.GenericName, &d.Synonyms,
		&d.DrugClass, &d.Description, &d.Alternatives, &d.SideEffects,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDrugs(rows *sql.Rows) ([]domain.Drug, error) {
	var drugs []domain.Drug
	for rows.Next() {
		drug, err := scanDrug(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan drug row: %w", err)
		}
		drugs = append(drugs, *drug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("drug row iteration failed: %w", err)
	}
	return drugs, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
