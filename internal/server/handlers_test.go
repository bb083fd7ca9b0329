package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Austin-TB/RxU-backend/internal/config"
	"github.com/Austin-TB/RxU-backend/internal/database"
	"github.com/Austin-TB/RxU-backend/internal/domain"
	"github.com/Austin-TB/RxU-backend/internal/drugs"
	apperrors "github.com/Austin-TB/RxU-backend/internal/errors"
)

// --- Mock implementations ---

type mockSentimentService struct {
	fetchFn         func(ctx context.Context, drugName string) *domain.SentimentDocument
	listFn          func(ctx context.Context) *domain.AvailableDrugs
	clearFn         func(ctx context.Context, drugName string) error
	clearAllFn      func(ctx context.Context) (int, error)
	forceFetchFn    func(ctx context.Context, drugName string) *domain.SentimentDocument
	fetchCalls      []string
	forceFetchCalls []string
}

func (m *mockSentimentService) FetchDrugSentiment(ctx context.Context, drugName string) *domain.SentimentDocument {
	m.fetchCalls = append(m.fetchCalls, drugName)
	if m.fetchFn != nil {
		return m.fetchFn(ctx, drugName)
	}
	return domain.EmptySentiment(drugName)
}

func (m *mockSentimentService) ListAvailableDrugs(ctx context.Context) *domain.AvailableDrugs {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return &domain.AvailableDrugs{AvailableDrugs: []string{}, TotalCount: 0}
}

func (m *mockSentimentService) ClearCache(ctx context.Context, drugName string) error {
	if m.clearFn != nil {
		return m.clearFn(ctx, drugName)
	}
	return nil
}

func (m *mockSentimentService) ClearAllCache(ctx context.Context) (int, error) {
	if m.clearAllFn != nil {
		return m.clearAllFn(ctx)
	}
	return 0, nil
}

func (m *mockSentimentService) ForceFetch(ctx context.Context, drugName string) *domain.SentimentDocument {
	m.forceFetchCalls = append(m.forceFetchCalls, drugName)
	if m.forceFetchFn != nil {
		return m.forceFetchFn(ctx, drugName)
	}
	return domain.EmptySentiment(drugName)
}

// --- Test helpers ---

const testCatalogCSV = `drugbank_id,name,generic_name,synonyms,drug_class,description,alternatives,side_effects
DB00945,Aspirin,acetylsalicylic acid,ASA; Acetylsalicylate,NSAID,Pain reliever,Ibuprofen; Naproxen,Nausea; Severe bleeding
DB01050,Ibuprofen,ibuprofen,Advil; Motrin,NSAID,Anti-inflammatory,Aspirin; Naproxen,Heartburn; Rare anaphylaxis
`

func newTestDrugService(t *testing.T) *drugs.Service {
	t.Helper()

	db, err := database.Connect(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := database.NewDrugRepo(db)
	csvPath := filepath.Join(t.TempDir(), "drugs.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCatalogCSV), 0o644))

	loaded, err := repo.LoadCSV(context.Background(), csvPath)
	require.NoError(t, err)
	require.Equal(t, 2, loaded)

	return drugs.NewService(repo)
}

func newTestServer(t *testing.T, sentiment domain.SentimentService) *Server {
	t.Helper()

	cfg := &config.Config{
		Port:           "8000",
		CacheDir:       t.TempDir(),
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	return NewServer(cfg, sentiment, newTestDrugService(t))
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return apperrors.Middleware()(handler)(c)
}

func getRequest(srv *Server, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return srv.echo.NewContext(req, rec), rec
}
