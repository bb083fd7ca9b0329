// Command seed-mock-data generates sentiment documents with the mock analyzer
// and writes them as JSON files, one per drug, into a fallback or cache
// directory. Useful for local development without a populated object store.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Austin-TB/RxU-backend/internal/domain"
	"github.com/Austin-TB/RxU-backend/internal/sentiment"
)

func main() {
	var (
		outDir  = flag.String("out", "data/agg/daily", "Output directory for generated documents")
		drugs   = flag.String("drugs", "aspirin,ibuprofen,metformin,lisinopril,sertraline", "Comma-separated drug names")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "Random seed (fixed seed gives reproducible output)")
		verbose = flag.Bool("verbose", false, "Verbose logging")
	)
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	analyzer := sentiment.NewAnalyzer(clockwork.NewRealClock(), *seed)

	written := 0
	for _, name := range strings.Split(*drugs, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if err := writeDocument(analyzer, *outDir, name); err != nil {
			log.Fatalf("Failed to write document for %s: %v", name, err)
		}
		slog.Debug("Generated document", "drug", name)
		written++
	}

	slog.Info("Seed complete", "documents", written, "dir", *outDir)
}

func writeDocument(analyzer *sentiment.Analyzer, dir, drugName string) error {
	document := analyzer.DrugSentiment(drugName)

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	path := filepath.Join(dir, domain.NormalizeDrugKey(drugName)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
