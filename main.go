package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/fmuoria/applicant-pipeline/internal/api"
	"github.com/fmuoria/applicant-pipeline/internal/board"
	"github.com/fmuoria/applicant-pipeline/internal/config"
	"github.com/fmuoria/applicant-pipeline/internal/export"
	"github.com/fmuoria/applicant-pipeline/internal/insight"
	"github.com/fmuoria/applicant-pipeline/internal/llm"
	"github.com/fmuoria/applicant-pipeline/internal/notion"
	"github.com/fmuoria/applicant-pipeline/internal/pipeline"
	"github.com/fmuoria/applicant-pipeline/internal/store"
	"github.com/fmuoria/applicant-pipeline/internal/store/filestore"
	"github.com/fmuoria/applicant-pipeline/internal/store/remote"
	"github.com/fmuoria/applicant-pipeline/internal/store/sqlite"
	"github.com/fmuoria/applicant-pipeline/internal/termview"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to a JSON or YAML config file (default: user config dir)")
	addr := flag.String("addr", "", "listen address, overrides port (e.g. :8080)")
	rankJob := flag.String("rank", "", "print the ranked applicants of a job and exit")
	status := flag.String("status", pipeline.StatusAll, "status filter for -rank")
	sortKey := flag.String("sort", pipeline.SortDatePosted, "sort key for -rank: date-posted or name")
	best := flag.Bool("best", false, "with -rank, show only the best matches")
	xlsxPath := flag.String("xlsx", "", "with -rank, also write an Excel report to this path")
	importDir := flag.String("import", "", "import jobs.json and applicants.json from a directory into the sqlite store and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx := context.Background()

	if *importDir != "" {
		if err := runImport(ctx, cfg, *importDir); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		return
	}

	backend, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	if *rankJob != "" {
		opts := pipeline.Options{Status: *status, SortKey: *sortKey, BestMatch: *best}
		if err := runRank(ctx, backend, *rankJob, opts, *xlsxPath); err != nil {
			log.Fatalf("Ranking failed: %v", err)
		}
		return
	}

	var publisher api.ShortlistPublisher
	if cfg.NotionEnabled() {
		nc := notion.New(cfg.Notion.Token, cfg.Notion.DatabaseID)
		if err := nc.Ping(ctx); err != nil {
			log.Printf("Notion database unreachable, shortlist publishing disabled: %v", err)
		} else {
			publisher = nc
		}
	}

	var summarizer api.ShortlistSummarizer
	if cfg.InsightEnabled() {
		client, err := llm.NewVertexAIClient(ctx, llm.Config{
			ProjectID:       cfg.Google.Project,
			Location:        cfg.Google.Location,
			Model:           cfg.Google.Model,
			CredentialsFile: cfg.Google.CredentialsPath,
		})
		if err != nil {
			log.Printf("Vertex AI unavailable, insight disabled: %v", err)
		} else {
			defer client.Close()
			summarizer = insight.NewSummarizer(client)
		}
	}

	server := api.NewServer(backend, publisher, summarizer)

	listen := *addr
	if listen == "" {
		listen = ":" + cfg.Port
	}

	fmt.Printf("Starting Applicant Pipeline on %s (store: %s)...\n", listen, cfg.Store.Type)
	fmt.Printf("Endpoints:\n")
	fmt.Printf("  GET /jobs/{id}/applicants - Ranked applicants\n")
	fmt.Printf("  PUT /applicants/{id}/status - Change pipeline status\n")
	fmt.Printf("  GET /dashboard - Pipeline overview\n")

	if err := http.ListenAndServe(listen, server.Router()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// buildStore opens the configured backend. The returned func releases it.
func buildStore(ctx context.Context, cfg *config.Config) (store.Backend, func(), error) {
	switch cfg.Store.Type {
	case config.StoreSQLite:
		st, err := openSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.DB.Close() }, nil
	case config.StoreFile:
		return filestore.NewFileStore(cfg.Store.DataDir), func() {}, nil
	default:
		client := remote.NewClient(remote.Config{
			BaseURL: cfg.Store.APIURL,
			Token:   cfg.Store.APIToken,
			Timeout: time.Duration(cfg.Store.TimeoutSecs) * time.Second,
		})
		return client, func() {}, nil
	}
}

func openSQLite(ctx context.Context, path string) (*sqlite.Store, error) {
	db, err := sqlite.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	st := sqlite.New(db)
	if err := st.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}
	return st, nil
}

func runImport(ctx context.Context, cfg *config.Config, dir string) error {
	st, err := openSQLite(ctx, cfg.Store.SQLitePath)
	if err != nil {
		return err
	}
	defer st.DB.Close()

	jobs, applicants, err := st.Import(ctx, filestore.NewFileStore(dir))
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d jobs and %d applicants into %s\n", jobs, applicants, cfg.Store.SQLitePath)
	return nil
}

func runRank(ctx context.Context, st store.Store, jobID string, opts pipeline.Options, xlsxPath string) error {
	b := board.New(st)
	if err := b.Load(ctx, jobID); err != nil {
		return err
	}
	job, _ := b.Job()
	view := b.View(opts)

	fmt.Println(termview.Render(job, view))

	if xlsxPath == "" {
		return nil
	}
	report := export.Report{
		Job:        job,
		Applicants: view,
		Counts:     b.Counts(),
		Generated:  time.Now(),
	}
	if err := export.ExportToExcel(report, xlsxPath); err != nil {
		return err
	}
	if !strings.HasSuffix(strings.ToLower(xlsxPath), ".xlsx") {
		xlsxPath += ".xlsx"
	}
	fmt.Printf("Report written to %s\n", xlsxPath)
	return nil
}
