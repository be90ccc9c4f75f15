package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"legalcode-catalog/internal/catalog"
	"legalcode-catalog/internal/config"
	"legalcode-catalog/internal/extract"
	"legalcode-catalog/internal/legalcode"
	"legalcode-catalog/internal/pofile"
	"legalcode-catalog/internal/store"
	"legalcode-catalog/internal/textutil"
	"legalcode-catalog/internal/walker"
	"legalcode-catalog/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "legalcode-catalog",
		Short: "Build gettext translation catalogs from legalcode HTML documents",
		Long: `Reads Creative Commons 4.0 legalcode HTML files, records license and
translation metadata in PostgreSQL, extracts the per-variant message fields
from each document, and writes per-language .po/.mo catalogs keyed by the
authoritative-language text.`,
	}

	rootCmd.AddCommand(importCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <input-directory>",
		Short: "Import legalcode HTML files and write translation catalogs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0])
		},
	}
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// initDependencies connects the PostgreSQL pool.
func initDependencies(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}

	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")

	return pgPool, nil
}

// document is one discovered legalcode file with its content loaded.
type document struct {
	entry    walker.Entry
	language string
	content  string
}

// runImport handles the `import` command.
func runImport(inputDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	pgPool, err := initDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	recordStore := store.New(pgPool)
	if err := recordStore.EnsureSchema(ctx); err != nil {
		return err
	}

	entries, err := walker.Discover(inputDir)
	if err != nil {
		return err
	}

	// Record every discovered document and index the current version's
	// documents by (license code, language).
	docs := make(map[string]map[string]*document)
	licensesCreated, legalCodesCreated := 0, 0

	for _, entry := range entries {
		raw, err := os.ReadFile(entry.Path)
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Path, err)
		}
		content := string(raw)

		language := entry.Meta.LanguageCode
		if language == "" {
			language = legalcode.DefaultLanguage
		}

		licenseID, created, err := recordStore.GetOrCreateLicense(ctx, entry.Meta, entry.Variant.Permissions())
		if err != nil {
			return err
		}
		if created {
			licensesCreated++
		}
		created, err = recordStore.GetOrCreateLegalCode(ctx, licenseID, language, entry.Path, textutil.Hash(content))
		if err != nil {
			return err
		}
		if created {
			legalCodesCreated++
		}

		if entry.Meta.Version != cfg.LicenseVersion || entry.Meta.JurisdictionCode != "" {
			// Earlier versions and ported licenses are recorded but not
			// parsed; their templates differ from the 4.0 international one.
			continue
		}
		if docs[entry.Variant.Code()] == nil {
			docs[entry.Variant.Code()] = make(map[string]*document)
		}
		docs[entry.Variant.Code()][language] = &document{entry: entry, language: language, content: content}
	}

	log.Info().
		Int("licenses", licensesCreated).
		Int("legal_codes", legalCodesCreated).
		Msg("Record store updated")

	languages, err := recordStore.ListLanguages(ctx, cfg.LicenseVersion)
	if err != nil {
		return err
	}

	return buildCatalogs(ctx, cfg, docs, languages)
}

// buildCatalogs extracts and assembles catalogs for every (variant, language)
// pair. The authoritative language is processed first and its field maps are
// retained: every other language's catalog keys come from them.
func buildCatalogs(ctx context.Context, cfg *config.Config, docs map[string]map[string]*document, languages []string) error {
	extractor := extract.New()
	authoritative := make(map[string]*extract.FieldMap)
	catalogsWritten := 0

	for _, code := range legalcode.Codes {
		doc := docs[code][cfg.AuthoritativeLanguage]
		if doc == nil {
			log.Error().Str("license", code).Str("language", cfg.AuthoritativeLanguage).
				Msg("Authoritative document missing, skipping variant")
			continue
		}
		fields, err := processDocument(extractor, doc)
		if err != nil {
			log.Error().Err(err).Str("license", code).Str("language", doc.language).
				Msg("Authoritative extraction failed, skipping variant")
			continue
		}
		authoritative[code] = fields

		domain := legalcode.Domain(code, cfg.LicenseVersion)
		c := catalog.Assemble(fields, fields, domain, doc.language, cfg.AuthoritativeLanguage)
		if err := writeCatalog(c, cfg.LocaleRoot); err != nil {
			return err
		}
		catalogsWritten++
	}

	// The remaining (variant, language) pairs are independent of each other;
	// fan them out across the pool.
	var pending []*document
	for _, code := range legalcode.Codes {
		if authoritative[code] == nil {
			continue
		}
		for _, language := range languages {
			if language == cfg.AuthoritativeLanguage {
				continue
			}
			if doc := docs[code][language]; doc != nil {
				pending = append(pending, doc)
			}
		}
	}

	pool := worker.NewPool[*document, string](cfg.WorkerCount,
		func(ctx context.Context, doc *document) (string, error) {
			code := doc.entry.Variant.Code()
			fields, err := processDocument(extractor, doc)
			if err != nil {
				return "", err
			}
			domain := legalcode.Domain(code, cfg.LicenseVersion)
			c := catalog.Assemble(authoritative[code], fields, domain, doc.language, cfg.AuthoritativeLanguage)
			if err := writeCatalog(c, cfg.LocaleRoot); err != nil {
				return "", err
			}
			return domain, nil
		},
	)

	results := pool.Execute(ctx, pending)
	failed := 0
	for _, task := range results {
		if task.Err != nil {
			failed++
			continue
		}
		catalogsWritten++
	}

	log.Info().
		Int("catalogs", catalogsWritten).
		Int("failed", failed).
		Str("locale_root", cfg.LocaleRoot).
		Msg("Catalog build complete")
	return nil
}

// processDocument extracts and validates one document's field map.
func processDocument(extractor *extract.Extractor, doc *document) (*extract.FieldMap, error) {
	log.Info().
		Str("license", doc.entry.Variant.Code()).
		Str("language", doc.language).
		Msg("Importing legalcode")

	fields, err := extractor.Extract(doc.content, doc.entry.Variant, doc.language)
	if err != nil {
		return nil, fmt.Errorf("extract %s %s: %w", doc.entry.Variant.Code(), doc.language, err)
	}
	if err := extract.Validate(fields); err != nil {
		return nil, fmt.Errorf("validate %s %s: %w", doc.entry.Variant.Code(), doc.language, err)
	}
	return fields, nil
}

// writeCatalog serializes a catalog to its .po and .mo files.
func writeCatalog(c *catalog.Catalog, localeRoot string) error {
	f := pofile.New(c.Domain, c.Language)
	for _, e := range c.Entries {
		f.Append(e.Key, e.Translation)
	}
	return f.Write(localeRoot, c.Language, c.Domain)
}
