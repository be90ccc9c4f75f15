// Package store persists License and LegalCode records in PostgreSQL. One
// License row exists per license variant/version/jurisdiction; one LegalCode
// row per (license, language) document.
package store

import (
	"context"
	"errors"
	"fmt"

	"legalcode-catalog/internal/legalcode"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Store wraps a pgx pool with the record-keeping queries.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the record tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS licenses (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			about TEXT NOT NULL UNIQUE,
			license_code TEXT NOT NULL,
			version TEXT NOT NULL,
			jurisdiction_code TEXT NOT NULL DEFAULT '',
			permits_derivative_works BOOLEAN NOT NULL,
			permits_reproduction BOOLEAN NOT NULL,
			permits_distribution BOOLEAN NOT NULL,
			permits_sharing BOOLEAN NOT NULL,
			requires_share_alike BOOLEAN NOT NULL,
			requires_notice BOOLEAN NOT NULL,
			requires_attribution BOOLEAN NOT NULL,
			requires_source_code BOOLEAN NOT NULL,
			prohibits_commercial_use BOOLEAN NOT NULL,
			prohibits_high_income_nation_use BOOLEAN NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS legal_codes (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			license_id BIGINT NOT NULL REFERENCES licenses(id),
			language_code TEXT NOT NULL,
			html_file TEXT NOT NULL,
			content_hash TEXT NOT NULL DEFAULT '',
			UNIQUE (license_id, language_code)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	log.Info().Msg("Record schema ensured")
	return nil
}

// GetOrCreateLicense finds the License row for an about-URL or creates it
// with the variant's derived permission set. Reports whether a row was
// created.
func (s *Store) GetOrCreateLicense(ctx context.Context, meta legalcode.Metadata, perms legalcode.Permissions) (int64, bool, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `SELECT id FROM licenses WHERE about = $1`, meta.AboutURL).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("query license: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		INSERT INTO licenses (
			about, license_code, version, jurisdiction_code,
			permits_derivative_works, permits_reproduction, permits_distribution,
			permits_sharing, requires_share_alike, requires_notice,
			requires_attribution, requires_source_code, prohibits_commercial_use,
			prohibits_high_income_nation_use
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id`,
		meta.AboutURL, meta.LicenseCode, meta.Version, meta.JurisdictionCode,
		perms.PermitsDerivativeWorks, perms.PermitsReproduction, perms.PermitsDistribution,
		perms.PermitsSharing, perms.RequiresShareAlike, perms.RequiresNotice,
		perms.RequiresAttribution, perms.RequiresSourceCode, perms.ProhibitsCommercialUse,
		perms.ProhibitsHighIncomeNationUse,
	).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("insert license: %w", err)
	}
	return id, true, nil
}

// GetOrCreateLegalCode records a document file for a (license, language)
// pair, updating the stored content hash when the file changed. Reports
// whether a row was created.
func (s *Store) GetOrCreateLegalCode(ctx context.Context, licenseID int64, languageCode, htmlFile, contentHash string) (bool, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		SELECT id FROM legal_codes WHERE license_id = $1 AND language_code = $2`,
		licenseID, languageCode).Scan(&id)
	if err == nil {
		_, err = s.pool.Exec(ctx, `
			UPDATE legal_codes SET html_file = $2, content_hash = $3 WHERE id = $1`,
			id, htmlFile, contentHash)
		if err != nil {
			return false, fmt.Errorf("update legal code: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("query legal code: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO legal_codes (license_id, language_code, html_file, content_hash)
		VALUES ($1, $2, $3, $4)`,
		licenseID, languageCode, htmlFile, contentHash)
	if err != nil {
		return false, fmt.Errorf("insert legal code: %w", err)
	}
	return true, nil
}

// ListLanguages returns the distinct language codes recorded for a version,
// ordered ascending.
func (s *Store) ListLanguages(ctx context.Context, version string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT lc.language_code
		FROM legal_codes lc
		JOIN licenses l ON l.id = lc.license_id
		WHERE l.version = $1 AND l.license_code LIKE 'by%'
		ORDER BY lc.language_code`,
		version)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer rows.Close()

	var languages []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		languages = append(languages, code)
	}
	return languages, rows.Err()
}
