package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/titancargo/courier-site/internal/core/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// Executor Interface - Shared by DB and Transaction
// =============================================================================

// executor abstracts database operations that can be performed on both
// a database connection and a transaction.
type executor interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", withForeignKeys(dsn))
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to open database", ErrConnectionFailed)
	}
	// A single connection keeps ":memory:" databases shared and serialises
	// writers the way SQLite expects.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	// m.Close would close db as well; the store owns it.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStoreError("Ping", "", "", err.Error(), ErrConnectionFailed)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Landing Page Operations
// =============================================================================

// landingPageRow represents a landing page row in the database.
type landingPageRow struct {
	ID           string  `db:"id"`
	TemplateID   string  `db:"template_id"`
	BusinessName string  `db:"business_name"`
	Status       string  `db:"status"`
	Content      string  `db:"content"`
	SEOData      string  `db:"seo_data"`
	ThemeData    string  `db:"theme_data"`
	BusinessData string  `db:"business_data"`
	Images       string  `db:"images"`
	CreatedAt    string  `db:"created_at"`
	UpdatedAt    string  `db:"updated_at"`
	PublishedAt  *string `db:"published_at"`
}

func (s *SQLiteStore) GetLandingPage(ctx context.Context, id string) (*domain.LandingPage, error) {
	return getLandingPage(ctx, s.db, id)
}

func (s *SQLiteStore) GetPublishedLandingPage(ctx context.Context) (*domain.LandingPage, error) {
	return getPublishedLandingPage(ctx, s.db)
}

func (s *SQLiteStore) SaveLandingPage(ctx context.Context, page *domain.LandingPage) error {
	return saveLandingPage(ctx, s.db, page, s.now())
}

func (s *SQLiteStore) DeleteLandingPage(ctx context.Context, id string) error {
	return deleteLandingPage(ctx, s.db, id)
}

func (s *SQLiteStore) ListLandingPages(ctx context.Context, opts ListOptions) ([]domain.LandingPage, error) {
	return listLandingPages(ctx, s.db, opts)
}

// =============================================================================
// Transaction Support
// =============================================================================

func (s *SQLiteStore) WithTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return NewStoreError("WithTx", "", "", "failed to begin transaction", ErrTxFailed)
	}

	txS := &txSQLiteStore{tx: tx, now: s.now}

	if err := fn(txS); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return NewStoreError("WithTx", "", "", fmt.Sprintf("rollback failed after error: %v", err), ErrTxFailed)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return NewStoreError("WithTx", "", "", "failed to commit transaction", ErrTxFailed)
	}

	return nil
}

// =============================================================================
// Transaction Store
// =============================================================================

// txSQLiteStore implements Store within a transaction.
type txSQLiteStore struct {
	tx  *sqlx.Tx
	now func() time.Time
}

func (s *txSQLiteStore) GetLandingPage(ctx context.Context, id string) (*domain.LandingPage, error) {
	return getLandingPage(ctx, s.tx, id)
}

func (s *txSQLiteStore) GetPublishedLandingPage(ctx context.Context) (*domain.LandingPage, error) {
	return getPublishedLandingPage(ctx, s.tx)
}

func (s *txSQLiteStore) SaveLandingPage(ctx context.Context, page *domain.LandingPage) error {
	return saveLandingPage(ctx, s.tx, page, s.now())
}

func (s *txSQLiteStore) DeleteLandingPage(ctx context.Context, id string) error {
	return deleteLandingPage(ctx, s.tx, id)
}

func (s *txSQLiteStore) ListLandingPages(ctx context.Context, opts ListOptions) ([]domain.LandingPage, error) {
	return listLandingPages(ctx, s.tx, opts)
}

func (s *txSQLiteStore) WithTx(ctx context.Context, fn func(Store) error) error {
	// Already in a transaction, just run the function
	return fn(s)
}

func (s *txSQLiteStore) Ping(ctx context.Context) error {
	return nil
}

func (s *txSQLiteStore) Close() error {
	// No-op for tx store
	return nil
}

// =============================================================================
// Shared Implementation Functions
// =============================================================================

func getLandingPage(ctx context.Context, exec executor, id string) (*domain.LandingPage, error) {
	query := `SELECT * FROM landing_pages WHERE id = ?`

	var row landingPageRow
	err := exec.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetLandingPage", "landing_page", id, "landing page not found", ErrNotFound)
		}
		return nil, NewStoreError("GetLandingPage", "landing_page", id, err.Error(), err)
	}

	return rowToLandingPage(&row)
}

func getPublishedLandingPage(ctx context.Context, exec executor) (*domain.LandingPage, error) {
	query := `
		SELECT * FROM landing_pages
		WHERE status = ?
		ORDER BY published_at DESC, updated_at DESC, id ASC
		LIMIT 1`

	var row landingPageRow
	err := exec.GetContext(ctx, &row, query, string(domain.PageStatusPublished))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetPublishedLandingPage", "landing_page", "", "no published landing page", ErrNotFound)
		}
		return nil, NewStoreError("GetPublishedLandingPage", "landing_page", "", err.Error(), err)
	}

	return rowToLandingPage(&row)
}

// saveLandingPage inserts or replaces a landing page. Missing ids, status
// and timestamps are filled in on page so callers see what was stored.
func saveLandingPage(ctx context.Context, exec executor, page *domain.LandingPage, now time.Time) error {
	now = now.UTC().Truncate(time.Second)
	if page.ID == "" {
		page.ID = uuid.NewString()
	}
	if page.Status == "" {
		page.Status = domain.PageStatusDraft
	}
	if !page.Status.IsValid() {
		return NewStoreError("SaveLandingPage", "landing_page", page.ID, fmt.Sprintf("invalid status %q", page.Status), ErrInvalidData)
	}
	if page.CreatedAt.IsZero() {
		page.CreatedAt = now
	}
	page.UpdatedAt = now
	if page.Status == domain.PageStatusPublished && page.PublishedAt == nil {
		page.PublishedAt = &now
	}

	row, err := landingPageToRow(page)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO landing_pages (
			id, template_id, business_name, status, content, seo_data,
			theme_data, business_data, images, created_at, updated_at, published_at
		) VALUES (
			:id, :template_id, :business_name, :status, :content, :seo_data,
			:theme_data, :business_data, :images, :created_at, :updated_at, :published_at
		)
		ON CONFLICT (id) DO UPDATE SET
			template_id = excluded.template_id,
			business_name = excluded.business_name,
			status = excluded.status,
			content = excluded.content,
			seo_data = excluded.seo_data,
			theme_data = excluded.theme_data,
			business_data = excluded.business_data,
			images = excluded.images,
			updated_at = excluded.updated_at,
			published_at = excluded.published_at`

	if _, err := exec.NamedExecContext(ctx, query, row); err != nil {
		return NewStoreError("SaveLandingPage", "landing_page", page.ID, err.Error(), err)
	}
	return nil
}

func deleteLandingPage(ctx context.Context, exec executor, id string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM landing_pages WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteLandingPage", "landing_page", id, err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("DeleteLandingPage", "landing_page", id, "landing page not found", ErrNotFound)
	}
	return nil
}

func listLandingPages(ctx context.Context, exec executor, opts ListOptions) ([]domain.LandingPage, error) {
	opts = opts.Normalize()

	var (
		rows []landingPageRow
		err  error
	)
	if opts.Status != "" {
		query := `SELECT * FROM landing_pages WHERE status = ? ORDER BY updated_at DESC, id ASC LIMIT ? OFFSET ?`
		err = exec.SelectContext(ctx, &rows, query, string(opts.Status), opts.Limit, opts.Offset)
	} else {
		query := `SELECT * FROM landing_pages ORDER BY updated_at DESC, id ASC LIMIT ? OFFSET ?`
		err = exec.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset)
	}
	if err != nil {
		return nil, NewStoreError("ListLandingPages", "landing_page", "", err.Error(), err)
	}

	pages := make([]domain.LandingPage, 0, len(rows))
	for _, row := range rows {
		page, err := rowToLandingPage(&row)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}

	return pages, nil
}

// =============================================================================
// Row Conversion
// =============================================================================

func landingPageToRow(page *domain.LandingPage) (map[string]any, error) {
	fields := map[string]any{
		"content":       page.Content,
		"seo_data":      page.SEOData,
		"theme_data":    page.ThemeData,
		"business_data": page.BusinessData,
		"images":        nonNilImages(page.Images),
	}

	row := map[string]any{
		"id":            page.ID,
		"template_id":   page.TemplateID,
		"business_name": page.BusinessName,
		"status":        string(page.Status),
		"created_at":    page.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":    page.UpdatedAt.UTC().Format(time.RFC3339),
		"published_at":  nil,
	}
	for column, value := range fields {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, NewStoreError("SaveLandingPage", "landing_page", page.ID, "failed to serialize "+column, ErrInvalidData)
		}
		row[column] = string(data)
	}
	if page.PublishedAt != nil {
		row["published_at"] = page.PublishedAt.UTC().Format(time.RFC3339)
	}
	return row, nil
}

func rowToLandingPage(row *landingPageRow) (*domain.LandingPage, error) {
	createdAt, _ := time.Parse(time.RFC3339, row.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, row.UpdatedAt)

	page := &domain.LandingPage{
		ID:           row.ID,
		TemplateID:   row.TemplateID,
		BusinessName: row.BusinessName,
		Status:       domain.PageStatus(row.Status),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}

	fields := []struct {
		column string
		raw    string
		dest   any
	}{
		{"content", row.Content, &page.Content},
		{"seo_data", row.SEOData, &page.SEOData},
		{"theme_data", row.ThemeData, &page.ThemeData},
		{"business_data", row.BusinessData, &page.BusinessData},
		{"images", row.Images, &page.Images},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw), f.dest); err != nil {
			return nil, NewStoreError("rowToLandingPage", "landing_page", row.ID, "failed to deserialize "+f.column, ErrInvalidData)
		}
	}

	if row.PublishedAt != nil {
		t, _ := time.Parse(time.RFC3339, *row.PublishedAt)
		page.PublishedAt = &t
	}

	return page, nil
}

func nonNilImages(images []domain.Image) []domain.Image {
	if images == nil {
		return []domain.Image{}
	}
	return images
}
