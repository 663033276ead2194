// Package pecsstore implements the read-only pictogram store over
// PostgreSQL. Fuzzy lookups rely on the pg_trgm similarity() function;
// exact lookups compare lowercased names.
package pecsstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openaac/pictoapi/internal/domain"
)

// Querier is the minimal query interface, satisfied by *pgxpool.Pool and
// by pgxmock pools in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Config fixes the two-phase fuzzy search shape. The historical behavior
// is PhaseLimit=3 rows per phase, with the translation phase running only
// when the custom phase returned fewer than PhaseTwoTrigger rows.
type Config struct {
	PhaseLimit      int
	PhaseTwoTrigger int
}

// Store provides pictogram lookups backed by PostgreSQL.
type Store struct {
	q   Querier
	cfg Config
}

// New creates a Store. Zero Config fields fall back to the historical
// limits (3 per phase, trigger 4).
func New(q Querier, cfg Config) *Store {
	if cfg.PhaseLimit <= 0 {
		cfg.PhaseLimit = 3
	}
	if cfg.PhaseTwoTrigger <= 0 {
		cfg.PhaseTwoTrigger = 4
	}
	return &Store{q: q, cfg: cfg}
}

const fuzzyCustomSQL = `
SELECT p.id, p.image_url, p.is_custom, p.name_custom, p.user_id, p.created_at,
       NULL::text AS translation_name,
       similarity(p.name_custom, $1) AS similarity
FROM pecs p
WHERE p.is_custom
  AND p.name_custom IS NOT NULL
  AND similarity(p.name_custom, $1) >= $2
ORDER BY similarity DESC
LIMIT $3`

const fuzzyTranslationSQL = `
SELECT p.id, p.image_url, p.is_custom, p.name_custom, p.user_id, p.created_at,
       t.name AS translation_name,
       similarity(t.name, $1) AS similarity
FROM pecs p
JOIN pecs_translations t ON t.pecs_id = p.id
WHERE t.language_code = $3
  AND similarity(t.name, $1) >= $2
ORDER BY similarity DESC
LIMIT $4`

// hitRow mirrors the SELECT column list of both fuzzy queries.
type hitRow struct {
	ID              uuid.UUID  `db:"id"`
	ImageURL        string     `db:"image_url"`
	IsCustom        bool       `db:"is_custom"`
	NameCustom      *string    `db:"name_custom"`
	UserID          *uuid.UUID `db:"user_id"`
	CreatedAt       time.Time  `db:"created_at"`
	TranslationName *string    `db:"translation_name"`
	Similarity      float64    `db:"similarity"`
}

// FindFuzzy searches pictograms by trigram similarity against name.
// Custom (user-authored) names are ranked first; translation rows in the
// requested language are appended only when the custom phase produced
// fewer than PhaseTwoTrigger rows. Each phase returns at most PhaseLimit
// rows. An empty result is not an error.
func (s *Store) FindFuzzy(ctx context.Context, name, language string, threshold float64) ([]domain.FuzzyHit, error) {
	language = domain.NormalizeLanguage(language)

	var customRows []hitRow
	if err := pgxscan.Select(ctx, s.q, &customRows, fuzzyCustomSQL, name, threshold, s.cfg.PhaseLimit); err != nil {
		return nil, mapError(err, "fuzzy custom search")
	}

	hits := toHits(customRows)
	if len(hits) >= s.cfg.PhaseTwoTrigger {
		return hits, nil
	}

	var translationRows []hitRow
	if err := pgxscan.Select(ctx, s.q, &translationRows, fuzzyTranslationSQL, name, threshold, language, s.cfg.PhaseLimit); err != nil {
		return nil, mapError(err, "fuzzy translation search")
	}

	return append(hits, toHits(translationRows)...), nil
}

// FindExact looks a pictogram up by exact (case-insensitive) name in the
// requested language, matching either the translation name or a custom
// name. Translation ties resolve deterministically by language_code order.
// Returns domain.ErrNotFound when nothing matches.
func (s *Store) FindExact(ctx context.Context, name, language string) (*domain.FuzzyHit, error) {
	language = domain.NormalizeLanguage(language)
	lower := strings.ToLower(name)

	query, args, err := sq.
		Select(
			"p.id", "p.image_url", "p.is_custom", "p.name_custom", "p.user_id", "p.created_at",
			"t.name AS translation_name",
			"1.0::float8 AS similarity",
		).
		From("pecs p").
		LeftJoin("pecs_translations t ON t.pecs_id = p.id").
		Where(sq.Or{
			sq.And{
				sq.Eq{"t.language_code": language},
				sq.Expr("lower(t.name) = ?", lower),
			},
			sq.And{
				sq.Eq{"p.is_custom": true},
				sq.Expr("lower(p.name_custom) = ?", lower),
			},
		}).
		OrderBy("t.language_code ASC NULLS LAST").
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build exact lookup: %w", err)
	}

	var rows []hitRow
	if err := pgxscan.Select(ctx, s.q, &rows, query, args...); err != nil {
		return nil, mapError(err, "exact lookup")
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("pictogram %q (%s): %w", name, language, domain.ErrNotFound)
	}

	hit := toHit(rows[0])
	return &hit, nil
}

func toHits(rows []hitRow) []domain.FuzzyHit {
	hits := make([]domain.FuzzyHit, 0, len(rows))
	for _, r := range rows {
		hits = append(hits, toHit(r))
	}
	return hits
}

func toHit(r hitRow) domain.FuzzyHit {
	return domain.FuzzyHit{
		Pictogram: domain.Pictogram{
			ID:         r.ID,
			ImageURL:   r.ImageURL,
			IsCustom:   r.IsCustom,
			NameCustom: r.NameCustom,
			UserID:     r.UserID,
			CreatedAt:  r.CreatedAt,
		},
		TranslationName: r.TranslationName,
		Similarity:      r.Similarity,
	}
}

// mapError converts pgx/pgconn errors into domain errors.
// Context errors pass through as-is.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42883" {
		// undefined_function: pg_trgm extension is missing
		return fmt.Errorf("%s: pg_trgm similarity() unavailable: %w", op, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
