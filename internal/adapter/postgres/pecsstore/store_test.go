package pecsstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaac/pictoapi/internal/domain"
)

func hitColumns() []string {
	return []string{"id", "image_url", "is_custom", "name_custom", "user_id", "created_at", "translation_name", "similarity"}
}

func strPtr(s string) *string { return &s }

func TestFindFuzzy_TwoPhases(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	customID := uuid.New()
	translatedID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`similarity\(p\.name_custom`).
		WithArgs("gatto", 0.3, 3).
		WillReturnRows(pgxmock.NewRows(hitColumns()).
			AddRow(customID, "/img/custom.png", true, strPtr("gattone"), &userID, now, (*string)(nil), 0.55))

	mock.ExpectQuery(`similarity\(t\.name`).
		WithArgs("gatto", 0.3, "it", 3).
		WillReturnRows(pgxmock.NewRows(hitColumns()).
			AddRow(translatedID, "/img/cat.png", false, (*string)(nil), (*uuid.UUID)(nil), now, strPtr("gatto"), 0.91))

	store := New(mock, Config{PhaseLimit: 3, PhaseTwoTrigger: 4})
	hits, err := store.FindFuzzy(context.Background(), "gatto", "it", 0.3)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, customID, hits[0].ID)
	assert.Equal(t, "gattone", hits[0].Name())
	assert.Equal(t, translatedID, hits[1].ID)
	assert.Equal(t, "gatto", hits[1].Name())
	assert.InDelta(t, 0.91, hits[1].Similarity, 1e-9)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFuzzy_SkipsTranslationPhaseWhenSatisfied(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`similarity\(p\.name_custom`).
		WithArgs("casa", 0.3, 3).
		WillReturnRows(pgxmock.NewRows(hitColumns()).
			AddRow(uuid.New(), "/a.png", true, strPtr("casa"), (*uuid.UUID)(nil), now, (*string)(nil), 1.0))

	store := New(mock, Config{PhaseLimit: 3, PhaseTwoTrigger: 1})
	hits, err := store.FindFuzzy(context.Background(), "casa", "it", 0.3)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFuzzy_EmptyIsNotError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`similarity\(p\.name_custom`).
		WithArgs("xyzzy", 0.3, 3).
		WillReturnRows(pgxmock.NewRows(hitColumns()))
	mock.ExpectQuery(`similarity\(t\.name`).
		WithArgs("xyzzy", 0.3, "it", 3).
		WillReturnRows(pgxmock.NewRows(hitColumns()))

	store := New(mock, Config{})
	hits, err := store.FindFuzzy(context.Background(), "xyzzy", "it", 0.3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFindFuzzy_NormalizesLanguage(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`similarity\(p\.name_custom`).
		WithArgs("haus", 0.3, 3).
		WillReturnRows(pgxmock.NewRows(hitColumns()))
	mock.ExpectQuery(`similarity\(t\.name`).
		WithArgs("haus", 0.3, "de", 3).
		WillReturnRows(pgxmock.NewRows(hitColumns()))

	store := New(mock, Config{})
	_, err = store.FindFuzzy(context.Background(), "haus", "DE-AT", 0.3)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindExact_Found(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`FROM pecs p LEFT JOIN pecs_translations`).
		WithArgs("it", "gatto", true, "gatto").
		WillReturnRows(pgxmock.NewRows(hitColumns()).
			AddRow(id, "/img/cat.png", false, (*string)(nil), (*uuid.UUID)(nil), now, strPtr("gatto"), 1.0))

	store := New(mock, Config{})
	hit, err := store.FindExact(context.Background(), "Gatto", "it")
	require.NoError(t, err)
	assert.Equal(t, id, hit.ID)
	assert.Equal(t, "gatto", hit.Name())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindExact_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM pecs p LEFT JOIN pecs_translations`).
		WithArgs("it", "xyzzy", true, "xyzzy").
		WillReturnRows(pgxmock.NewRows(hitColumns()))

	store := New(mock, Config{})
	_, err = store.FindExact(context.Background(), "xyzzy", "it")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindFuzzy_QueryError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`similarity\(p\.name_custom`).
		WithArgs("gatto", 0.3, 3).
		WillReturnError(errors.New("connection refused"))

	store := New(mock, Config{})
	_, err = store.FindFuzzy(context.Background(), "gatto", "it", 0.3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuzzy custom search")
}
