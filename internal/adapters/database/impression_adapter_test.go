package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

func impressionKeysFixture() []entities.ImpressionKey {
	day := time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC)
	return []entities.ImpressionKey{
		{CompanyID: "co1", NormalizedQuery: "lawyer", Location: "Austin", UserRegion: "US", Date: day},
		{CompanyID: "co2", NormalizedQuery: "lawyer", Location: "Austin", UserRegion: "US", Date: day},
	}
}

func TestImpressionAdapter_IncrementBatch_SingleTransaction(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewImpressionAdapter(client)

	upsert := sqlFragments(
		`INSERT INTO "search_impressions"`,
		`'2026-05-01'`,
		`ON CONFLICT (company_id, normalized_query, location, user_region, date) DO UPDATE SET`,
		`"search_impressions"."impressions" + 1`,
	)
	mock.ExpectBegin()
	mock.ExpectExec(upsert).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsert).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, adapter.IncrementBatch(context.Background(), impressionKeysFixture()))
}

func TestImpressionAdapter_IncrementBatch_RollsBackOnFailure(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewImpressionAdapter(client)

	mock.ExpectBegin()
	mock.ExpectExec(sqlFragments(`INSERT INTO "search_impressions"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(sqlFragments(`INSERT INTO "search_impressions"`)).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := adapter.IncrementBatch(context.Background(), impressionKeysFixture())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestImpressionAdapter_IncrementBatch_EmptyIsNoop(t *testing.T) {
	client, _ := setupMockClient(t)
	adapter := NewImpressionAdapter(client)

	assert.NoError(t, adapter.IncrementBatch(context.Background(), nil))
}
