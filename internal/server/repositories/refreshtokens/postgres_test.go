package refreshtokens

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/focussync/internal/common"
)

func TestPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO refresh_tokens`)).
		WithArgs("tok", "u1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.Create(context.Background(), "u1", "tok", time.Hour))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Consume(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM refresh_tokens`)).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))

	repo := NewPostgresRepository(db)
	userID, err := repo.Consume(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ConsumeMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM refresh_tokens`)).
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	repo := NewPostgresRepository(db)
	_, err = repo.Consume(context.Background(), "gone")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
