package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestInterestRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewInterestRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "interests" ORDER BY interest_name`).
		WillReturnRows(sqlmock.NewRows([]string{"interest_id", "interest_name"}).
			AddRow(2, "golang").
			AddRow(1, "music"))

	interests, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, interests, 2)
	assert.Equal(t, "golang", interests[0].InterestName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
