package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestCollaborationCreate_LocksProjectRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollaborationRepository(db)

	lockErr := errors.New("lock wait timeout")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE "projects"."id" = \$1 .*FOR UPDATE`).
		WillReturnError(lockErr)
	mock.ExpectRollback()

	err := repo.Create(&models.Collaboration{ProjectID: 3, UserID: 9}, func(LockedProject, *models.Collaboration) error {
		t.Fatal("guard must not run when the lock fails")
		return nil
	})

	assert.ErrorIs(t, err, lockErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaborationTransition_CountsUnderLockAndRollsBackOnGuardError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollaborationRepository(db)

	errFull := errors.New("no vacancy")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "collaborations" WHERE "collaborations"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "user_id", "state", "role"}).
			AddRow(7, 3, 9, "PENDING", "COLLABORATOR"))
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE "projects"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "target_collaborators"}).
			AddRow(3, 1, 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "collaborations" WHERE project_id = \$1 AND state = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.Transition(7, func(locked LockedProject, collab *models.Collaboration) error {
		assert.Equal(t, uint64(1), locked.Project.CreatorID)
		assert.Equal(t, int64(1), locked.Accepted)
		assert.Equal(t, models.CollaborationPending, collab.State)
		return errFull
	})

	assert.ErrorIs(t, err, errFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}
