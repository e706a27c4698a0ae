package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagementGrantRepository_DeleteOnlyTouchesGrants(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewManagementGrantRepository()
	managerID, dependentID := uuid.New(), uuid.New()

	mock.ExpectExec(`DELETE FROM "management_grants" WHERE manager_id = \$1 AND dependent_id = \$2`).
		WithArgs(managerID, dependentID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(db, managerID, dependentID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	// no statement against dependents or profiles may run
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagementGrantRepository_FindByManagerAndDependent_NoGrant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewManagementGrantRepository()

	mock.ExpectQuery(`SELECT \* FROM "management_grants" WHERE manager_id = \$1 AND dependent_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	grant, err := repo.FindByManagerAndDependent(db, uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, grant)
}

func TestManagementGrantRepository_FindByManagerAndDependent_PreloadsProfile(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)
	repo := NewManagementGrantRepository()
	managerID, dependentID, profileID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "management_grants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "manager_id", "dependent_id", "role", "can_modify_profile", "can_manage_appointments", "can_manage_documents"}).
			AddRow(uuid.New().String(), managerID.String(), dependentID.String(), "Responsable légal", true, true, true))
	mock.ExpectQuery(`SELECT \* FROM "dependents"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "account_exists"}).
			AddRow(dependentID.String(), profileID.String(), false))
	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow(profileID.String(), "Yasmine", "Alaoui", "yasmine@example.ma"))

	grant, err := repo.FindByManagerAndDependent(db, managerID, dependentID)

	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.True(t, grant.CanModifyProfile)
	assert.Equal(t, "Yasmine", grant.Dependent.Profile.FirstName)
}

func TestDependentRepository_FindByProfileID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDependentRepository()
	dependentID, profileID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "dependents" WHERE profile_id = \$1 ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id"}).AddRow(dependentID.String(), profileID.String()))
	mock.ExpectQuery(`SELECT \* FROM "dependents" WHERE profile_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	dependent, err := repo.FindByProfileID(db, profileID)
	require.NoError(t, err)
	require.NotNil(t, dependent)
	assert.Equal(t, dependentID, dependent.ID)

	dependent, err = repo.FindByProfileID(db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, dependent)
}
