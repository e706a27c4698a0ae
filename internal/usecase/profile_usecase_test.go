package usecase

import (
	"testing"

	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"
	"beedical/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfileRequest() *dto.UpsertProfileRequest {
	return &dto.UpsertProfileRequest{
		FirstName:  "Amine",
		LastName:   "El Idrissi",
		Email:      "amine@example.ma",
		Sex:        entity.SexMale,
		BirthDate:  "1990-04-12",
		BirthPlace: "Fès",
		Phone:      "+212600000000",
		City:       "Casablanca",
		CIN:        "BE123456",
	}
}

func TestProfile_GetBeforeUpsertIsNotFound(t *testing.T) {
	db, _ := newTestDB(t)
	user := &entity.User{ID: uuid.New(), ExternalID: "kc-1"}
	uc := NewProfileUsecase(db, quietLogger(), newFakeUserRepo(user), &fakeProfileRepo{}, &fakeAuditService{})

	_, err := uc.GetMyProfile(asCaller("kc-1"))

	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfile_UnsyncedCallerIsUnauthorized(t *testing.T) {
	db, _ := newTestDB(t)
	user := &entity.User{ID: uuid.New(), ExternalID: "kc-1"}
	uc := NewProfileUsecase(db, quietLogger(), newFakeUserRepo(user), &fakeProfileRepo{}, &fakeAuditService{})

	_, err := uc.GetMyProfile(asCaller("kc-unknown"))

	require.ErrorIs(t, err, ErrUnknownAccount)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestProfile_UpsertCreatesThenUpdates(t *testing.T) {
	db, mock := newTestDB(t)
	user := &entity.User{ID: uuid.New(), ExternalID: "kc-1"}
	profiles := &fakeProfileRepo{}
	audit := &fakeAuditService{}
	uc := NewProfileUsecase(db, quietLogger(), newFakeUserRepo(user), profiles, audit)

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := uc.UpsertMyProfile(asCaller("kc-1"), validProfileRequest())
	require.NoError(t, err)
	assert.Equal(t, "1990-04-12", created.BirthDate)
	assert.Equal(t, "BE123456", created.CIN)
	assert.True(t, created.HasAccount)

	req := validProfileRequest()
	req.City = "Tanger"
	mock.ExpectBegin()
	mock.ExpectCommit()
	updated, err := uc.UpsertMyProfile(asCaller("kc-1"), req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "keeping the own CIN is not a conflict")
	assert.Equal(t, "Tanger", updated.City)
	assert.Len(t, profiles.profiles, 1)
	assert.Equal(t, 1, profiles.updated)
	assert.Equal(t, []string{entity.AuditActionProfileUpdate, entity.AuditActionProfileUpdate}, audit.actions)

	got, err := uc.GetMyProfile(asCaller("kc-1"))
	require.NoError(t, err)
	assert.Equal(t, "Tanger", got.City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfile_UpsertRejects(t *testing.T) {
	cin := "BE123456"
	tests := []struct {
		name   string
		mutate func(*dto.UpsertProfileRequest)
		want   error
		kind   apperror.Kind
	}{
		{name: "cin of someone else", mutate: func(*dto.UpsertProfileRequest) {}, want: ErrCINTaken, kind: apperror.KindConflict},
		{name: "unknown sex", mutate: func(r *dto.UpsertProfileRequest) { r.Sex = "X" }, want: ErrInvalidSex, kind: apperror.KindInvalidInput},
		{name: "bad birth date", mutate: func(r *dto.UpsertProfileRequest) { r.BirthDate = "12/04/1990" }, want: ErrInvalidDate, kind: apperror.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			user := &entity.User{ID: uuid.New(), ExternalID: "kc-1"}
			profiles := &fakeProfileRepo{profiles: []*entity.Profile{{ID: uuid.New(), CIN: &cin, FirstName: "Other"}}}
			uc := NewProfileUsecase(db, quietLogger(), newFakeUserRepo(user), profiles, &fakeAuditService{})

			req := validProfileRequest()
			tt.mutate(req)
			_, err := uc.UpsertMyProfile(asCaller("kc-1"), req)

			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
			assert.Len(t, profiles.profiles, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
