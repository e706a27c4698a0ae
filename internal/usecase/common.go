package usecase

import (
	"context"
	"errors"
	"strings"

	"beedical/internal/delivery/http/middleware"
	"beedical/internal/domain/entity"
	"beedical/internal/domain/repository"
	"beedical/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUnauthenticated = apperror.Unauthorized("caller identity could not be resolved")
	ErrUnknownAccount  = apperror.Unauthorized("no local account for this identity, call /auth/sync first")
	ErrInvalidDate     = apperror.InvalidInput("invalid date format, use YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

// currentUser resolves the local account of the authenticated caller. A
// valid token whose subject was never synced is treated as unauthenticated.
func currentUser(ctx context.Context, db *gorm.DB, userRepo repository.UserRepository) (*entity.User, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := userRepo.FindByExternalID(ctx, db, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownAccount
	}
	return user, nil
}

// actorID is the audit actor: the caller's local id when it has one
func actorID(ctx context.Context, db *gorm.DB, userRepo repository.UserRepository) *uuid.UUID {
	user, err := currentUser(ctx, db, userRepo)
	if err != nil {
		return nil
	}
	return &user.ID
}

// splitName turns an identity-provider display name into first and last name
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}

func validSex(sex string) bool {
	switch sex {
	case entity.SexMale, entity.SexFemale, entity.SexUnspecified:
		return true
	}
	return false
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isDuplicateKeyError(err error, constraintName string) bool {
	return violates(err, pgerrcode.UniqueViolation, constraintName)
}

func isForeignKeyError(err error, constraintName string) bool {
	return violates(err, pgerrcode.ForeignKeyViolation, constraintName)
}

// violates matches a PostgreSQL error by SQLSTATE and constraint name. The
// schema names every constraint, see the migration files.
func violates(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == code && strings.EqualFold(pgErr.ConstraintName, constraintName)
}
