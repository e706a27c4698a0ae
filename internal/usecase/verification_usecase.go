package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"beedical/internal/delivery/dto"
	"beedical/internal/infrastructure/cache"
	"beedical/internal/service"
	"beedical/pkg/apperror"
	"beedical/pkg/metrics"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidVerificationCode = apperror.Unauthorized("invalid or expired verification code")
	ErrVerificationUnavailable = apperror.New(apperror.KindInternal, "verification service is temporarily unavailable")
)

const (
	verificationKeyPrefix         = "verification:"
	verificationAttemptsKeyPrefix = "verification-attempts:"
	verificationCodeDigits        = 6
	// maxVerificationAttempts wrong guesses burn the pending code
	maxVerificationAttempts = 5
)

// VerificationUsecase issues and checks one-time email codes
type VerificationUsecase interface {
	SendCode(ctx context.Context, req *dto.SendVerificationCodeRequest) (*dto.SendVerificationCodeResponse, error)
	CheckCode(ctx context.Context, req *dto.CheckVerificationCodeRequest) (*dto.CheckVerificationCodeResponse, error)
}

type verificationUsecase struct {
	log      *logrus.Logger
	store    cache.KVStore
	notifier service.Notifier
	metrics  *metrics.Metrics
	codeTTL  time.Duration
}

func NewVerificationUsecase(
	log *logrus.Logger,
	store cache.KVStore,
	notifier service.Notifier,
	m *metrics.Metrics,
	codeTTL time.Duration,
) VerificationUsecase {
	return &verificationUsecase{
		log:      log,
		store:    store,
		notifier: notifier,
		metrics:  m,
		codeTTL:  codeTTL,
	}
}

// SendCode replaces any pending code for the address. Delivery is
// best-effort: the code stays valid even when the mail could not be sent.
func (u *verificationUsecase) SendCode(ctx context.Context, req *dto.SendVerificationCodeRequest) (*dto.SendVerificationCodeResponse, error) {
	code, err := generateCode(verificationCodeDigits)
	if err != nil {
		u.log.Warnf("Failed to generate verification code: %+v", err)
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if err := u.store.Set(ctx, verificationKey(email), code, u.codeTTL); err != nil {
		u.log.Warnf("Failed to store verification code: %+v", err)
		return nil, ErrVerificationUnavailable
	}
	if err := u.store.Delete(ctx, verificationAttemptsKey(email)); err != nil {
		u.log.Warnf("Failed to reset verification attempts: %+v", err)
	}

	sendErr := u.notifier.SendVerificationCode(ctx, email, code)
	u.metrics.RecordNotification("verification_code", sendErr == nil)
	if sendErr != nil {
		u.log.WithField("email", email).Warnf("Failed to send verification code: %+v", sendErr)
	}

	return &dto.SendVerificationCodeResponse{ExpiresIn: int64(u.codeTTL.Seconds())}, nil
}

// CheckCode consumes the code. A second check with the same code fails, and
// the code is dropped after maxVerificationAttempts wrong guesses.
func (u *verificationUsecase) CheckCode(ctx context.Context, req *dto.CheckVerificationCodeRequest) (*dto.CheckVerificationCodeResponse, error) {
	email := normalizeEmail(req.Email)
	ok, err := u.store.CompareAndDelete(ctx, verificationKey(email), req.Code)
	if err != nil {
		u.log.Warnf("Failed to check verification code: %+v", err)
		return nil, ErrVerificationUnavailable
	}
	if !ok {
		if err := u.recordFailedAttempt(ctx, email); err != nil {
			u.log.Warnf("Failed to count verification attempt: %+v", err)
			return nil, ErrVerificationUnavailable
		}
		return nil, ErrInvalidVerificationCode
	}

	if err := u.store.Delete(ctx, verificationAttemptsKey(email)); err != nil {
		u.log.Warnf("Failed to reset verification attempts: %+v", err)
	}
	return &dto.CheckVerificationCodeResponse{Verified: true}, nil
}

func (u *verificationUsecase) recordFailedAttempt(ctx context.Context, email string) error {
	attempts, err := u.store.Incr(ctx, verificationAttemptsKey(email), u.codeTTL)
	if err != nil {
		return err
	}
	if attempts < maxVerificationAttempts {
		return nil
	}

	u.log.WithField("email", email).Warn("Verification code dropped after too many failed attempts")
	return u.store.Delete(ctx, verificationKey(email), verificationAttemptsKey(email))
}

func verificationKey(email string) string {
	return verificationKeyPrefix + email
}

func verificationAttemptsKey(email string) string {
	return verificationAttemptsKeyPrefix + email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateCode returns a zero-padded decimal code of the given length
func generateCode(digits int) (string, error) {
	if digits <= 0 {
		return "", errors.New("code length must be positive")
	}
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}
