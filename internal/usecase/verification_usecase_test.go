package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"beedical/internal/delivery/dto"
	"beedical/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	}

	_, err := generateCode(0)
	assert.Error(t, err)
}

func TestVerification_SendThenCheckOnce(t *testing.T) {
	store := newKVStore()
	notifier := &fakeNotifier{}
	uc := NewVerificationUsecase(quietLogger(), store, notifier, nil, 10*time.Minute)
	ctx := context.Background()

	sent, err := uc.SendCode(ctx, &dto.SendVerificationCodeRequest{Email: " Amine@Example.ma "})
	require.NoError(t, err)
	assert.Equal(t, int64(600), sent.ExpiresIn)
	assert.Equal(t, 10*time.Minute, store.ttls["verification:amine@example.ma"])

	code := notifier.codes["amine@example.ma"]
	require.NotEmpty(t, code)

	_, err = uc.CheckCode(ctx, &dto.CheckVerificationCodeRequest{Email: "amine@example.ma", Code: "000000x"})
	require.ErrorIs(t, err, ErrInvalidVerificationCode)

	assert.Equal(t, "1", store.values["verification-attempts:amine@example.ma"])

	ok, err := uc.CheckCode(ctx, &dto.CheckVerificationCodeRequest{Email: "AMINE@example.ma", Code: code})
	require.NoError(t, err)
	assert.True(t, ok.Verified)
	assert.NotContains(t, store.values, "verification-attempts:amine@example.ma")

	_, err = uc.CheckCode(ctx, &dto.CheckVerificationCodeRequest{Email: "amine@example.ma", Code: code})
	assert.ErrorIs(t, err, ErrInvalidVerificationCode)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestVerification_TooManyWrongGuessesDropTheCode(t *testing.T) {
	store := newKVStore()
	notifier := &fakeNotifier{}
	uc := NewVerificationUsecase(quietLogger(), store, notifier, nil, 10*time.Minute)
	ctx := context.Background()
	req := &dto.SendVerificationCodeRequest{Email: "a@example.ma"}

	_, err := uc.SendCode(ctx, req)
	require.NoError(t, err)
	code := notifier.codes["a@example.ma"]
	wrong := "abcdef"

	for i := 0; i < maxVerificationAttempts; i++ {
		_, err := uc.CheckCode(ctx, &dto.CheckVerificationCodeRequest{Email: "a@example.ma", Code: wrong})
		require.ErrorIs(t, err, ErrInvalidVerificationCode)
	}
	assert.NotContains(t, store.values, "verification:a@example.ma")

	_, err = uc.CheckCode(ctx, &dto.CheckVerificationCodeRequest{Email: "a@example.ma", Code: code})
	assert.ErrorIs(t, err, ErrInvalidVerificationCode)

	// a new code starts a fresh count
	_, err = uc.SendCode(ctx, req)
	require.NoError(t, err)
	code = notifier.codes["a@example.ma"]
	for i := 0; i < maxVerificationAttempts-1; i++ {
		_, err := uc.CheckCode(ctx, &dto.CheckVerificationCodeRequest{Email: "a@example.ma", Code: wrong})
		require.ErrorIs(t, err, ErrInvalidVerificationCode)
	}
	ok, err := uc.CheckCode(ctx, &dto.CheckVerificationCodeRequest{Email: "a@example.ma", Code: code})
	require.NoError(t, err)
	assert.True(t, ok.Verified)
}

func TestVerification_MailFailureKeepsTheCode(t *testing.T) {
	store := newKVStore()
	notifier := &fakeNotifier{err: errors.New("mail api down")}
	uc := NewVerificationUsecase(quietLogger(), store, notifier, nil, time.Minute)

	_, err := uc.SendCode(context.Background(), &dto.SendVerificationCodeRequest{Email: "a@example.ma"})

	require.NoError(t, err)
	assert.Contains(t, store.values, "verification:a@example.ma")
}

func TestVerification_StoreDown(t *testing.T) {
	store := newKVStore()
	store.err = errors.New("connection refused")
	uc := NewVerificationUsecase(quietLogger(), store, &fakeNotifier{}, nil, time.Minute)

	_, err := uc.SendCode(context.Background(), &dto.SendVerificationCodeRequest{Email: "a@example.ma"})
	assert.ErrorIs(t, err, ErrVerificationUnavailable)

	_, err = uc.CheckCode(context.Background(), &dto.CheckVerificationCodeRequest{Email: "a@example.ma", Code: "123456"})
	assert.ErrorIs(t, err, ErrVerificationUnavailable)
}
