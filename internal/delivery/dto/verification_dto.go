package dto

// Request DTOs

type SendVerificationCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckVerificationCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// Response DTOs

type SendVerificationCodeResponse struct {
	ExpiresIn int64 `json:"expiresIn"`
}

type CheckVerificationCodeResponse struct {
	Verified bool `json:"verified"`
}
