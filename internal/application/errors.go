package application

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidTitle       = errors.New("invalid title")
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidID          = errors.New("invalid id")
	ErrForbidden          = errors.New("forbidden")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNoPendingRequest   = errors.New("no pending role request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrInvalidPrompt      = errors.New("invalid prompt")
	ErrAIUnavailable      = errors.New("ai processing failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
