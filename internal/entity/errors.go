package entity

import "errors"

// Domain errors
var (
	// Survey definition errors (caught at startup)
	ErrUnknownQuestion   = errors.New("unknown question key")
	ErrDuplicateKey      = errors.New("duplicate question key")
	ErrInvalidModality   = errors.New("invalid question modality")
	ErrInvalidRule       = errors.New("invalid conditional rule")
	ErrInvalidDefinition = errors.New("invalid survey definition")

	// Transition rejections (non-fatal, state unchanged)
	ErrFollowupPending    = errors.New("free-text follow-up answer expected")
	ErrMalformedSelection = errors.New("malformed selection")
	ErrStaleQuestion      = errors.New("stale or out-of-order selection")
	ErrDuplicateAnswer    = errors.New("question already answered")
	ErrWrongModality      = errors.New("answer modality does not match question")
	ErrSurveyComplete     = errors.New("survey already complete")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Persistence errors
	ErrAppendFailed = errors.New("append row to sheet failed")
)
