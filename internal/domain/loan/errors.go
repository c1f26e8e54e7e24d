package loan

import "sikopifasta-backend/internal/domain/apperr"

var (
	ErrNotFound          = apperr.New(apperr.ErrNotFound, "loan not found")
	ErrInvalidTransition = apperr.New(apperr.ErrState, "loan is not in a state that allows this operation")
	ErrAssetUnavailable  = apperr.New(apperr.ErrConflict, "asset is not available")
	ErrAssetLocked       = apperr.New(apperr.ErrConflict, "asset is already claimed by another loan")
	ErrLockMismatch      = apperr.New(apperr.ErrConflict, "asset is not locked for this loan")
)
