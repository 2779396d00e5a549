package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrNotEnoughBalance  = errors.New("not enough balance")
	ErrNegativeAmount    = errors.New("negative amount")
	ErrNonPositiveAmount = errors.New("non-positive amount")
	ErrOwnerConflict     = errors.New("owner conflict")
)
