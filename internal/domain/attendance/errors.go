package attendance

import "errors"

var (
	ErrRecordNotFound        = errors.New("attendance record not found")
	ErrBucketNotFound        = errors.New("unmatched punch bucket not found")
	ErrBucketAlreadyResolved = errors.New("unmatched punch bucket already resolved")
	ErrInvalidPunch          = errors.New("punch is missing its id, date or time")
	ErrIdentifierBlocked     = errors.New("biometric id is blocked")
)
