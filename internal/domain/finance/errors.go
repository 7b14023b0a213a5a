package finance

import "errors"

var (
	ErrAdvanceNotFound    = errors.New("salary advance not found")
	ErrAdvanceNotApproved = errors.New("salary advance is not approved")
)
