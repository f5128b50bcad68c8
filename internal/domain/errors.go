package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrEditConflict   = errors.New("edit conflict")
	ErrAlreadyActive  = errors.New("user already active")
	ErrInactive       = errors.New("user inactive")
)

// ErrValidation accumulates per-field validation failures; it satisfies the
// error interface on the value receiver, so unwrap to *ErrValidation to get
// at the field map.
type ErrValidation struct {
	Errors map[string]string
}

func NewErrValidation() *ErrValidation {
	return &ErrValidation{Errors: make(map[string]string)}
}

func (ErrValidation) Error() string {
	return "validation error"
}

func (e *ErrValidation) AddError(field, message string) {
	e.Errors[field] = message
}

// Check records message under field when ok is false.
func (e *ErrValidation) Check(ok bool, field, message string) {
	if !ok {
		e.AddError(field, message)
	}
}

func (e *ErrValidation) HasErrors() bool {
	return len(e.Errors) > 0
}
