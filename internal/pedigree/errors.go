package pedigree

import "errors"

var (
	ErrIdentityConflict = errors.New("identity conflict")
	ErrRoleConflict     = errors.New("role conflict")
	ErrDuplicateParent  = errors.New("duplicate parent conflict")
	ErrOrdering         = errors.New("ordering violation")
)

// EdgeError отказ в добавлении ребра родословной.
// Kind - одна из ошибок выше, Field - поле запроса, к которому относится ошибка.
type EdgeError struct {
	Kind    error
	Field   string
	Message string
}

func (e *EdgeError) Error() string {
	return e.Message
}

func (e *EdgeError) Unwrap() error {
	return e.Kind
}

func edgeError(kind error, field, message string) *EdgeError {
	return &EdgeError{Kind: kind, Field: field, Message: message}
}
