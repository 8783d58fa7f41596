package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup or update targets a thread that
	// does not exist. It hides driver errors such as sql.ErrNoRows from the
	// service layer, which translates it into app_errors.ErrNotFound.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate is returned when a message id is already taken.
	ErrDuplicate = errors.New("repository: duplicate")
)
