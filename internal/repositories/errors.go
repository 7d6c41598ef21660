package repositories

import "errors"

var (
	// ErrNotFound marks a store or record that does not exist yet.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt marks a store that exists but cannot be parsed. Callers
	// must not treat it as empty: a corrupt credential store silently
	// becoming "no users" would lock everyone out.
	ErrCorrupt = errors.New("store corrupt")

	// ErrAlreadyExists marks a uniqueness violation on insert.
	ErrAlreadyExists = errors.New("already exists")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsCorruptError(err error) bool {
	return errors.Is(err, ErrCorrupt)
}

func IsAlreadyExistsError(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
