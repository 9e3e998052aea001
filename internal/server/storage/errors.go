package storage

import "errors"

// ErrItemNotFound indicates that the mirror row does not exist
var ErrItemNotFound = errors.New("sync item not found")
