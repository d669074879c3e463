package errors

import "errors"

// ErrOptimisticLock is returned when a row was modified by another
// operation between read and write.
var ErrOptimisticLock = errors.New("record was modified by another operation, please retry")
