package collections

import "errors"

var (
	ErrValueExisted    = errors.New("value existed")
	ErrValueNotExisted = errors.New("value not existed")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrCorrupted       = errors.New("index table corrupted")
)
