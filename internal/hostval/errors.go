package hostval

import "errors"

var (
	ErrNotIndexable    = errors.New("value is not subscriptable")
	ErrKeyNotFound     = errors.New("key not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrFormatSpec      = errors.New("invalid format specifier")
	ErrConversion      = errors.New("invalid conversion")
)
