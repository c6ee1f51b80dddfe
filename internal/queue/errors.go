package queue

import "errors"

var (
	ErrNoValidFiles    = errors.New("no valid image files")
	ErrEmptyQueue      = errors.New("queue is empty")
	ErrNameTooLong     = errors.New("file name too long")
	ErrItemNotFound    = errors.New("item not found")
	ErrIndexOutOfRange = errors.New("index out of range")
)
