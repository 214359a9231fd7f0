package slycat

import "errors"

var (
	ErrOutputExists       = errors.New("slycat: output exists")
	ErrPathCollision      = errors.New("slycat: file and folder share a name")
	ErrUnreadableEncoding = errors.New("slycat: no candidate encoding decodes file")
	ErrMalformedArchive   = errors.New("slycat: no records found in document")
	ErrInvalidPath        = errors.New("slycat: invalid path")
	ErrLimitExceeded      = errors.New("slycat: limit exceeded")
)
