package command

import "errors"

var (
	ErrShapeNotFound      = errors.New("shape not found")
	ErrInputShapeNotFound = errors.New("input shape not found")
)
