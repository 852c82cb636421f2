package runtime

import (
	"github.com/pkg/errors"
)

var (
	ErrNoInstructions         = errors.New("transaction has no instructions")
	ErrProgramAlreadyExists   = errors.New("program is already registered")
	ErrSystemProgramReserved  = errors.New("system program cannot be replaced")
	ErrInvalidAccountEncoding = errors.New("invalid account encoding")
)
