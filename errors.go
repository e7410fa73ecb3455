package sitrep

import (
	"errors"

	"github.com/dmitrymomot/sitrep/pkg/content"
)

var (
	// ErrConfiguration is returned when required settings are missing or invalid.
	// The process must stop before doing any work.
	ErrConfiguration = errors.New("sitrep: invalid configuration")

	// ErrNothingToSend signals a clean skip: there are no report files.
	ErrNothingToSend = content.ErrNoContent

	// ErrRender is returned when the report document cannot be produced.
	ErrRender = errors.New("sitrep: failed to render report")
)
