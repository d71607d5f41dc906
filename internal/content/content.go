// Package content merges the primary and secondary stores into the public
// view of the blog and drives the publish flow.
package content

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrValidation marks a publish rejected before any side effect.
var ErrValidation = errors.New("validation failed")

// ErrStorage marks an underlying store failure on a write path.
var ErrStorage = errors.New("storage failure")

var contentLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	contentLogger = l
}
