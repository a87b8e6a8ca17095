package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/stackgrid/pkg/errors"
)

// Exit codes returned by the stackgrid binary.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2   // bad grid definition, flags or paths
	ExitCanceled = 130 // interrupted, as shells report SIGINT
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.IsConfiguration(err):
		return ExitUsage
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidTracks, errors.ErrCodeInvalidViewport,
		errors.ErrCodeInvalidPath, errors.ErrCodeFileNotFound:
		return ExitUsage
	}
	return ExitFailure
}
