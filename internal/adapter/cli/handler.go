package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/usecase"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// SearchHandler runs one search from a command line.
type SearchHandler struct {
	useCase usecase.FlightSearchUseCase
	stdout  io.Writer
	stderr  io.Writer
	log     *logger.Logger
}

// NewSearchHandler creates a SearchHandler. Messages for the user go to
// stdout and stderr; diagnostics go to log.
func NewSearchHandler(uc usecase.FlightSearchUseCase, stdout, stderr io.Writer, log *logger.Logger) *SearchHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SearchHandler{useCase: uc, stdout: stdout, stderr: stderr, log: log}
}

// Run executes an already parsed command line and returns the exit code.
// A panic in the pipeline is logged and reported as an error exit.
func (h *SearchHandler) Run(ctx context.Context, args *SearchArgs) (code int) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", string(debug.Stack())).
				Msg("Panic recovered")
			fmt.Fprintln(h.stderr, "An unexpected error occurred")
			code = ExitError
		}
	}()

	req, err := ToSearchRequest(args)
	if err != nil {
		return h.handleUsageError(err)
	}

	outcome, err := h.useCase.Search(ctx, req)
	if err != nil {
		return h.handleError(err)
	}

	if outcome.Declined {
		return ExitOK
	}
	if outcome.NotifyErr != nil {
		fmt.Fprintln(h.stderr, "Failed to send email.")
	} else if outcome.Notified {
		fmt.Fprintln(h.stdout, "Email sent successfully.")
	}
	return ExitOK
}

// handleUsageError prints every argument error.
func (h *SearchHandler) handleUsageError(err error) int {
	return ExitCodeForParseError(err, h.stderr)
}

// handleError maps pipeline errors to messages and exit codes.
func (h *SearchHandler) handleError(err error) int {
	switch {
	case domain.IsInvalidRequest(err):
		// Validation messages are shown verbatim.
		fmt.Fprintln(h.stderr, err.Error())
	case errors.Is(err, domain.ErrDepartureUnresolved):
		fmt.Fprintln(h.stderr, "Unable to find the departure location:", err)
	case errors.Is(err, domain.ErrNoDestinations):
		fmt.Fprintln(h.stderr, "None of the destination locations could be found.")
	case domain.IsProviderUnavailable(err):
		fmt.Fprintln(h.stderr, "An error occurred:", err)
	case domain.IsRetryable(err):
		h.log.Warn().Err(err).Msg("flight service unreachable")
		fmt.Fprintln(h.stderr, "The flight service could not be reached. This is usually temporary, please try again.")
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(h.stderr, "The search timed out.")
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(h.stderr, "Search cancelled.")
	default:
		h.log.Error().Err(err).Msg("search failed")
		fmt.Fprintln(h.stderr, "An error occurred:", err)
	}
	return ExitError
}

// ExitCodeForParseError maps an error from Parse to an exit code.
// Asking for help is not an error.
func ExitCodeForParseError(err error, stderr io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	var usageErrs *UsageErrors
	if errors.As(err, &usageErrs) {
		for _, e := range usageErrs.Errors {
			fmt.Fprintln(stderr, e.Message)
		}
	} else {
		fmt.Fprintln(stderr, err)
	}
	return ExitUsage
}
