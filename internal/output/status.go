package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// UserError is an error caused by how the command was invoked.
type UserError struct {
	Message string
	Hint    string
}

func (e *UserError) Error() string {
	return e.Message
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	successLabel = color.New(color.FgGreen, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan)

	statusWriter io.Writer = os.Stderr
)

func PrintError(err error) {
	if err == nil {
		return
	}
	_, _ = errorLabel.Fprint(statusWriter, "Error: ")
	_, _ = fmt.Fprintln(statusWriter, err.Error())

	var userErr *UserError
	if errors.As(err, &userErr) && userErr.Hint != "" {
		_, _ = infoLabel.Fprintln(statusWriter, userErr.Hint)
	}
}

func PrintSuccess(msg string) {
	_, _ = successLabel.Fprint(statusWriter, "✓ ")
	_, _ = fmt.Fprintln(statusWriter, msg)
}

func PrintWarning(msg string) {
	_, _ = warningLabel.Fprint(statusWriter, "! ")
	_, _ = fmt.Fprintln(statusWriter, msg)
}

func PrintInfo(msg string) {
	_, _ = infoLabel.Fprintln(statusWriter, msg)
}
