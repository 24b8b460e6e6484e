package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"taskman/internal/exitcode"
	"taskman/internal/store"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the 1-based task number from args.
//
// Parsing rules:
// 1. No args → ErrTaskRefRequired
// 2. First arg all digits → that number (range is checked by the store)
// 3. Otherwise → error: invalid task reference: <arg>
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// reportTaskRefError prints a ParseTaskRef error and returns the exit code.
func reportTaskRefError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

// reportStoreError prints a store operation error and returns the exit code.
// Out-of-range positions are user errors; everything else is a store failure.
func reportStoreError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	if errors.Is(err, store.ErrInvalidIndex) {
		return exitcode.UserError
	}
	return exitcode.StoreError
}
