package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidSplitAmount marks split inputs that violate the board-footage
// conservation precondition. The wrapped message names the exact reason.
var ErrInvalidSplitAmount = errors.New("InvalidSplitAmount")

// ValidateSplitAmounts checks a partial-finish request. A partial finish
// must cut strictly less than the tallied amount; finishing the whole tally
// is a full finish, which is a different operation.
func ValidateSplitAmounts(tally, finished decimal.Decimal) error {
	if tally.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: tally board feet must be greater than zero, got %s", ErrInvalidSplitAmount, tally)
	}
	if finished.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: finished board feet must be greater than zero, got %s", ErrInvalidSplitAmount, finished)
	}
	if finished.GreaterThanOrEqual(tally) {
		return fmt.Errorf("%w: finished board feet %s is not less than tally %s, use the full finish operation", ErrInvalidSplitAmount, finished, tally)
	}
	return nil
}

// SplitRemainder is the uncut portion left on the new pack. Together with
// the finished amount it always adds back up to the original tally.
func SplitRemainder(tally, finished decimal.Decimal) decimal.Decimal {
	return tally.Sub(finished)
}

// NextPackCode derives the remainder pack identifier from the original.
// A trailing *N generation suffix becomes *(N+1); anything else gets *2
// appended. Repeated splits of the same physical unit therefore produce
// P-1, P-1*2, P-1*3, ... and never P-1*2*2.
func NextPackCode(packCode string) string {
	if i := strings.LastIndex(packCode, "*"); i >= 0 {
		if n, err := strconv.Atoi(packCode[i+1:]); err == nil {
			return packCode[:i+1] + strconv.Itoa(n+1)
		}
	}
	return packCode + "*2"
}
