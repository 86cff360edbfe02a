package parser

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

var errIllegalNumber = errors.New("illegal numeric literal")

// parseNumberLiteral returns the value of a numeric literal's source text.
// legacy marks a literal starting with 0 followed by more digits, which is
// octal unless an 8 or 9 appears.
func parseNumberLiteral(literal string, legacy bool) (float64, error) {
	if strings.IndexByte(literal, '_') >= 0 {
		literal = strings.ReplaceAll(literal, "_", "")
	}
	if len(literal) > 2 && literal[0] == '0' {
		switch literal[1] {
		case 'x', 'X':
			return parseInteger(literal[2:], 16)
		case 'o', 'O':
			return parseInteger(literal[2:], 8)
		case 'b', 'B':
			return parseInteger(literal[2:], 2)
		}
	}
	if legacy && strings.IndexAny(literal, "89") < 0 {
		return parseInteger(literal[1:], 8)
	}

	value, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, errIllegalNumber
	}
	// Out of range values are ±Inf or 0, as in JavaScript.
	return value, nil
}

func parseInteger(digits string, base int) (float64, error) {
	n, err := strconv.ParseUint(digits, base, 64)
	if err == nil {
		return float64(n), nil
	}
	if !errors.Is(err, strconv.ErrRange) {
		return 0, errIllegalNumber
	}
	// Wider than 64 bits: round once, from the exact integer.
	i, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, errIllegalNumber
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	return f, nil
}
