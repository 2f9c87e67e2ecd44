// Package read implements the tokenless line reader and expression
// evaluator at the heart of the interpreter (spec components A and B):
// a recursive-descent, precedence-climbing walk over a preprocessed
// NGC source line that produces real values -- numeric literals,
// parameter references, unary-function calls, and bracketed
// expressions -- directly from the character stream, without ever
// building an intermediate token list.
package read

import (
	"strconv"
	"strings"

	"github.com/kennylevinsen/rs274ngc/ngcerr"
)

// Params is the read-only view of the parameter table the reader needs
// in order to evaluate "#n" references while scanning a line. Writes
// ("#n=expr") are not performed here -- they are recognised and handed
// to the caller (the block builder) as a pending (index, value) pair,
// per the deferred-commit rule in spec §3.
type Params interface {
	Get(index int) (float64, bool)
}

// Preprocess lowercases ASCII letters outside parentheses, strips
// spaces/tabs/carriage-returns outside parentheses, and reports whether
// the line opens with a block-delete slash. Parenthesised text
// (comments) is preserved verbatim, including its original case and
// whitespace.
func Preprocess(line string) (clean string, blockDelete bool, err *ngcerr.Error) {
	var b strings.Builder
	inComment := false
	sawNonBlank := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '(':
			if inComment {
				return "", false, ngcerr.New(ngcerr.NestedComment)
			}
			inComment = true
			b.WriteByte(c)
		case c == ')':
			if !inComment {
				return "", false, ngcerr.New(ngcerr.BadCharacterUsed)
			}
			inComment = false
			b.WriteByte(c)
		case inComment:
			b.WriteByte(c)
		case c == '/' && !sawNonBlank:
			blockDelete = true
			sawNonBlank = true
		case c == ' ' || c == '\t' || c == '\r':
			// dropped outside comments
		default:
			sawNonBlank = true
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			b.WriteByte(c)
		}
	}
	if inComment {
		return "", false, ngcerr.New(ngcerr.UnclosedComment)
	}
	clean = b.String()
	if len(clean) > 255 {
		return "", false, ngcerr.New(ngcerr.LineTooLong)
	}
	return clean, blockDelete, nil
}

var unaryFuncs = map[string]bool{
	"abs": true, "acos": true, "asin": true, "atan": true, "cos": true,
	"exp": true, "fix": true, "fup": true, "ln": true, "round": true,
	"sin": true, "sqrt": true, "tan": true,
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' }

// ReadReal reads one real-value production starting at pos and returns
// its value together with the index just past it.
func ReadReal(s string, pos int, params Params) (float64, int, *ngcerr.Error) {
	if pos >= len(s) {
		return 0, pos, ngcerr.New(ngcerr.UnclosedExpression)
	}
	c := s[pos]
	switch {
	case c == '[':
		return readExpression(s, pos, params)
	case c == '#':
		return readParameterValue(s, pos, params)
	case isAlpha(c):
		return readUnary(s, pos, params)
	case isDigit(c) || c == '+' || c == '-' || c == '.':
		return readNumber(s, pos)
	default:
		return 0, pos, ngcerr.Newf(ngcerr.BadCharacterUsed, "unexpected %q", c)
	}
}

func readNumber(s string, pos int) (float64, int, *ngcerr.Error) {
	start := pos
	if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
		pos++
	}
	digits := 0
	dots := 0
	for pos < len(s) {
		c := s[pos]
		if isDigit(c) {
			digits++
			pos++
		} else if c == '.' {
			dots++
			if dots > 1 {
				break
			}
			pos++
		} else {
			break
		}
	}
	if digits == 0 {
		return 0, start, ngcerr.New(ngcerr.BadNumberFormat)
	}
	v, err := strconv.ParseFloat(s[start:pos], 64)
	if err != nil {
		return 0, start, ngcerr.New(ngcerr.BadNumberFormat)
	}
	return v, pos, nil
}

// readUnsignedInt reads a strict non-negative integer (no sign, no
// decimal point), used for word values declared as unsigned integers
// (D, H, L, T, line number).
func readUnsignedInt(s string, pos int) (int, int, *ngcerr.Error) {
	start := pos
	for pos < len(s) && isDigit(s[pos]) {
		pos++
	}
	if pos == start {
		return 0, start, ngcerr.New(ngcerr.BadFormatUnsignedInteger)
	}
	v, err := strconv.Atoi(s[start:pos])
	if err != nil {
		return 0, start, ngcerr.New(ngcerr.BadFormatUnsignedInteger)
	}
	return v, pos, nil
}

// ReadUnsignedInt exports readUnsignedInt for the block builder.
func ReadUnsignedInt(s string, pos int) (int, int, *ngcerr.Error) {
	return readUnsignedInt(s, pos)
}

func readParameterValue(s string, pos int, params Params) (float64, int, *ngcerr.Error) {
	idx, newpos, err := readParameterIndex(s, pos, params)
	if err != nil {
		return 0, newpos, err
	}
	if params == nil {
		return 0, newpos, nil
	}
	v, _ := params.Get(idx)
	return v, newpos, nil
}

// readParameterIndex reads "#" followed by an integer-valued
// expression and validates the resulting index is in 1..5400.
func readParameterIndex(s string, pos int, params Params) (int, int, *ngcerr.Error) {
	if pos >= len(s) || s[pos] != '#' {
		return 0, pos, ngcerr.New(ngcerr.BadCharacterUsed)
	}
	pos++
	v, newpos, err := ReadReal(s, pos, params)
	if err != nil {
		return 0, newpos, err
	}
	idx := int(v + 0.5*sign(v))
	if idx < 1 || idx > 5400 {
		return 0, newpos, ngcerr.Newf(ngcerr.ParameterNumberOutOfRange, "#%d", idx)
	}
	return idx, newpos, nil
}

// ReadParameterIndex exports readParameterIndex for the block builder,
// which needs it to parse the left side of "#n=expr" without reading a
// value through it (the table is not yet writable mid-parse).
func ReadParameterIndex(s string, pos int, params Params) (int, int, *ngcerr.Error) {
	return readParameterIndex(s, pos, params)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func readUnary(s string, pos int, params Params) (float64, int, *ngcerr.Error) {
	start := pos
	for pos < len(s) && isAlpha(s[pos]) {
		pos++
	}
	name := s[start:pos]
	if !unaryFuncs[name] {
		return 0, start, ngcerr.Newf(ngcerr.BadCharacterUsed, "unknown word %q", name)
	}

	if name == "atan" {
		a, p, err := readExpression(s, pos, params)
		if err != nil {
			return 0, p, err
		}
		if p >= len(s) || s[p] != '/' {
			return 0, p, ngcerr.New(ngcerr.UnclosedExpression)
		}
		p++
		b, p, err := readExpression(s, p, params)
		if err != nil {
			return 0, p, err
		}
		deg := atan2Deg(a, b)
		return deg, p, nil
	}

	arg, p, err := readExpression(s, pos, params)
	if err != nil {
		return 0, p, err
	}
	v, kerr := applyUnary(name, arg)
	if kerr != nil {
		return 0, p, kerr
	}
	return v, p, nil
}
