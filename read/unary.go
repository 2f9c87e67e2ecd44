package read

import (
	"math"

	"github.com/kennylevinsen/rs274ngc/ngcerr"
)

const degToRad = math.Pi / 180
const radToDeg = 180 / math.Pi

func applyUnary(name string, arg float64) (float64, *ngcerr.Error) {
	switch name {
	case "abs":
		return math.Abs(arg), nil
	case "acos":
		if arg < -1 || arg > 1 {
			return 0, ngcerr.New(ngcerr.ArgumentToAcosOutOfRange)
		}
		return math.Acos(arg) * radToDeg, nil
	case "asin":
		if arg < -1 || arg > 1 {
			return 0, ngcerr.New(ngcerr.ArgumentToAsinOutOfRange)
		}
		return math.Asin(arg) * radToDeg, nil
	case "cos":
		return math.Cos(arg * degToRad), nil
	case "exp":
		return math.Exp(arg), nil
	case "fix":
		return math.Floor(arg), nil
	case "fup":
		return math.Ceil(arg), nil
	case "ln":
		if arg <= 0 {
			return 0, ngcerr.New(ngcerr.ZeroOrNegativeArgumentToLn)
		}
		return math.Log(arg), nil
	case "round":
		return roundTiesAway(arg), nil
	case "sin":
		return math.Sin(arg * degToRad), nil
	case "sqrt":
		if arg < 0 {
			return 0, ngcerr.New(ngcerr.NegativeArgumentToSqrt)
		}
		return math.Sqrt(arg), nil
	case "tan":
		return math.Tan(arg * degToRad), nil
	default:
		return 0, ngcerr.Newf(ngcerr.UnknownOperation, "unary %q", name)
	}
}

// roundTiesAway rounds to the nearest integer, breaking exact .5 ties
// away from zero. math.Round already rounds ties away from zero (it is
// math.RoundToEven that rounds ties to even), so this simply documents
// the choice.
func roundTiesAway(v float64) float64 {
	return math.Round(v)
}

// atan2Deg implements NGC's two-argument atan, atan[A]/[B], as
// atan2(A, B) converted to degrees.
func atan2Deg(a, b float64) float64 {
	return math.Atan2(a, b) * radToDeg
}
