package read

import (
	"testing"

	"github.com/kennylevinsen/rs274ngc/ngcerr"
)

type fakeParams map[int]float64

func (f fakeParams) Get(idx int) (float64, bool) {
	v, ok := f[idx]
	return v, ok
}

func TestPreprocessDowncaseIdempotence(t *testing.T) {
	in := "G1 X1.0 Y2.0 (Message) ; trailing"
	once, _, err := Preprocess(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, _, err := Preprocess(once)
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if once != twice {
		t.Fatalf("preprocess not idempotent: %q != %q", once, twice)
	}
}

func TestPreprocessBlockDelete(t *testing.T) {
	clean, bd, err := Preprocess("/g1x1")
	if err != nil {
		t.Fatal(err)
	}
	if !bd {
		t.Fatal("expected block delete")
	}
	if clean != "g1x1" {
		t.Fatalf("got %q", clean)
	}
}

func TestPreprocessNestedComment(t *testing.T) {
	if _, _, err := Preprocess("(a(b)"); err == nil || err.Kind != ngcerr.NestedComment {
		t.Fatalf("expected NestedComment, got %v", err)
	}
}

func TestPreprocessUnclosedComment(t *testing.T) {
	if _, _, err := Preprocess("(abc"); err == nil {
		t.Fatal("expected UnclosedComment error")
	}
}

func TestPrecedenceLaw(t *testing.T) {
	v, _, err := readExpression("[2+3*4]", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != 14 {
		t.Fatalf("2+3*4 = %v, want 14", v)
	}
}

func TestPowerLeftToRight(t *testing.T) {
	// 2**3**2 must evaluate left-to-right: (2**3)**2 = 64, not 512.
	v, _, err := readExpression("[2**3**2]", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != 64 {
		t.Fatalf("2**3**2 = %v, want 64", v)
	}
}

func TestModuloNonNegative(t *testing.T) {
	cases := []struct{ x, y float64 }{
		{5, 3}, {-5, 3}, {5, -3}, {-5, -3}, {0.5, -0.3},
	}
	for _, c := range cases {
		src := "[" + floatLit(c.x) + "mod" + floatLit(c.y) + "]"
		v, _, err := readExpression(src, 0, nil)
		if err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		if v < 0 {
			t.Fatalf("%s = %v, want >= 0", src, v)
		}
	}
}

func floatLit(f float64) string {
	if f < 0 {
		return "[-" + floatLit(-f) + "]"
	}
	s := ""
	whole := int(f)
	frac := f - float64(whole)
	s = itoa(whole)
	if frac != 0 {
		s += "."
		for i := 0; i < 2 && frac != 0; i++ {
			frac *= 10
			d := int(frac)
			s += itoa(d)
			frac -= float64(d)
		}
	}
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func TestParameterRoundTrip(t *testing.T) {
	p := fakeParams{1: 42}
	v, pos, err := ReadReal("#1", 0, p)
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("got %v", v)
	}
	if pos != 2 {
		t.Fatalf("pos = %d", pos)
	}
}

func TestAtanDegrees(t *testing.T) {
	v, _, err := ReadReal("atan[1]/[1]", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != 45 {
		t.Fatalf("atan[1]/[1] = %v, want 45", v)
	}
}

func TestSqrtNegativeError(t *testing.T) {
	if _, _, err := ReadReal("sqrt[-1]", 0, nil); err == nil {
		t.Fatal("expected NegativeArgumentToSqrt")
	}
}

func TestDivideByZero(t *testing.T) {
	if _, _, err := readExpression("[1/0]", 0, nil); err == nil {
		t.Fatal("expected divide-by-zero error")
	}
}

func TestUnclosedExpression(t *testing.T) {
	if _, _, err := readExpression("[1+2", 0, nil); err == nil {
		t.Fatal("expected unclosed expression error")
	}
}
