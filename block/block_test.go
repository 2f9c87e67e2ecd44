package block

import (
	"testing"

	"github.com/kennylevinsen/rs274ngc/ngcerr"
)

type noParams struct{}

func (noParams) Get(index int) (float64, bool) { return 0, false }

func mustParse(t *testing.T, line string) *Block {
	t.Helper()
	b := New()
	if err := b.Parse(line, false, noParams{}); err != nil {
		t.Fatalf("Parse(%q) failed: %v", line, err)
	}
	return b
}

func TestParseAxisWords(t *testing.T) {
	b := mustParse(t, "g1x1y2.5z-3")
	if b.GModes[GroupMotion] != G1 {
		t.Fatalf("GModes[GroupMotion] = %v, want G1", b.GModes[GroupMotion])
	}
	if !b.X.Set || b.X.Value != 1 {
		t.Fatalf("X = %+v, want 1", b.X)
	}
	if !b.Y.Set || b.Y.Value != 2.5 {
		t.Fatalf("Y = %+v, want 2.5", b.Y)
	}
	if !b.Z.Set || b.Z.Value != -3 {
		t.Fatalf("Z = %+v, want -3", b.Z)
	}
}

func TestParseLineNumberMustBeFirst(t *testing.T) {
	b := New()
	err := b.Parse("g1n10", false, noParams{})
	if err == nil || err.Kind != ngcerr.BadCharacterUsed {
		t.Fatalf("got %v, want BadCharacterUsed", err)
	}
}

func TestParseDuplicateWord(t *testing.T) {
	b := New()
	err := b.Parse("x1x2", false, noParams{})
	if err == nil || err.Kind != ngcerr.MultipleWordsOnOneLine {
		t.Fatalf("got %v, want MultipleWordsOnOneLine", err)
	}
}

func TestParseTwoGCodesSameGroup(t *testing.T) {
	b := New()
	err := b.Parse("g0g1x1", false, noParams{})
	if err == nil || err.Kind != ngcerr.TwoGCodesUsedFromSameModalGroup {
		t.Fatalf("got %v, want TwoGCodesUsedFromSameModalGroup", err)
	}
}

func TestParseNegativeFeedRejected(t *testing.T) {
	b := New()
	err := b.Parse("g1x1f-5", false, noParams{})
	if err == nil || err.Kind != ngcerr.NegativeFWordUsed {
		t.Fatalf("got %v, want NegativeFWordUsed", err)
	}
}

func TestParseComment(t *testing.T) {
	b := mustParse(t, "g0x1(move to start)")
	if b.Comment != "move to start" {
		t.Fatalf("Comment = %q", b.Comment)
	}
}

func TestParseTooManyMCodes(t *testing.T) {
	b := New()
	err := b.Parse("m0m6m3m7m48", false, noParams{})
	if err == nil || err.Kind != ngcerr.TooManyMCodesOnLine {
		t.Fatalf("got %v, want TooManyMCodesOnLine", err)
	}
}

func TestValidateExplicitMotion(t *testing.T) {
	b := mustParse(t, "g1x1y1")
	if err := b.Validate(-1, false); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if b.MotionToBe != G1 {
		t.Fatalf("MotionToBe = %v, want G1", b.MotionToBe)
	}
}

func TestValidateAxisWithG80(t *testing.T) {
	b := mustParse(t, "g80x1")
	if err := b.Validate(G1, true); err == nil || err.Kind != ngcerr.CannotUseAxisValuesWithG80 {
		t.Fatalf("got %v, want CannotUseAxisValuesWithG80", err)
	}
}

func TestValidateG92RequiresAxis(t *testing.T) {
	b := mustParse(t, "g92")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.AllAxesMissingWithG92 {
		t.Fatalf("got %v, want AllAxesMissingWithG92", err)
	}
}

func TestValidateMotionCodeRequiresAxis(t *testing.T) {
	b := mustParse(t, "g1")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.AllAxesMissingWithMotionCode {
		t.Fatalf("got %v, want AllAxesMissingWithMotionCode", err)
	}
}

func TestValidateInheritsModalMotion(t *testing.T) {
	b := mustParse(t, "x1y1")
	if err := b.Validate(G1, true); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if b.MotionToBe != G1 {
		t.Fatalf("MotionToBe = %v, want inherited G1", b.MotionToBe)
	}
}

func TestValidateNoModalMotionYet(t *testing.T) {
	b := mustParse(t, "x1y1")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.ModalMotionModeNotYetSet {
		t.Fatalf("got %v, want ModalMotionModeNotYetSet", err)
	}
}

func TestValidateG80CurrentModeRejected(t *testing.T) {
	b := mustParse(t, "x1y1")
	if err := b.Validate(G80, true); err == nil || err.Kind != ngcerr.ModalMotionModeNotYetSet {
		t.Fatalf("got %v, want ModalMotionModeNotYetSet", err)
	}
}

func TestValidateDWithoutCutterComp(t *testing.T) {
	b := mustParse(t, "g1x1d3")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.DWordWithNoG41Or42 {
		t.Fatalf("got %v, want DWordWithNoG41Or42", err)
	}
}

func TestValidateDWithCutterComp(t *testing.T) {
	b := mustParse(t, "g41g1x1d3")
	if err := b.Validate(-1, false); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateHWithoutG43(t *testing.T) {
	b := mustParse(t, "g1x1h1")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.HWordWithNoG43 {
		t.Fatalf("got %v, want HWordWithNoG43", err)
	}
}

func TestValidateIJKRequireArcOrG87(t *testing.T) {
	b := mustParse(t, "g1x1i1")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.IJKWordsWithNoG2G3G87 {
		t.Fatalf("got %v, want IJKWordsWithNoG2G3G87", err)
	}
}

func TestValidateArcWithIJK(t *testing.T) {
	b := mustParse(t, "g2x1y1i1j0")
	if err := b.Validate(-1, false); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateG4RequiresP(t *testing.T) {
	b := mustParse(t, "g4")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.DwellTimePWordMissingWithG4 {
		t.Fatalf("got %v, want DwellTimePWordMissingWithG4", err)
	}
}

func TestValidateG4WithP(t *testing.T) {
	b := mustParse(t, "g4p1.5")
	if err := b.Validate(-1, false); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateG10RequiresL2(t *testing.T) {
	b := mustParse(t, "g10l1p1x1")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.LWordMissingWithG10 {
		t.Fatalf("got %v, want LWordMissingWithG10", err)
	}
}

func TestValidateG10PRangeAndInteger(t *testing.T) {
	b := mustParse(t, "g10l2p1.5x1")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.PValueNotAnIntegerWithG10 {
		t.Fatalf("got %v, want PValueNotAnIntegerWithG10", err)
	}

	b = mustParse(t, "g10l2p10x1")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.PValueOutOfRangeWithG10 {
		t.Fatalf("got %v, want PValueOutOfRangeWithG10", err)
	}

	b = mustParse(t, "g10l2p1x1")
	if err := b.Validate(-1, false); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateCannedCycleRequiresPorQ(t *testing.T) {
	b := mustParse(t, "g82x1z-1")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.PWordMissingWithG82 {
		t.Fatalf("got %v, want PWordMissingWithG82", err)
	}

	b = mustParse(t, "g83x1z-1")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.QWordMissingWithG83 {
		t.Fatalf("got %v, want QWordMissingWithG83", err)
	}

	b = mustParse(t, "g87x1")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.IJKWordMissingWithG87 {
		t.Fatalf("got %v, want IJKWordMissingWithG87", err)
	}
}

func TestValidateABCDuringCannedCycle(t *testing.T) {
	b := mustParse(t, "g81x1z-1r1p1a30")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.AAndBWordsUsedTogetherDuringCannedCycle {
		t.Fatalf("got %v, want AAndBWordsUsedTogetherDuringCannedCycle", err)
	}
}

func TestValidateG53RequiresG0OrG1(t *testing.T) {
	b := mustParse(t, "g53g2x1y1i1j0")
	if err := b.Validate(-1, false); err == nil || err.Kind != ngcerr.CannotUseG53WithMotionOtherThanG0OrG1 {
		t.Fatalf("got %v, want CannotUseG53WithMotionOtherThanG0OrG1", err)
	}
}

func TestValidateG53WithG0(t *testing.T) {
	b := mustParse(t, "g53g0x1y1")
	if err := b.Validate(-1, false); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
