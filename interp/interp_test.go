package interp

import (
	"testing"

	"github.com/kennylevinsen/rs274ngc/cmi"
	"github.com/kennylevinsen/rs274ngc/ngcerr"
)

func run(t *testing.T, ip *Interp, line string) {
	t.Helper()
	bd, err := ip.Read(line)
	if err != nil {
		t.Fatalf("Read(%q): %v", line, err)
	}
	if bd {
		return
	}
	if _, err := ip.Execute(); err != nil {
		t.Fatalf("Execute(%q): %v", line, err)
	}
}

func lastOp(r *cmi.Recorder) string {
	if len(r.Events) == 0 {
		return ""
	}
	return r.Events[len(r.Events)-1].Op
}

func TestLinearMoveAbsolute(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	run(t, ip, "G21 G90 G1 X10 Y5 Z-2 F100")

	if ip.Settings.Current.X != 10 || ip.Settings.Current.Y != 5 || ip.Settings.Current.Z != -2 {
		t.Fatalf("unexpected current position: %+v", ip.Settings.Current)
	}
	if lastOp(rec) != "Linear" {
		t.Fatalf("expected last op Linear, got %s", lastOp(rec))
	}
}

func TestArcIJKXYPlane(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	run(t, ip, "G17 G90 G1 X10 Y0")
	run(t, ip, "G2 X0 Y10 I-10 J0")

	if ip.Settings.Current.X != 0 || ip.Settings.Current.Y != 10 {
		t.Fatalf("unexpected end position: %+v", ip.Settings.Current)
	}
	ev := rec.Events[len(rec.Events)-1]
	if ev.Op != "Arc" {
		t.Fatalf("expected last op Arc, got %s", ev.Op)
	}
	if rotation := ev.Args[4].(int); rotation != -1 {
		t.Fatalf("expected G2 to record rotation -1, got %v", rotation)
	}
}

func TestArcG3RotationSign(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	run(t, ip, "G17 G90 G1 X10 Y0")
	run(t, ip, "G3 X0 Y10 I-10 J0")

	ev := rec.Events[len(rec.Events)-1]
	if rotation := ev.Args[4].(int); rotation != 1 {
		t.Fatalf("expected G3 to record rotation 1, got %v", rotation)
	}
}

func TestArcRFormHalfCircle(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	run(t, ip, "G17 G90 G1 X0 Y0")
	run(t, ip, "G3 X20 Y0 R10")

	if ip.Settings.Current.X != 20 || ip.Settings.Current.Y != 0 {
		t.Fatalf("unexpected end position: %+v", ip.Settings.Current)
	}
}

func TestParameterExpression(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	run(t, ip, "#100=25")
	run(t, ip, "G1 X[#100+1]")

	if ip.Settings.Current.X != 26 {
		t.Fatalf("expected X=26, got %v", ip.Settings.Current.X)
	}
}

func TestCutterCompWithConcaveCorner(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	ip.Settings.Tools[1] = ToolEntry{ID: 1, Diameter: 2}
	run(t, ip, "G17 G90 G1 X0 Y0")
	run(t, ip, "G41 D1 X10 Y0")

	if ip.Settings.CutterCompSide != CompLeft {
		t.Fatalf("expected CompLeft, got %v", ip.Settings.CutterCompSide)
	}

	// A sharp corner bending right (away from the G41 comp side) past
	// the tolerance forms a concave corner the tool radius cannot
	// follow (spec §8.5).
	before := len(rec.Events)
	bd, rerr := ip.Read("G1 X17.0711 Y-7.0711")
	if rerr != nil {
		t.Fatalf("Read: %v", rerr)
	}
	if bd {
		t.Fatalf("expected an executable block")
	}
	_, execErr := ip.Execute()
	if execErr == nil || execErr.Kind != ngcerr.ConcaveCornerWithCutterRadiusComp {
		t.Fatalf("expected ConcaveCornerWithCutterRadiusComp, got %v", execErr)
	}
	if len(rec.Events) != before {
		t.Fatalf("expected no CMI events for the rejected corner, got %d new", len(rec.Events)-before)
	}
}

func TestCannedDrillRepeatsIncremental(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	ip.Settings.Current.Z = 10
	run(t, ip, "G21 G91 G99 G81 X10 Y0 Z-5 R2 L3 F20")

	if ip.Settings.Cycle.L != 3 {
		t.Fatalf("expected sticky L=3, got %d", ip.Settings.Cycle.L)
	}
	if ip.Settings.Current.X != 30 {
		t.Fatalf("expected X to advance by 10 three times, got %v", ip.Settings.Current.X)
	}
}

func TestG92OffsetRoundTrip(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	run(t, ip, "G90 G1 X10 Y0")
	run(t, ip, "G92 X0 Y0")

	if ip.Settings.Current.X != 0 {
		t.Fatalf("expected current X reset to 0, got %v", ip.Settings.Current.X)
	}
	run(t, ip, "G92.1")
	if ip.Settings.AxisOffset.X != 0 {
		t.Fatalf("expected axis offset cleared, got %v", ip.Settings.AxisOffset.X)
	}
}

func TestCoordSystemSelection(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	ip.Params.Set(5241, 5) // origin 2 (G55), X offset
	run(t, ip, "G55")
	if ip.Settings.OriginIndex != 2 {
		t.Fatalf("expected origin index 2, got %d", ip.Settings.OriginIndex)
	}
}

func TestProgramEndResetsModalState(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	run(t, ip, "G20 G91")
	bd, err := ip.Read("M2")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	_ = bd
	result, err := ip.Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != Exit {
		t.Fatalf("expected Exit, got %v", result)
	}
	if ip.Settings.DistanceMode != 900 {
		t.Fatalf("expected distance mode reset to G90, got %d", ip.Settings.DistanceMode)
	}
}

func TestModalMotionModeNotYetSetRejected(t *testing.T) {
	rec := &cmi.Recorder{}
	ip := New(rec)
	ip.Settings.MotionModeSet = false
	_, err := ip.Read("X10")
	if err == nil || err.Kind != ngcerr.ModalMotionModeNotYetSet {
		t.Fatalf("expected ModalMotionModeNotYetSet, got %v", err)
	}
}
