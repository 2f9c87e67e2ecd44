package interp

import (
	"github.com/kennylevinsen/rs274ngc/block"
	"github.com/kennylevinsen/rs274ngc/vector"
)

// Plane identifiers for Settings.Plane (spec §4.9's three orthogonal
// motion planes).
const (
	PlaneXY = iota
	PlaneYZ
	PlaneZX
)

// CutterCompSide is the active cutter-radius-compensation side.
type CutterCompSide int

const (
	CompOff CutterCompSide = iota
	CompLeft
	CompRight
)

// SpindleState is the direction the spindle is currently turning.
type SpindleState int

const (
	SpindleStopped SpindleState = iota
	SpindleCW
	SpindleCCW
)

// Numeric tolerances preserved exactly from the legacy implementation
// (spec §9).
const (
	ToleranceInch          = 2e-4
	ToleranceMM            = 2e-3
	ToleranceConcaveCorner = 0.01
	Tiny                   = 1e-12
	Unknown                = 1e-20
)

// Parameter indices with fixed meaning (spec §3, §4.9). Spec §3 names
// the axis-offset required range as "5161/5181 blocks" while §4.9
// says G92 "writes parameters 5211..5216" -- the two disagree on where
// the axis offset lives. We follow §4.9's explicit read/write
// instructions (the only place the mechanics are spelled out) and
// treat ParamG92OffsetX as the one persisted axis-offset range; see
// DESIGN.md.
const (
	ParamG92OffsetX  = 5211
	ParamOriginIndex = 5220
	ParamOriginBase  = 5221 // origin n (1..9): 5221 + 20*(n-1) .. +5
	ParamProbeX      = 5061
)

// ToolEntry is one slot of the tool table (spec §3).
type ToolEntry struct {
	ID       int
	Length   float64
	Diameter float64
}

// CycleSticky holds the canned-cycle parameters that persist across
// blocks even when no cycle is active (spec §9, "canned-cycle sticky
// state"); G80 does not clear it, matching the legacy behaviour spec
// §9 calls out -- it starts empty (resetToDefaults) and only M2/M30
// resets it, via resetToPowerOn.
type CycleSticky struct {
	R, Z, P, Q, I, J, K float64
	L                   int
	OldThirdAxis        float64 // third-axis position on cycle entry, for old-Z retract (G98)
}

// Settings is the complete modal state carried between blocks (spec
// component F / §3 "Settings").
type Settings struct {
	Current      vector.Six
	AxisOffset   vector.Six
	OriginOffset vector.Six

	ProgramX, ProgramY float64
	ProgramPointKnown  bool

	// CompDirX/CompDirY is the tangent direction (unit vector, in
	// plane coordinates) of the previous compensated cut; it is
	// "theta" in spec §4.6/§4.7's subsequent-cut corner test.
	CompDirX, CompDirY float64

	Plane         int // PlaneXY, PlaneYZ, or PlaneZX
	DistanceMode  int // block.G90 or block.G91
	FeedMode      int // block.G93 or block.G94
	LengthUnits   int // block.G20 or block.G21
	RetractMode   int // block.G98 or block.G99
	ControlMode   int // block.G61, G61_1, or G64

	MotionMode    int
	MotionModeSet bool

	CutterCompSide   CutterCompSide
	CutterCompRadius float64

	LengthOffsetIndex int
	ToolLengthOffset  float64

	OriginIndex int // 1..9

	Speed            float64
	FeedRate         float64
	TraverseRate     float64
	SpindleTurning   SpindleState
	SpeedOverride    bool
	FeedOverride     bool
	CoolantFlood     bool
	CoolantMist      bool
	ProbeFlag        bool

	Cycle CycleSticky

	Tools    []ToolEntry
	CurTool  int

	ActiveGCodes [16]int
	ActiveMCodes [10]int
}

// NewSettings returns the power-on default modal state, matching the
// reset target of M2/M30 (spec §4.10).
func NewSettings() *Settings {
	s := &Settings{Tools: make([]ToolEntry, 128)}
	s.resetToDefaults()
	return s
}

func (s *Settings) resetToDefaults() {
	s.Plane = PlaneXY
	s.DistanceMode = block.G90
	s.FeedMode = block.G94
	s.LengthUnits = block.G20
	s.RetractMode = block.G98
	s.ControlMode = block.G64
	s.MotionMode = block.G1
	s.MotionModeSet = true
	s.CutterCompSide = CompOff
	s.OriginIndex = 1
	s.SpeedOverride = true
	s.FeedOverride = true
	s.SpindleTurning = SpindleStopped
	s.ProgramPointKnown = false
	s.Cycle = CycleSticky{}
	for i := range s.ActiveGCodes {
		s.ActiveGCodes[i] = -1
	}
	for i := range s.ActiveMCodes {
		s.ActiveMCodes[i] = -1
	}
}
