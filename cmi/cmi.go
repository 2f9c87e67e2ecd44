// Package cmi defines the canonical machining interface contract the
// interpreter drives, and ships a small number of concrete
// collaborators: an in-memory recorder for tests, a printing driver
// that re-serializes calls as NGC text, and a GRBL serial driver built
// on top of the printer.
package cmi

import "github.com/kennylevinsen/rs274ngc/vector"

// Side is a cutter-radius-compensation side.
type Side int

const (
	CompOff Side = iota
	CompLeft
	CompRight
)

// SpindleDir reports which way the spindle should turn.
type SpindleDir int

const (
	SpindleStop SpindleDir = iota
	SpindleCW
	SpindleCCW
)

// Interface is the full canonical machining interface (spec §6):
// the only surface through which the interpreter affects the outside
// world.
type Interface interface {
	OffsetOrigin(pos vector.Six)
	Units(mm bool)
	Plane(axis0, axis1, axis2 int)
	RapidRate(r float64)
	Rapid(pos vector.Six)
	FeedRate(r float64)
	FeedReference(inverseTime bool)
	MotionMode(code int)
	CutterRadiusComp(r float64)
	CutterRadiusCompStart(side Side)
	CutterRadiusCompStop()
	SpeedFeedSyncStart()
	SpeedFeedSyncStop()
	Arc(end0, end1, center0, center1 float64, rotation int, endLinear, a, b, c float64)
	Linear(pos vector.Six)
	Probe(pos vector.Six)
	Dwell(seconds float64)
	SpindleStartClockwise()
	SpindleStartCounterclockwise()
	SpindleStop()
	SpindleSpeed(r float64)
	SpindleOrient(angle float64, dir SpindleDir)
	ToolLengthOffset(v float64)
	ToolChange(slot int)
	ToolSelect(i int)
	AxisClamp(axis int)
	AxisUnclamp(axis int)
	Comment(s string)
	Message(s string)
	FeedOverrideEnable()
	FeedOverrideDisable()
	SpeedOverrideEnable()
	SpeedOverrideDisable()
	CoolantFloodOn()
	CoolantFloodOff()
	CoolantMistOn()
	CoolantMistOff()
	PalletShuttle()
	ProbeOn()
	ProbeOff()
	ProgramStop()
	ProgramOptionalStop()
	ProgramEnd()

	// Inputs (world -> interpreter), consulted at init/synch.
	CurrentPosition() vector.Six
	ProbePosition() vector.Six
	ProbeValue() float64
	ToolSlot() int
	ToolMax() int
}
