package cmi

import "github.com/kennylevinsen/rs274ngc/vector"

// Event is one recorded CMI call, used by Recorder.
type Event struct {
	Op   string
	Args []any
}

// Recorder is an in-memory CMI test double. It records every call as a
// typed Event and answers the world->interpreter queries from fields
// the test sets up beforehand.
type Recorder struct {
	Events []Event

	Current vector.Six
	Probe   vector.Six
	PValue  float64
	Slot    int
	MaxTool int
}

func (r *Recorder) emit(op string, args ...any) {
	r.Events = append(r.Events, Event{Op: op, Args: args})
}

func (r *Recorder) OffsetOrigin(pos vector.Six)      { r.emit("OffsetOrigin", pos) }
func (r *Recorder) Units(mm bool)                    { r.emit("Units", mm) }
func (r *Recorder) Plane(a0, a1, a2 int)             { r.emit("Plane", a0, a1, a2) }
func (r *Recorder) RapidRate(v float64)              { r.emit("RapidRate", v) }
func (r *Recorder) Rapid(pos vector.Six)             { r.emit("Rapid", pos); r.Current = pos }
func (r *Recorder) FeedRate(v float64)               { r.emit("FeedRate", v) }
func (r *Recorder) FeedReference(inv bool)           { r.emit("FeedReference", inv) }
func (r *Recorder) MotionMode(code int)              { r.emit("MotionMode", code) }
func (r *Recorder) CutterRadiusComp(v float64)       { r.emit("CutterRadiusComp", v) }
func (r *Recorder) CutterRadiusCompStart(side Side)  { r.emit("CutterRadiusCompStart", side) }
func (r *Recorder) CutterRadiusCompStop()            { r.emit("CutterRadiusCompStop") }
func (r *Recorder) SpeedFeedSyncStart()              { r.emit("SpeedFeedSyncStart") }
func (r *Recorder) SpeedFeedSyncStop()               { r.emit("SpeedFeedSyncStop") }
func (r *Recorder) Arc(e0, e1, c0, c1 float64, rot int, endLinear, a, b, c float64) {
	r.emit("Arc", e0, e1, c0, c1, rot, endLinear, a, b, c)
}
func (r *Recorder) Linear(pos vector.Six) { r.emit("Linear", pos); r.Current = pos }
func (r *Recorder) Probe(pos vector.Six)  { r.emit("Probe", pos); r.Current = pos; r.Probe = pos }
func (r *Recorder) Dwell(s float64)       { r.emit("Dwell", s) }
func (r *Recorder) SpindleStartClockwise()        { r.emit("SpindleStartClockwise") }
func (r *Recorder) SpindleStartCounterclockwise() { r.emit("SpindleStartCounterclockwise") }
func (r *Recorder) SpindleStop()                  { r.emit("SpindleStop") }
func (r *Recorder) SpindleSpeed(v float64)        { r.emit("SpindleSpeed", v) }
func (r *Recorder) SpindleOrient(angle float64, dir SpindleDir) {
	r.emit("SpindleOrient", angle, dir)
}
func (r *Recorder) ToolLengthOffset(v float64) { r.emit("ToolLengthOffset", v) }
func (r *Recorder) ToolChange(slot int)        { r.emit("ToolChange", slot) }
func (r *Recorder) ToolSelect(i int)           { r.emit("ToolSelect", i) }
func (r *Recorder) AxisClamp(axis int)         { r.emit("AxisClamp", axis) }
func (r *Recorder) AxisUnclamp(axis int)       { r.emit("AxisUnclamp", axis) }
func (r *Recorder) Comment(s string)           { r.emit("Comment", s) }
func (r *Recorder) Message(s string)           { r.emit("Message", s) }
func (r *Recorder) FeedOverrideEnable()        { r.emit("FeedOverrideEnable") }
func (r *Recorder) FeedOverrideDisable()       { r.emit("FeedOverrideDisable") }
func (r *Recorder) SpeedOverrideEnable()       { r.emit("SpeedOverrideEnable") }
func (r *Recorder) SpeedOverrideDisable()      { r.emit("SpeedOverrideDisable") }
func (r *Recorder) CoolantFloodOn()            { r.emit("CoolantFloodOn") }
func (r *Recorder) CoolantFloodOff()           { r.emit("CoolantFloodOff") }
func (r *Recorder) CoolantMistOn()             { r.emit("CoolantMistOn") }
func (r *Recorder) CoolantMistOff()            { r.emit("CoolantMistOff") }
func (r *Recorder) PalletShuttle()             { r.emit("PalletShuttle") }
func (r *Recorder) ProbeOn()                   { r.emit("ProbeOn") }
func (r *Recorder) ProbeOff()                  { r.emit("ProbeOff") }
func (r *Recorder) ProgramStop()               { r.emit("ProgramStop") }
func (r *Recorder) ProgramOptionalStop()       { r.emit("ProgramOptionalStop") }
func (r *Recorder) ProgramEnd()                { r.emit("ProgramEnd") }

func (r *Recorder) CurrentPosition() vector.Six { return r.Current }
func (r *Recorder) ProbePosition() vector.Six   { return r.Probe }
func (r *Recorder) ProbeValue() float64         { return r.PValue }
func (r *Recorder) ToolSlot() int               { return r.Slot }
func (r *Recorder) ToolMax() int                { return r.MaxTool }
