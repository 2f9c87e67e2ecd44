package interp

import (
	"github.com/kennylevinsen/rs274ngc/block"
	"github.com/kennylevinsen/rs274ngc/cmi"
	"github.com/kennylevinsen/rs274ngc/ngcerr"
	"github.com/kennylevinsen/rs274ngc/nglog"
	"github.com/kennylevinsen/rs274ngc/read"
)

// Result is the outcome of executing one block (spec §4.5).
type Result int

const (
	Ok Result = iota
	ExecuteFinish
	Exit
)

// Interp is one interpreter session: the semantic executor (component
// G) plus the state it owns. It is not safe for concurrent use by
// multiple goroutines -- like the teacher's vm.Machine, this is
// documented rather than enforced with a mutex, matching the
// single-threaded model of spec §5.
type Interp struct {
	CMI      cmi.Interface
	Settings *Settings
	Params   *Params

	block *block.Block
}

// New creates a session over the given CMI sink, with default modal
// state and an empty parameter table (callers typically replace Params
// with NewParamsFrom over the map paramfile.Load returns, before the
// first Read).
func New(sink cmi.Interface) *Interp {
	return &Interp{
		CMI:      sink,
		Settings: NewSettings(),
		Params:   NewParams(),
		block:    block.New(),
	}
}

// Synch refreshes the current position and the current tool slot from
// the CMI. The tool table in Settings.Tools is not read from the CMI;
// it keeps whatever the caller stored in it.
func (ip *Interp) Synch() {
	ip.Settings.Current = ip.CMI.CurrentPosition()
	ip.Settings.CurTool = ip.CMI.ToolSlot()
}

// Read preprocesses and parses one line into the session's reusable
// block, then validates it against modal-group rules. blockDelete, if
// true, means the line should not be executed (but was still parsed).
func (ip *Interp) Read(line string) (blockDelete bool, err *ngcerr.Error) {
	clean, bd, perr := read.Preprocess(line)
	if perr != nil {
		return false, perr
	}
	if perr := ip.block.Parse(clean, bd, ip.Params); perr != nil {
		return bd, perr
	}
	currentMode := ip.Settings.MotionMode
	currentModeSet := ip.Settings.MotionModeSet
	if verr := ip.block.Validate(currentMode, currentModeSet); verr != nil {
		return bd, verr
	}
	return bd, nil
}

// Execute runs the dispatch pipeline of spec §4.5 over the session's
// current block, emitting CMI calls as it goes. Callers must call
// Read first.
func (ip *Interp) Execute() (Result, *ngcerr.Error) {
	b := ip.block
	s := ip.Settings

	ip.Params.Commit(b.ParamWrites)

	if b.Comment != "" {
		if len(b.Comment) >= 4 && b.Comment[:4] == "MSG," {
			ip.CMI.Message(b.Comment[4:])
		} else {
			ip.CMI.Comment(b.Comment)
		}
	}

	if g := b.GModes[block.GroupFeedMode]; g != -1 {
		s.FeedMode = g
		ip.CMI.FeedReference(g == block.G93)
	}

	if s.FeedMode == block.G94 && b.F.Set {
		s.FeedRate = b.F.Value
		ip.CMI.FeedRate(b.F.Value)
	}

	if b.S.Set {
		s.Speed = b.S.Value
		ip.CMI.SpindleSpeed(b.S.Value)
	}

	if b.T.Set {
		ip.CMI.ToolSelect(int(b.T.Value))
	}

	if err := ip.executeMCodesGroup1(b); err != nil {
		return Ok, err
	}

	if err := ip.executeGCodes(b); err != nil {
		return Ok, err
	}

	result := Ok
	if stopCode := b.MModes[block.MGroupStopping]; stopCode != -1 {
		r, err := ip.executeStopping(stopCode)
		if err != nil {
			return Ok, err
		}
		result = r
	}

	ip.refreshActiveCodes(b)
	return result, nil
}

// executeMCodesGroup1 dispatches M-codes in group order: tool-change,
// spindle, coolant, overrides (spec §4.5 step 6). The stopping group is
// handled last, after G-codes, by Execute itself.
func (ip *Interp) executeMCodesGroup1(b *block.Block) *ngcerr.Error {
	if code := b.MModes[block.MGroupToolChange]; code != -1 {
		ip.CMI.ToolChange(ip.Settings.CurTool)
	}
	if code := b.MModes[block.MGroupSpindle]; code != -1 {
		switch code {
		case block.M3:
			ip.Settings.SpindleTurning = SpindleCW
			ip.CMI.SpindleStartClockwise()
		case block.M4:
			ip.Settings.SpindleTurning = SpindleCCW
			ip.CMI.SpindleStartCounterclockwise()
		case block.M5:
			ip.Settings.SpindleTurning = SpindleStopped
			ip.CMI.SpindleStop()
		}
	}
	if code := b.MModes[block.MGroupCoolant]; code != -1 {
		switch code {
		case block.M7:
			ip.Settings.CoolantMist = true
			ip.CMI.CoolantMistOn()
		case block.M8:
			ip.Settings.CoolantFlood = true
			ip.CMI.CoolantFloodOn()
		case block.M9:
			ip.Settings.CoolantFlood, ip.Settings.CoolantMist = false, false
			ip.CMI.CoolantFloodOff()
			ip.CMI.CoolantMistOff()
		}
	}
	if code := b.MModes[block.MGroupOverride]; code != -1 {
		switch code {
		case block.M48:
			ip.Settings.FeedOverride, ip.Settings.SpeedOverride = true, true
			ip.CMI.FeedOverrideEnable()
			ip.CMI.SpeedOverrideEnable()
		case block.M49:
			ip.Settings.FeedOverride, ip.Settings.SpeedOverride = false, false
			ip.CMI.FeedOverrideDisable()
			ip.CMI.SpeedOverrideDisable()
		}
	}
	return nil
}

func (ip *Interp) executeStopping(code int) (Result, *ngcerr.Error) {
	switch code {
	case block.M0, block.M1:
		ip.CMI.ProgramStop()
		return Ok, nil
	case block.M60:
		ip.CMI.ProgramStop()
		ip.CMI.PalletShuttle()
		return Ok, nil
	case block.M2, block.M30:
		ip.resetToPowerOn()
		ip.CMI.ProgramEnd()
		if code == block.M30 {
			ip.CMI.PalletShuttle()
		}
		return Exit, nil
	}
	return Ok, nil
}

// resetToPowerOn implements the M2/M30 reset sequence of spec §4.10.
func (ip *Interp) resetToPowerOn() {
	s := ip.Settings
	s.Current = s.Current.Add(s.AxisOffset).Add(s.OriginOffset)
	s.OriginIndex = 1
	s.OriginOffset = ip.originOffsetFor(1)
	s.AxisOffset = vectorZero()
	s.Plane = PlaneXY
	s.DistanceMode = block.G90
	s.FeedMode = block.G94
	s.SpeedOverride, s.FeedOverride = true, true
	s.CutterCompSide = CompOff
	s.ProgramPointKnown = false
	s.SpindleTurning = SpindleStopped
	s.MotionMode = block.G1
	s.MotionModeSet = true
	s.CoolantFlood, s.CoolantMist = false, false
	s.Cycle = CycleSticky{}
	nglog.Infof("interpreter reset (M2/M30)")
}

func (ip *Interp) refreshActiveCodes(b *block.Block) {
	s := ip.Settings
	g := &s.ActiveGCodes
	g[1] = s.MotionMode
	g[2] = b.GModes[block.GroupNonModal]
	switch s.Plane {
	case PlaneXY:
		g[3] = block.G17
	case PlaneZX:
		g[3] = block.G18
	case PlaneYZ:
		g[3] = block.G19
	}
	switch s.CutterCompSide {
	case CompOff:
		g[4] = block.G40
	case CompLeft:
		g[4] = block.G41
	case CompRight:
		g[4] = block.G42
	}
	g[5] = s.LengthUnits
	g[6] = s.DistanceMode
	g[7] = s.FeedMode
	if s.OriginIndex < 7 {
		g[8] = 530 + 10*s.OriginIndex
	} else {
		g[8] = 584 + s.OriginIndex
	}
	if s.ToolLengthOffset == 0 {
		g[9] = block.G49
	} else {
		g[9] = block.G43
	}
	g[10] = s.RetractMode
	g[11] = s.ControlMode

	m := &s.ActiveMCodes
	switch s.SpindleTurning {
	case SpindleCW:
		m[2] = block.M3
	case SpindleCCW:
		m[2] = block.M4
	default:
		m[2] = block.M5
	}
	if s.CoolantMist {
		m[3] = block.M7
	} else if s.CoolantFlood {
		m[3] = block.M8
	} else {
		m[3] = block.M9
	}
}
