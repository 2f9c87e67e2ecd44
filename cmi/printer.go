package cmi

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kennylevinsen/rs274ngc/vector"
)

// Printer re-serializes CMI calls back into canonical G-code text,
// emitting only the words that changed since the last call -- the
// incremental-diff-against-last-emitted-state idiom used by the
// teacher's export.StringCodeGenerator/streaming.StandardGenerator.
type Printer struct {
	W io.Writer

	Precision int

	haveMotion bool
	motion     int
	haveUnits  bool
	mm         bool
	haveFeed   bool
	feed       float64
	haveSpeed  bool
	speed      float64
	pos        vector.Six
	havePos    bool
	lastWord   string
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{W: w, Precision: 4}
}

func (p *Printer) num(v float64) string {
	s := strconv.FormatFloat(v, 'f', p.Precision, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}

func (p *Printer) line(s string) {
	if s == "" {
		return
	}
	fmt.Fprintln(p.W, s)
}

func (p *Printer) OffsetOrigin(pos vector.Six) {
	p.line(fmt.Sprintf("G92.1 (offset origin %s)", p.sixWords(pos)))
}

func (p *Printer) Units(mm bool) {
	if p.haveUnits && p.mm == mm {
		return
	}
	p.haveUnits, p.mm = true, mm
	if mm {
		p.line("G21")
	} else {
		p.line("G20")
	}
}

func (p *Printer) Plane(a0, a1, a2 int) {
	switch {
	case a0 == 0 && a1 == 1:
		p.line("G17")
	case a0 == 1 && a1 == 2:
		p.line("G19")
	default:
		p.line("G18")
	}
}

func (p *Printer) RapidRate(v float64) {}

func (p *Printer) Rapid(pos vector.Six) {
	p.move("G0", pos)
}

func (p *Printer) FeedRate(v float64) {
	if p.haveFeed && p.feed == v {
		return
	}
	p.haveFeed, p.feed = true, v
	p.line(fmt.Sprintf("F%s", p.num(v)))
}

func (p *Printer) FeedReference(inv bool) {
	if inv {
		p.line("G93")
	} else {
		p.line("G94")
	}
}

func (p *Printer) MotionMode(code int) {
	if p.haveMotion && p.motion == code {
		return
	}
	p.haveMotion, p.motion = true, code
}

func (p *Printer) CutterRadiusComp(v float64) {}

func (p *Printer) CutterRadiusCompStart(side Side) {
	if side == CompLeft {
		p.line("G41")
	} else {
		p.line("G42")
	}
}

func (p *Printer) CutterRadiusCompStop() { p.line("G40") }

func (p *Printer) SpeedFeedSyncStart() {}
func (p *Printer) SpeedFeedSyncStop()  {}

func (p *Printer) Arc(e0, e1, c0, c1 float64, rotation int, endLinear, a, b, c float64) {
	word := "G2"
	if rotation > 0 {
		word = "G3"
	}
	p.line(fmt.Sprintf("%s X%s Y%s I%s J%s", word, p.num(e0), p.num(e1), p.num(c0-p.pos.X), p.num(c1-p.pos.Y)))
	p.pos = vector.Six{X: e0, Y: e1, Z: endLinear, A: a, B: b, C: c}
	p.havePos = true
	p.lastWord = word
}

func (p *Printer) Linear(pos vector.Six) {
	p.move("G1", pos)
}

func (p *Printer) Probe(pos vector.Six) {
	p.move("G38.2", pos)
}

func (p *Printer) move(word string, pos vector.Six) {
	changed := p.sixWords(pos)
	wordChanged := p.lastWord != word
	if changed == "" && !wordChanged {
		p.pos = pos
		p.havePos = true
		return
	}
	var b strings.Builder
	if wordChanged {
		b.WriteString(word)
		if changed != "" {
			b.WriteByte(' ')
		}
	}
	b.WriteString(changed)
	p.line(b.String())
	p.pos = pos
	p.havePos = true
	p.lastWord = word
}

func (p *Printer) sixWords(pos vector.Six) string {
	var parts []string
	old := p.pos
	if !p.havePos || pos.X != old.X {
		parts = append(parts, fmt.Sprintf("X%s", p.num(pos.X)))
	}
	if !p.havePos || pos.Y != old.Y {
		parts = append(parts, fmt.Sprintf("Y%s", p.num(pos.Y)))
	}
	if !p.havePos || pos.Z != old.Z {
		parts = append(parts, fmt.Sprintf("Z%s", p.num(pos.Z)))
	}
	if !p.havePos || pos.A != old.A {
		parts = append(parts, fmt.Sprintf("A%s", p.num(pos.A)))
	}
	if !p.havePos || pos.B != old.B {
		parts = append(parts, fmt.Sprintf("B%s", p.num(pos.B)))
	}
	if !p.havePos || pos.C != old.C {
		parts = append(parts, fmt.Sprintf("C%s", p.num(pos.C)))
	}
	return strings.Join(parts, " ")
}

func (p *Printer) Dwell(s float64) { p.line(fmt.Sprintf("G4 P%s", p.num(s))) }

func (p *Printer) SpindleStartClockwise()        { p.line("M3") }
func (p *Printer) SpindleStartCounterclockwise() { p.line("M4") }
func (p *Printer) SpindleStop()                  { p.line("M5") }

func (p *Printer) SpindleSpeed(v float64) {
	if p.haveSpeed && p.speed == v {
		return
	}
	p.haveSpeed, p.speed = true, v
	p.line(fmt.Sprintf("S%s", p.num(v)))
}

func (p *Printer) SpindleOrient(angle float64, dir SpindleDir) {
	p.line(fmt.Sprintf("M19 R%s", p.num(angle)))
}

func (p *Printer) ToolLengthOffset(v float64) {
	p.line(fmt.Sprintf("G43 H%s", p.num(v)))
}

func (p *Printer) ToolChange(slot int) { p.line(fmt.Sprintf("M6 T%d", slot)) }
func (p *Printer) ToolSelect(i int)    { p.line(fmt.Sprintf("T%d", i)) }

func (p *Printer) AxisClamp(axis int)   {}
func (p *Printer) AxisUnclamp(axis int) {}

func (p *Printer) Comment(s string) { p.line(fmt.Sprintf("(%s)", s)) }
func (p *Printer) Message(s string) { p.line(fmt.Sprintf("(MSG,%s)", s)) }

func (p *Printer) FeedOverrideEnable()   { p.line("M48") }
func (p *Printer) FeedOverrideDisable()  { p.line("M49") }
func (p *Printer) SpeedOverrideEnable()  {}
func (p *Printer) SpeedOverrideDisable() {}

func (p *Printer) CoolantFloodOn()  { p.line("M8") }
func (p *Printer) CoolantFloodOff() { p.line("M9") }
func (p *Printer) CoolantMistOn()   { p.line("M7") }
func (p *Printer) CoolantMistOff()  { p.line("M9") }

func (p *Printer) PalletShuttle() { p.line("M60") }
func (p *Printer) ProbeOn()       {}
func (p *Printer) ProbeOff()      {}

func (p *Printer) ProgramStop()         { p.line("M0") }
func (p *Printer) ProgramOptionalStop() { p.line("M1") }
func (p *Printer) ProgramEnd()          { p.line("M30") }

func (p *Printer) CurrentPosition() vector.Six { return p.pos }
func (p *Printer) ProbePosition() vector.Six   { return vector.Six{} }
func (p *Printer) ProbeValue() float64         { return 0 }
func (p *Printer) ToolSlot() int               { return 0 }
func (p *Printer) ToolMax() int                { return 128 }
