package interp

import (
	"github.com/kennylevinsen/rs274ngc/block"
	"github.com/kennylevinsen/rs274ngc/ngcerr"
	"github.com/kennylevinsen/rs274ngc/vector"
)

func vectorZero() vector.Six { return vector.Six{} }

// originBase returns the parameter index holding the X offset of
// origin system n (1..9); the following five indices hold Y, Z, A, B,
// C, per spec §3/§4.9's "nine origin-system triples at 5221+20n" --
// extended here to a full six-tuple since Settings carries all six
// axes through the same offset path (an Open Question decision
// recorded in DESIGN.md).
func originBase(n int) int {
	return ParamOriginBase + 20*(n-1)
}

func (ip *Interp) originOffsetFor(n int) vector.Six {
	base := originBase(n)
	get := func(i int) float64 {
		v, _ := ip.Params.Get(base + i)
		return v
	}
	return vector.Six{X: get(0), Y: get(1), Z: get(2), A: get(3), B: get(4), C: get(5)}
}

func (ip *Interp) storeOriginOffset(n int, pos vector.Six) {
	base := originBase(n)
	ip.Params.Set(base+0, pos.X)
	ip.Params.Set(base+1, pos.Y)
	ip.Params.Set(base+2, pos.Z)
	ip.Params.Set(base+3, pos.A)
	ip.Params.Set(base+4, pos.B)
	ip.Params.Set(base+5, pos.C)
}

// selectCoordSystem implements G54..G59.3 activation (spec §4.9):
// current is re-expressed in the new frame, axis offset is unchanged,
// and the CMI is notified of the new composed origin.
func (ip *Interp) selectCoordSystem(g int) {
	n := coordSystemIndex(g)
	s := ip.Settings
	if n == s.OriginIndex {
		return // coordinate-frame idempotence (spec §8)
	}
	oldOffset := s.OriginOffset
	newOffset := ip.originOffsetFor(n)
	s.Current = s.Current.Add(oldOffset).Sub(newOffset)
	s.OriginOffset = newOffset
	s.OriginIndex = n
	ip.CMI.OffsetOrigin(newOffset.Add(s.AxisOffset))
}

func coordSystemIndex(g int) int {
	switch g {
	case block.G54:
		return 1
	case block.G55:
		return 2
	case block.G56:
		return 3
	case block.G57:
		return 4
	case block.G58:
		return 5
	case block.G59:
		return 6
	case block.G59_1:
		return 7
	case block.G59_2:
		return 8
	case block.G59_3:
		return 9
	}
	return 1
}

// executeG92 implements G92 axis offsetting (spec §4.9): axis_offset :=
// current + axis_offset - block_value, then current := block_value.
func (ip *Interp) executeG92(b *block.Block) {
	s := ip.Settings
	blockVal := blockAxisValues(b, s.Current)
	s.AxisOffset = s.Current.Add(s.AxisOffset).Sub(blockVal)
	s.Current = blockVal
	ip.storeAxisOffsetParams(s.AxisOffset)
	ip.CMI.OffsetOrigin(s.OriginOffset.Add(s.AxisOffset))
}

func (ip *Interp) executeG92_1() {
	ip.Settings.AxisOffset = vectorZero()
	ip.storeAxisOffsetParams(vectorZero())
	ip.CMI.OffsetOrigin(ip.Settings.OriginOffset)
}

func (ip *Interp) executeG92_2() {
	ip.Settings.AxisOffset = vectorZero()
	ip.CMI.OffsetOrigin(ip.Settings.OriginOffset)
}

func (ip *Interp) executeG92_3() {
	s := ip.Settings
	get := func(i int) float64 {
		v, _ := ip.Params.Get(ParamG92OffsetX + i)
		return v
	}
	s.AxisOffset = vector.Six{X: get(0), Y: get(1), Z: get(2), A: get(3), B: get(4), C: get(5)}
	ip.CMI.OffsetOrigin(s.OriginOffset.Add(s.AxisOffset))
}

func (ip *Interp) storeAxisOffsetParams(off vector.Six) {
	ip.Params.Set(ParamG92OffsetX+0, off.X)
	ip.Params.Set(ParamG92OffsetX+1, off.Y)
	ip.Params.Set(ParamG92OffsetX+2, off.Z)
	ip.Params.Set(ParamG92OffsetX+3, off.A)
	ip.Params.Set(ParamG92OffsetX+4, off.B)
	ip.Params.Set(ParamG92OffsetX+5, off.C)
}

// executeG10 implements "G10 L2 Pn": writes the nine coordinate-system
// origins into parameters, updating live state if n is the active
// system (spec §4.9). Validate has already checked L==2 and P in 1..9.
func (ip *Interp) executeG10(b *block.Block) *ngcerr.Error {
	n := int(b.P.Value)
	pos := blockAxisValues(b, ip.originOffsetFor(n))
	ip.storeOriginOffset(n, pos)
	if n == ip.Settings.OriginIndex {
		ip.Settings.OriginOffset = pos
		ip.CMI.OffsetOrigin(pos.Add(ip.Settings.AxisOffset))
	}
	return nil
}

// blockAxisValues returns a Six built from whichever of x,y,z,a,b,c the
// block set, falling back to dflt for the rest.
func blockAxisValues(b *block.Block, dflt vector.Six) vector.Six {
	v := dflt
	if b.X.Set {
		v.X = b.X.Value
	}
	if b.Y.Set {
		v.Y = b.Y.Value
	}
	if b.Z.Set {
		v.Z = b.Z.Value
	}
	if b.A.Set {
		v.A = b.A.Value
	}
	if b.B.Set {
		v.B = b.B.Value
	}
	if b.C.Set {
		v.C = b.C.Value
	}
	return v
}
