package interp

import (
	"math"

	"github.com/kennylevinsen/rs274ngc/block"
	"github.com/kennylevinsen/rs274ngc/ngcerr"
	"github.com/kennylevinsen/rs274ngc/vector"
)

// planeComponents splits a Six into the two in-plane axes and the
// perpendicular (linear) axis, according to the active plane (spec
// §4.6/§4.7: XY under G17, YZ under G19, ZX under G18).
func planeComponents(plane int, pos vector.Six) (p0, p1, linear float64) {
	switch plane {
	case PlaneYZ:
		return pos.Y, pos.Z, pos.X
	case PlaneZX:
		return pos.Z, pos.X, pos.Y
	default:
		return pos.X, pos.Y, pos.Z
	}
}

func setPlaneComponents(plane int, pos *vector.Six, p0, p1, linear float64) {
	switch plane {
	case PlaneYZ:
		pos.Y, pos.Z, pos.X = p0, p1, linear
	case PlaneZX:
		pos.Z, pos.X, pos.Y = p0, p1, linear
	default:
		pos.X, pos.Y, pos.Z = p0, p1, linear
	}
}

// endPoint resolves the block's axis words against the current
// position, respecting distance mode (G90/G91) and G53's one-shot
// machine-absolute pass-through (spec §4.9).
func (ip *Interp) endPoint(b *block.Block) vector.Six {
	s := ip.Settings
	cur := s.Current
	if b.GModes[block.GroupNonModal] == block.G53 {
		cur = cur.Add(s.AxisOffset).Add(s.OriginOffset)
	}
	end := cur
	set := func(axisSet bool, axisVal, curVal float64) float64 {
		if !axisSet {
			return curVal
		}
		if s.DistanceMode == block.G91 {
			return curVal + axisVal
		}
		return axisVal
	}
	end.X = set(b.X.Set, b.X.Value, cur.X)
	end.Y = set(b.Y.Set, b.Y.Value, cur.Y)
	end.Z = set(b.Z.Set, b.Z.Value, cur.Z)
	end.A = set(b.A.Set, b.A.Value, cur.A)
	end.B = set(b.B.Set, b.B.Value, cur.B)
	end.C = set(b.C.Set, b.C.Value, cur.C)
	if b.GModes[block.GroupNonModal] == block.G53 {
		end = end.Sub(s.AxisOffset).Sub(s.OriginOffset)
	}
	return end
}

// executeMotion dispatches the resolved motion code: rapid, feed,
// arc, probe, or canned cycle (spec §4.5 step 7's final stage).
func (ip *Interp) executeMotion(b *block.Block) *ngcerr.Error {
	s := ip.Settings
	if b.GModes[block.GroupNonModal] == block.G53 && s.DistanceMode == block.G91 {
		return ngcerr.New(ngcerr.CannotUseG53Incremental)
	}

	s.MotionMode = b.MotionToBe
	s.MotionModeSet = true

	switch b.MotionToBe {
	case block.G0:
		end := ip.endPoint(b)
		ip.CMI.Rapid(end)
		s.Current = end
		return nil
	case block.G1:
		return ip.straightFeed(b)
	case block.G2, block.G3:
		return ip.arcFeed(b)
	case block.G38_2:
		if b.A.Set || b.B.Set || b.C.Set {
			return ngcerr.New(ngcerr.CannotMoveRotaryAxesDuringProbing)
		}
		if s.FeedMode == block.G93 {
			return ngcerr.New(ngcerr.CannotProbeInInverseTimeFeedMode)
		}
		end := ip.endPoint(b)
		ip.CMI.Probe(end)
		s.Current = ip.CMI.ProbePosition()
		s.ProbeFlag = true
		return nil
	case block.G80:
		return nil
	}
	if block.IsCannedCycle(b.MotionToBe) {
		return ip.runCannedCycle(b)
	}
	return nil
}

// straightFeed implements G1, including the cutter-radius-compensated
// offset of the first and subsequent cuts (spec §4.7): the first cut
// under comp runs perpendicular to the programmed segment by one tool
// radius; a subsequent cut is checked for a concave corner against the
// previous cut's tangent, with a tool-radius fillet arc inserted at a
// convex corner before the line itself.
func (ip *Interp) straightFeed(b *block.Block) *ngcerr.Error {
	s := ip.Settings
	end := ip.endPoint(b)

	if s.CutterCompSide == CompOff || s.CutterCompRadius == 0 {
		ip.emitFeed(end)
		s.Current = end
		return nil
	}

	p0e, p1e, linE := planeComponents(s.Plane, end)

	if !s.ProgramPointKnown {
		p0s, p1s, _ := planeComponents(s.Plane, s.Current)
		dx, dy := p0e-p0s, p1e-p1s
		length := math.Hypot(dx, dy)
		if length < Tiny {
			ip.emitFeed(end)
			s.Current = end
			s.ProgramX, s.ProgramY = p0e, p1e
			s.ProgramPointKnown = true
			return nil
		}
		offP0, offP1 := compOffset(s.CutterCompSide, s.CutterCompRadius, p0e, p1e, dx, dy, length)
		offEnd := composePlanePos(s.Plane, offP0, offP1, linE, end)
		ip.emitFeed(offEnd)
		s.Current = offEnd
		s.ProgramX, s.ProgramY = p0e, p1e
		s.CompDirX, s.CompDirY = dx/length, dy/length
		s.ProgramPointKnown = true
		return nil
	}

	// Zero-length XY moves are allowed and simply propagate the
	// programmed point (spec §4.7).
	dx, dy := p0e-s.ProgramX, p1e-s.ProgramY
	length := math.Hypot(dx, dy)
	if length < Tiny {
		s.ProgramX, s.ProgramY = p0e, p1e
		return nil
	}

	alpha := math.Atan2(dy, dx)
	if err := ip.insertCompCorner(alpha, -math.Pi/2, linE); err != nil {
		return err
	}

	offP0, offP1 := compOffset(s.CutterCompSide, s.CutterCompRadius, p0e, p1e, dx, dy, length)
	if err := ip.checkCompGouging(dx, dy, offP0, offP1); err != nil {
		return err
	}
	offEnd := composePlanePos(s.Plane, offP0, offP1, linE, end)

	ip.emitFeed(offEnd)
	s.Current = offEnd
	s.ProgramX, s.ProgramY = p0e, p1e
	s.CompDirX, s.CompDirY = dx/length, dy/length
	return nil
}

// compOffset returns the plane-coordinate offset point, translating
// (p0,p1) -- the endpoint of a segment travelling (dx,dy) -- by one
// tool radius along the left (G41) or right (G42) normal.
func compOffset(side CutterCompSide, radius, p0, p1, dx, dy, length float64) (p0off, p1off float64) {
	ux, uy := -dy/length, dx/length
	if side == CompRight {
		ux, uy = -ux, -uy
	}
	return p0 + ux*radius, p1 + uy*radius
}

func composePlanePos(plane int, p0, p1, linear float64, like vector.Six) vector.Six {
	var pos vector.Six
	setPlaneComponents(plane, &pos, p0, p1, linear)
	pos.A, pos.B, pos.C = like.A, like.B, like.C
	return pos
}

// insertCompCorner implements the subsequent-cut corner test shared by
// straightFeed and arcFeed (spec §4.6/§4.7): theta is the tangent of
// the previous compensated cut, alpha the tangent at the start of this
// one (betaAdjust is the extra -pi/2 spec §4.7 applies only to a
// straight-line alpha; arcFeed passes 0). beta is the turn from theta
// to alpha (negated for right comp); a concave corner is rejected, a
// convex one gets a tool-radius fillet arc from the previous
// compensated point around the programmed corner (program_x,
// program_y) to the new cut's start.
func (ip *Interp) insertCompCorner(alpha, betaAdjust, linear float64) *ngcerr.Error {
	s := ip.Settings
	theta := math.Atan2(s.CompDirY, s.CompDirX)
	beta := theta - alpha + betaAdjust
	if s.CutterCompSide == CompRight {
		beta = -beta
	}
	for beta <= -math.Pi/2 {
		beta += 2 * math.Pi
	}
	for beta > 3*math.Pi/2 {
		beta -= 2 * math.Pi
	}

	if beta < -ToleranceConcaveCorner || beta > math.Pi+ToleranceConcaveCorner {
		return ngcerr.New(ngcerr.ConcaveCornerWithCutterRadiusComp)
	}
	if beta <= ToleranceConcaveCorner {
		return nil
	}

	cx, cy := s.ProgramX, s.ProgramY
	p0s, p1s, _ := planeComponents(s.Plane, s.Current)
	fromX, fromY := p0s-cx, p1s-cy
	// Offset normal at the new cut's tangent, same convention as
	// compOffset: rotate the tangent +90deg for left comp.
	toX, toY := s.CutterCompRadius*math.Cos(alpha+math.Pi/2), s.CutterCompRadius*math.Sin(alpha+math.Pi/2)
	if s.CutterCompSide == CompRight {
		toX, toY = -toX, -toY
	}
	turn := 1
	if fromX*toY-fromY*toX < 0 {
		turn = -1
	}

	ip.CMI.Arc(cx+toX, cy+toY, cx, cy, turn, linear, s.Current.A, s.Current.B, s.Current.C)
	var filletEnd vector.Six
	setPlaneComponents(s.Plane, &filletEnd, cx+toX, cy+toY, linear)
	filletEnd.A, filletEnd.B, filletEnd.C = s.Current.A, s.Current.B, s.Current.C
	s.Current = filletEnd
	return nil
}

// checkCompGouging rejects an offset cut whose direction has reversed
// relative to the programmed cut -- the tool radius is larger than
// the move, so the compensated path would cut back into material
// already removed.
func (ip *Interp) checkCompGouging(dx, dy, offP0, offP1 float64) *ngcerr.Error {
	s := ip.Settings
	p0s, p1s, _ := planeComponents(s.Plane, s.Current)
	if dx*(offP0-p0s)+dy*(offP1-p1s) <= 0 {
		return ngcerr.New(ngcerr.CutterGougingWithCutterRadiusComp)
	}
	return nil
}

func (ip *Interp) emitFeed(end vector.Six) {
	s := ip.Settings
	if s.FeedMode == block.G93 {
		length := findStraightLength(end.X, end.Y, end.Z, end.A, end.B, end.C,
			s.Current.X, s.Current.Y, s.Current.Z, s.Current.A, s.Current.B, s.Current.C)
		if length > Tiny && s.FeedRate > 0 {
			ip.CMI.FeedRate(length * s.FeedRate)
		}
	}
	ip.CMI.Linear(end)
}

// arcFeed implements G2/G3 (spec §4.6): center is computed from either
// the IJK or R form, with the cutter-radius-compensated variants used
// whenever comp is active, then the arc is reported to the CMI in
// plane coordinates plus the perpendicular travel and rotary axes. A
// subsequent cut under comp is checked for a concave corner against
// the previous cut's tangent, same as straightFeed.
func (ip *Interp) arcFeed(b *block.Block) *ngcerr.Error {
	s := ip.Settings
	turnCode := -1
	if b.MotionToBe == block.G3 {
		turnCode = 1
	}
	end := ip.endPoint(b)
	p0s, p1s, lins := planeComponents(s.Plane, s.Current)
	p0e, p1e, line := planeComponents(s.Plane, end)

	var i, j float64
	haveIJ := false
	switch s.Plane {
	case PlaneYZ:
		i, j, haveIJ = b.J.Value, b.K.Value, b.J.Set || b.K.Set
	case PlaneZX:
		i, j, haveIJ = b.K.Value, b.I.Value, b.K.Set || b.I.Set
	default:
		i, j, haveIJ = b.I.Value, b.J.Value, b.I.Set || b.J.Set
	}

	tolerance := ToleranceMM
	if s.LengthUnits == block.G20 {
		tolerance = ToleranceInch
	}

	left := s.CutterCompSide == CompLeft
	comped := s.CutterCompSide != CompOff && s.CutterCompRadius != 0

	var centerX, centerY float64
	var turn int
	var err *ngcerr.Error
	switch {
	case haveIJ && comped:
		centerX, centerY, turn, err = arcDataCompIJK(turnCode, left, s.CutterCompRadius, p0s, p1s, p0e, p1e, i, j, tolerance)
	case haveIJ:
		centerX, centerY, turn, err = arcDataIJK(turnCode, p0s, p1s, p0e, p1e, i, j, tolerance)
	case b.R.Set && comped:
		centerX, centerY, turn, err = arcDataCompR(turnCode, left, s.CutterCompRadius, p0s, p1s, p0e, p1e, b.R.Value)
	case b.R.Set:
		centerX, centerY, turn, err = arcDataR(turnCode, p0s, p1s, p0e, p1e, b.R.Value)
	default:
		return ngcerr.New(ngcerr.ArcCenterMissingForG2OrG3)
	}
	if err != nil {
		return err
	}

	if !comped {
		if s.FeedMode == block.G93 {
			length := findArcLength(p0s, p1s, lins, centerX, centerY, turn, p0e, p1e, line)
			if length > Tiny && s.FeedRate > 0 {
				ip.CMI.FeedRate(length * s.FeedRate)
			}
		}
		ip.CMI.Arc(p0e, p1e, centerX, centerY, turn, line, end.A, end.B, end.C)
		s.Current = end
		return nil
	}

	// The offset (tool-path) endpoint lies on the computed center/turn
	// circle, along the ray from center through the programmed end.
	radius := math.Hypot(p0s-centerX, p1s-centerY)
	endAngle := math.Atan2(p1e-centerY, p0e-centerX)
	offP0 := centerX + radius*math.Cos(endAngle)
	offP1 := centerY + radius*math.Sin(endAngle)
	// Tangent direction of travel at the offset endpoint: the radius
	// vector rotated +90deg for a CCW (turn>0) arc, -90deg for CW.
	endTangent := endAngle + float64(turn)*math.Pi/2

	if s.ProgramPointKnown {
		startAngle := math.Atan2(p1s-centerY, p0s-centerX)
		startTangent := startAngle + float64(turn)*math.Pi/2
		if err := ip.insertCompCorner(startTangent, 0, lins); err != nil {
			return err
		}
		p0s, p1s, _ = planeComponents(s.Plane, s.Current)
		if dx, dy := offP0-p0s, offP1-p1s; dx*dx+dy*dy > Tiny*Tiny {
			if err := ip.checkCompGouging(math.Cos(endTangent), math.Sin(endTangent), offP0, offP1); err != nil {
				return err
			}
		}
	}

	if s.FeedMode == block.G93 {
		length := findArcLength(p0s, p1s, lins, centerX, centerY, turn, offP0, offP1, line)
		if length > Tiny && s.FeedRate > 0 {
			ip.CMI.FeedRate(length * s.FeedRate)
		}
	}

	offEnd := composePlanePos(s.Plane, offP0, offP1, line, end)
	ip.CMI.Arc(offP0, offP1, centerX, centerY, turn, line, end.A, end.B, end.C)
	s.Current = offEnd
	s.ProgramX, s.ProgramY = p0e, p1e
	s.CompDirX, s.CompDirY = math.Cos(endTangent), math.Sin(endTangent)
	s.ProgramPointKnown = true
	return nil
}
