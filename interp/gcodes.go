package interp

import (
	"github.com/kennylevinsen/rs274ngc/block"
	"github.com/kennylevinsen/rs274ngc/cmi"
	"github.com/kennylevinsen/rs274ngc/ngcerr"
)

// executeGCodes dispatches the G-code groups in the exact order of
// spec §4.5 step 7: dwell, plane, units, cutter comp, tool length
// offset, coordinate system, control mode, distance mode, retract
// mode, group 0 (G10/G28/G30/G92.x), motion.
func (ip *Interp) executeGCodes(b *block.Block) *ngcerr.Error {
	if b.GModes[block.GroupNonModal] == block.G4 {
		ip.CMI.Dwell(b.P.Value)
	}

	if g := b.GModes[block.GroupPlane]; g != -1 {
		switch g {
		case block.G17:
			ip.Settings.Plane = PlaneXY
			ip.CMI.Plane(0, 1, 2)
		case block.G18:
			ip.Settings.Plane = PlaneZX
			ip.CMI.Plane(2, 0, 1)
		case block.G19:
			ip.Settings.Plane = PlaneYZ
			ip.CMI.Plane(1, 2, 0)
		}
	}

	if g := b.GModes[block.GroupUnits]; g != -1 {
		ip.Settings.LengthUnits = g
		ip.CMI.Units(g == block.G21)
	}

	if g := b.GModes[block.GroupCutterComp]; g != -1 {
		if err := ip.setCutterComp(g, b); err != nil {
			return err
		}
	}

	if g := b.GModes[block.GroupToolLength]; g != -1 {
		switch g {
		case block.G43:
			ip.Settings.ToolLengthOffset = ip.toolLengthFor(int(b.H.Value))
			ip.CMI.ToolLengthOffset(ip.Settings.ToolLengthOffset)
		case block.G49:
			ip.Settings.ToolLengthOffset = 0
			ip.CMI.ToolLengthOffset(0)
		}
	}

	if g := b.GModes[block.GroupCoordSystem]; g != -1 {
		ip.selectCoordSystem(g)
	}

	if g := b.GModes[block.GroupPathControl]; g != -1 {
		ip.Settings.ControlMode = g
	}

	if g := b.GModes[block.GroupDistance]; g != -1 {
		ip.Settings.DistanceMode = g
	}

	if g := b.GModes[block.GroupRetract]; g != -1 {
		ip.Settings.RetractMode = g
	}

	if g := b.GModes[block.GroupNonModal]; g != -1 {
		switch g {
		case block.G10:
			if err := ip.executeG10(b); err != nil {
				return err
			}
		case block.G28, block.G30:
			// Stored reference points are outside this implementation's
			// parameter set (original_source/ ships no parameters.h
			// source for their slots); rapid straight to the programmed
			// axis values instead of via an intermediate stored point.
			end := ip.endPoint(b)
			ip.CMI.Rapid(end)
			ip.Settings.Current = end
		case block.G92:
			ip.executeG92(b)
		case block.G92_1:
			ip.executeG92_1()
		case block.G92_2:
			ip.executeG92_2()
		case block.G92_3:
			ip.executeG92_3()
		}
	}

	if b.MotionToBe != -1 {
		return ip.executeMotion(b)
	}
	return nil
}

func (ip *Interp) toolLengthFor(slot int) float64 {
	if slot < 0 || slot >= len(ip.Settings.Tools) {
		return 0
	}
	return ip.Settings.Tools[slot].Length
}

func (ip *Interp) setCutterComp(g int, b *block.Block) *ngcerr.Error {
	s := ip.Settings
	switch g {
	case block.G40:
		s.CutterCompSide = CompOff
		ip.CMI.CutterRadiusCompStop()
	case block.G41, block.G42:
		if g == block.G41 {
			s.CutterCompSide = CompLeft
			ip.CMI.CutterRadiusCompStart(cmi.CompLeft)
		} else {
			s.CutterCompSide = CompRight
			ip.CMI.CutterRadiusCompStart(cmi.CompRight)
		}
		s.CutterCompRadius = ip.toolRadiusFor(int(b.D.Value))
		ip.CMI.CutterRadiusComp(s.CutterCompRadius)
		s.ProgramPointKnown = false
	}
	return nil
}

func (ip *Interp) toolRadiusFor(slot int) float64 {
	if slot < 0 || slot >= len(ip.Settings.Tools) {
		return 0
	}
	return ip.Settings.Tools[slot].Diameter / 2
}
