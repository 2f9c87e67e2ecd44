package block

import "github.com/kennylevinsen/rs274ngc/ngcerr"

// Validate runs the modal-group validation pass (spec §4.4) after the
// block has been fully read. currentMotionMode/currentMotionModeSet
// report the modal motion mode carried over from the previous block
// (settings.motion_mode); they are consulted only when this line gives
// axis words but no explicit motion code.
func (b *Block) Validate(currentMotionMode int, currentMotionModeSet bool) *ngcerr.Error {
	axisFlag := b.X.Set || b.Y.Set || b.Z.Set || b.A.Set || b.B.Set || b.C.Set
	g0 := b.GModes[GroupNonModal]
	group0Axes := g0 != -1 && group0NeedsAxes(g0)
	g1 := b.GModes[GroupMotion]

	switch {
	case g1 != -1:
		if g1 == G80 {
			if axisFlag && !group0Axes {
				return ngcerr.New(ngcerr.CannotUseAxisValuesWithG80)
			}
			if g0 == G92 && !axisFlag {
				return ngcerr.New(ngcerr.AllAxesMissingWithG92)
			}
		} else {
			if group0Axes {
				return ngcerr.New(ngcerr.CannotUseTwoGCodesThatBothUseAxisValues)
			}
			if !axisFlag {
				return ngcerr.New(ngcerr.AllAxesMissingWithMotionCode)
			}
		}
		b.MotionToBe = g1

	case group0Axes:
		if g0 == G92 && !axisFlag {
			return ngcerr.New(ngcerr.AllAxesMissingWithG92)
		}
		b.MotionToBe = -1

	case axisFlag:
		if !currentMotionModeSet || currentMotionMode == G80 {
			return ngcerr.New(ngcerr.ModalMotionModeNotYetSet)
		}
		b.MotionToBe = currentMotionMode

	default:
		b.MotionToBe = -1
	}

	return b.crossCheckWords()
}

// crossCheckWords rejects words that are present but illegal given the
// resolved motion_to_be and the other words/codes on this line (spec
// §4.4, third bullet).
func (b *Block) crossCheckWords() *ngcerr.Error {
	motion := b.MotionToBe

	if (b.A.Set || b.B.Set || b.C.Set) && motion > G80 && motion < G90 {
		return ngcerr.New(ngcerr.AAndBWordsUsedTogetherDuringCannedCycle)
	}

	if b.D.Set {
		comp := b.GModes[GroupCutterComp]
		if comp != G41 && comp != G42 {
			return ngcerr.New(ngcerr.DWordWithNoG41Or42)
		}
	}

	if b.H.Set && b.GModes[GroupToolLength] != G43 {
		return ngcerr.New(ngcerr.HWordWithNoG43)
	}

	if (b.I.Set || b.J.Set || b.K.Set) && motion != G2 && motion != G3 && motion != G87 {
		return ngcerr.New(ngcerr.IJKWordsWithNoG2G3G87)
	}

	if b.L.Set && !IsCannedCycle(motion) && b.GModes[GroupNonModal] != G10 {
		return ngcerr.New(ngcerr.LWordWithNoCannedCycleOrG10)
	}

	if b.P.Set {
		okArcOrCycle := motion == G2 || motion == G3 ||
			motion == G82 || motion == G86 || motion == G88 || motion == G89
		okGroup0 := b.GModes[GroupNonModal] == G4 || b.GModes[GroupNonModal] == G10
		if !okArcOrCycle && !okGroup0 {
			return ngcerr.New(ngcerr.PWordWithNoG4G10G82G86G88G89OrArc)
		}
	}

	if b.Q.Set && motion != G83 {
		return ngcerr.New(ngcerr.QWordWithNoG83)
	}

	if b.R.Set {
		arc := motion == G2 || motion == G3
		if !arc && !IsCannedCycle(motion) {
			return ngcerr.New(ngcerr.RWordWithNoArcOrCannedCycle)
		}
	}

	if (motion == G2 || motion == G3) && !b.R.Set && !b.I.Set && !b.J.Set && !b.K.Set {
		return ngcerr.New(ngcerr.ArcCenterMissingForG2OrG3)
	}

	if b.GModes[GroupNonModal] == G4 && !b.P.Set {
		return ngcerr.New(ngcerr.DwellTimePWordMissingWithG4)
	}

	if b.GModes[GroupNonModal] == G10 {
		if !b.L.Set || b.L.Value != 2 {
			return ngcerr.New(ngcerr.LWordMissingWithG10)
		}
		if !b.P.Set {
			return ngcerr.New(ngcerr.PWordMissingWithG10)
		}
		pi := int(b.P.Value)
		if float64(pi) != b.P.Value {
			return ngcerr.New(ngcerr.PValueNotAnIntegerWithG10)
		}
		if pi < 1 || pi > 9 {
			return ngcerr.New(ngcerr.PValueOutOfRangeWithG10)
		}
	}

	switch motion {
	case G82:
		if !b.P.Set {
			return ngcerr.New(ngcerr.PWordMissingWithG82)
		}
	case G86:
		if !b.P.Set {
			return ngcerr.New(ngcerr.PWordMissingWithG86)
		}
	case G88:
		if !b.P.Set {
			return ngcerr.New(ngcerr.PWordMissingWithG88)
		}
	case G89:
		if !b.P.Set {
			return ngcerr.New(ngcerr.PWordMissingWithG89)
		}
	case G83:
		if !b.Q.Set {
			return ngcerr.New(ngcerr.QWordMissingWithG83)
		}
	case G87:
		if !b.I.Set && !b.J.Set && !b.K.Set {
			return ngcerr.New(ngcerr.IJKWordMissingWithG87)
		}
	}

	if b.GModes[GroupNonModal] == G53 {
		if motion != G0 && motion != G1 {
			return ngcerr.New(ngcerr.CannotUseG53WithMotionOtherThanG0OrG1)
		}
	}

	return nil
}
