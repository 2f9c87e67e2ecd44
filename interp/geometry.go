package interp

import (
	"math"

	"github.com/kennylevinsen/rs274ngc/ngcerr"
)

// arcDataIJK computes the arc center and turn direction from an I/J
// offset pair, in whatever two axes the active plane uses. Grounded
// directly on arc_data_ijk from the C++ reference implementation.
func arcDataIJK(turnCode int, currentX, currentY, endX, endY, i, j, tolerance float64) (centerX, centerY float64, turn int, err *ngcerr.Error) {
	centerX = currentX + i
	centerY = currentY + j
	radius := math.Hypot(centerX-currentX, centerY-currentY)
	radius2 := math.Hypot(centerX-endX, centerY-endY)
	if radius == 0 || radius2 == 0 {
		return 0, 0, 0, ngcerr.New(ngcerr.ZeroRadiusArc)
	}
	if math.Abs(radius-radius2) > tolerance {
		return 0, 0, 0, ngcerr.New(ngcerr.RadiusToEndDiffersFromRadiusToStart)
	}
	if turnCode < 0 {
		turn = -1
	} else {
		turn = 1
	}
	return centerX, centerY, turn, nil
}

// arcDataR computes the arc center and turn direction from the R-word
// form. Grounded on arc_data_r.
func arcDataR(turnCode int, currentX, currentY, endX, endY, radius float64) (centerX, centerY float64, turn int, err *ngcerr.Error) {
	if endX == currentX && endY == currentY {
		return 0, 0, 0, ngcerr.New(ngcerr.CurrentPointSameAsEndPointOfArc)
	}
	absRadius := math.Abs(radius)
	midX := (endX + currentX) / 2
	midY := (endY + currentY) / 2
	halfLength := math.Hypot(midX-endX, midY-endY)
	if halfLength/absRadius > 1+Tiny {
		return 0, 0, 0, ngcerr.New(ngcerr.ArcRadiusTooSmallToReachEndPoint)
	}
	if halfLength/absRadius > 1-Tiny {
		halfLength = absRadius
	}

	var theta float64
	if (turnCode < 0 && radius > 0) || (turnCode > 0 && radius < 0) {
		theta = math.Atan2(endY-currentY, endX-currentX) - math.Pi/2
	} else {
		theta = math.Atan2(endY-currentY, endX-currentX) + math.Pi/2
	}

	turn2 := math.Asin(halfLength / absRadius)
	offset := absRadius * math.Cos(turn2)
	centerX = midX + offset*math.Cos(theta)
	centerY = midY + offset*math.Sin(theta)
	if turnCode < 0 {
		turn = -1
	} else {
		turn = 1
	}
	return centerX, centerY, turn, nil
}

// arcDataCompIJK is arcDataIJK with the end-point radius adjusted by
// one tool radius, for the first cut under cutter-radius compensation.
// Grounded on arc_data_comp_ijk.
func arcDataCompIJK(turnCode int, left bool, toolRadius, currentX, currentY, endX, endY, i, j, tolerance float64) (centerX, centerY float64, turn int, err *ngcerr.Error) {
	centerX = currentX + i
	centerY = currentY + j
	arcRadius := math.Hypot(i, j)
	radius2 := math.Hypot(centerX-endX, centerY-endY)
	if (left && turnCode > 0) || (!left && turnCode < 0) {
		radius2 -= toolRadius
	} else {
		radius2 += toolRadius
	}
	if math.Abs(arcRadius-radius2) > tolerance {
		return 0, 0, 0, ngcerr.New(ngcerr.RadiusToEndDiffersFromRadiusToStart)
	}
	if turnCode < 0 {
		turn = -1
	} else {
		turn = 1
	}
	return centerX, centerY, turn, nil
}

// arcDataCompR is arcDataR's first-cut, tool-radius-adjusted
// counterpart. Grounded on arc_data_comp_r.
func arcDataCompR(turnCode int, left bool, toolRadius, currentX, currentY, endX, endY, bigRadius float64) (centerX, centerY float64, turn int, err *ngcerr.Error) {
	absRadius := math.Abs(bigRadius)
	if absRadius <= toolRadius && ((left && turnCode > 0) || (!left && turnCode < 0)) {
		return 0, 0, 0, ngcerr.New(ngcerr.ToolRadiusNotLessThanArcRadius)
	}

	distance := math.Hypot(endX-currentX, endY-currentY)
	alpha := math.Atan2(endY-currentY, endX-currentX)
	var theta float64
	if (turnCode > 0 && bigRadius > 0) || (turnCode < 0 && bigRadius < 0) {
		theta = alpha + math.Pi/2
	} else {
		theta = alpha - math.Pi/2
	}

	var radius2 float64
	if (left && turnCode > 0) || (!left && turnCode < 0) {
		radius2 = absRadius - toolRadius
	} else {
		radius2 = absRadius + toolRadius
	}
	if distance > radius2+absRadius {
		return 0, 0, 0, ngcerr.New(ngcerr.ArcRadiusTooSmallToReachEndPoint)
	}
	midLength := (radius2*radius2 + distance*distance - absRadius*absRadius) / (2 * distance)
	midX := currentX + midLength*math.Cos(alpha)
	midY := currentY + midLength*math.Sin(alpha)
	if radius2*radius2 <= midLength*midLength {
		return 0, 0, 0, ngcerr.Newf(ngcerr.ArcRadiusTooSmallToReachEndPoint, "imaginary tool radius offset")
	}
	offset := math.Sqrt(radius2*radius2 - midLength*midLength)
	centerX = midX + offset*math.Cos(theta)
	centerY = midY + offset*math.Sin(theta)
	if turnCode < 0 {
		turn = -1
	} else {
		turn = 1
	}
	return centerX, centerY, turn, nil
}

// findTurn returns the signed angle in radians swept from (x1,y1) to
// (x2,y2) around (centerX,centerY), given the number of full or
// partial CCW turns. Grounded on find_turn.
func findTurn(x1, y1, centerX, centerY float64, turn int, x2, y2 float64) float64 {
	if turn == 0 {
		return 0
	}
	alpha := math.Atan2(y1-centerY, x1-centerX)
	beta := math.Atan2(y2-centerY, x2-centerX)
	twoPi := 2 * math.Pi
	if turn > 0 {
		if beta <= alpha {
			beta += twoPi
		}
		return (beta - alpha) + float64(turn-1)*twoPi
	}
	if alpha <= beta {
		alpha += twoPi
	}
	return (beta - alpha) + float64(turn+1)*twoPi
}

// findArcLength is the Euclidean path length of a (possibly helical)
// arc, used for inverse-time feed-rate computation. Grounded on
// find_arc_length.
func findArcLength(x1, y1, z1, centerX, centerY float64, turn int, x2, y2, z2 float64) float64 {
	radius := math.Hypot(centerX-x1, centerY-y1)
	theta := findTurn(x1, y1, centerX, centerY, turn, x2, y2)
	if z2 == z1 {
		return radius * math.Abs(theta)
	}
	return math.Hypot(radius*theta, z2-z1)
}

// findStraightLength is the Euclidean length used for inverse-time
// feed on a straight move, preferring XYZ distance unless only the
// rotary axes moved. Grounded on find_straight_length; spec §9 flags
// this branch condition as counterintuitive when both XYZ and ABC
// move together (kept verbatim pending confirming test vectors).
func findStraightLength(endX, endY, endZ, endA, endB, endC, startX, startY, startZ, startA, startB, startC float64) float64 {
	if startX != endX || startY != endY || startZ != endZ || (endA == startA && endB == startB && endC == startC) {
		return math.Sqrt(sq(endX-startX) + sq(endY-startY) + sq(endZ-startZ))
	}
	return math.Sqrt(sq(endA-startA) + sq(endB-startB) + sq(endC-startC))
}

func sq(v float64) float64 { return v * v }
