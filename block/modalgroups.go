package block

// G modal group indices (spec §3).
const (
	GroupNonModal = iota
	GroupMotion
	GroupPlane
	GroupDistance
	_ // 4 reserved
	GroupFeedMode
	GroupUnits
	GroupCutterComp
	GroupToolLength
	_ // 9 reserved
	GroupRetract
	_ // 11 reserved
	GroupCoordSystem
	GroupPathControl
)

// M modal group indices.
const (
	MGroupStopping = iota
	MGroupToolChange
	MGroupSpindle
	MGroupCoolant
	MGroupOverride
)

// Well-known motion codes, ×10-encoded.
const (
	G0   = 0
	G1   = 10
	G2   = 20
	G3   = 30
	G4   = 40
	G10  = 100
	G17  = 170
	G18  = 180
	G19  = 190
	G20  = 200
	G21  = 210
	G28  = 280
	G30  = 300
	G38_2 = 382
	G40  = 400
	G41  = 410
	G42  = 420
	G43  = 430
	G49  = 490
	G53  = 530
	G54  = 540
	G55  = 550
	G56  = 560
	G57  = 570
	G58  = 580
	G59  = 590
	G59_1 = 591
	G59_2 = 592
	G59_3 = 593
	G61  = 610
	G61_1 = 611
	G64  = 640
	G80  = 800
	G81  = 810
	G82  = 820
	G83  = 830
	G84  = 840
	G85  = 850
	G86  = 860
	G87  = 870
	G88  = 880
	G89  = 890
	G90  = 900
	G91  = 910
	G92  = 920
	G92_1 = 921
	G92_2 = 922
	G92_3 = 923
	G93  = 930
	G94  = 940
	G98  = 980
	G99  = 990
)

// Well-known M-codes.
const (
	M0  = 0
	M1  = 1
	M2  = 2
	M3  = 3
	M4  = 4
	M5  = 5
	M6  = 6
	M7  = 7
	M8  = 8
	M9  = 9
	M30 = 30
	M48 = 48
	M49 = 49
	M60 = 60
)

// gCodeGroup[code] gives the modal group of the given ×10-encoded
// G-code, or -1 if the code is unknown. This mirrors the teacher's
// dense, statically computed lookup-table approach (gcode/modal.go's
// per-group slices) but indexed directly by the encoded code instead
// of scanned linearly, matching the sparse-array design called out in
// spec §9.
var gCodeGroup [1000]int

// mCodeGroup[code] gives the modal group of the given M-code, or -1 if
// unknown.
var mCodeGroup [100]int

func init() {
	for i := range gCodeGroup {
		gCodeGroup[i] = -1
	}
	for i := range mCodeGroup {
		mCodeGroup[i] = -1
	}

	assignG := func(group int, codes ...int) {
		for _, c := range codes {
			gCodeGroup[c] = group
		}
	}
	assignG(GroupNonModal, G4, G10, G28, G30, G53, G92, G92_1, G92_2, G92_3)
	assignG(GroupMotion, G0, G1, G2, G3, G38_2, G80, G81, G82, G83, G84, G85, G86, G87, G88, G89)
	assignG(GroupPlane, G17, G18, G19)
	assignG(GroupDistance, G90, G91)
	assignG(GroupFeedMode, G93, G94)
	assignG(GroupUnits, G20, G21)
	assignG(GroupCutterComp, G40, G41, G42)
	assignG(GroupToolLength, G43, G49)
	assignG(GroupRetract, G98, G99)
	assignG(GroupCoordSystem, G54, G55, G56, G57, G58, G59, G59_1, G59_2, G59_3)
	assignG(GroupPathControl, G61, G61_1, G64)

	assignM := func(group int, codes ...int) {
		for _, c := range codes {
			mCodeGroup[c] = group
		}
	}
	assignM(MGroupStopping, M0, M1, M2, M30, M60)
	assignM(MGroupToolChange, M6)
	assignM(MGroupSpindle, M3, M4, M5)
	assignM(MGroupCoolant, M7, M8, M9)
	assignM(MGroupOverride, M48, M49)
}

// IsCannedCycle reports whether the given ×10-encoded motion code is
// one of G81..G89.
func IsCannedCycle(code int) bool {
	return code >= G81 && code <= G89
}

// group0NeedsAxes reports whether the given non-modal (group 0) code
// requires axis words (G10, G28, G30, G92).
func group0NeedsAxes(code int) bool {
	switch code {
	case G10, G28, G30, G92:
		return true
	default:
		return false
	}
}
