// Package ngcerr defines the closed enumeration of error kinds an
// RS274/NGC interpreter can report, and an Error type that carries one
// of them with a formatted, human-readable message.
package ngcerr

import "fmt"

// Kind identifies one member of the interpreter's closed error
// enumeration (spec §7). It never changes meaning once assigned; new
// members are only ever appended.
type Kind uint16

const (
	Unknown Kind = iota

	// Lexical
	BadCharacterUsed
	UnclosedExpression
	UnclosedComment
	NestedComment
	BadFormatUnsignedInteger
	BadNumberFormat
	LineTooLong

	// Arithmetic / expression
	AttemptToDivideByZero
	AttemptToRaiseNegativeToNonIntegerPower
	UnknownOperation
	ArgumentToAcosOutOfRange
	ArgumentToAsinOutOfRange
	NegativeArgumentToSqrt
	ZeroOrNegativeArgumentToLn
	UnknownWordStartCharacter

	// Syntactic
	MultipleWordsOnOneLine
	UnknownGCodeUsed
	UnknownMCodeUsed
	GCodeOutOfRange
	MCodeOutOfRange
	TooManyMCodesOnLine
	EqualSignMissingInParameterSetting
	ParameterNumberOutOfRange
	NegativeFWordUsed
	NegativeSpindleSpeedUsed
	ToolRadiusIndexTooBig
	ToolRadiusIndexNegative
	LineNumberTooBig

	// Semantic — modal groups / motion resolution
	CannotUseAxisValuesWithG80
	AllAxesMissingWithG92
	CannotUseTwoGCodesThatBothUseAxisValues
	AllAxesMissingWithMotionCode
	TwoGCodesUsedFromSameModalGroup
	TwoMCodesUsedFromSameModalGroup

	// Semantic — word/code legality
	AAndBWordsUsedTogetherDuringCannedCycle
	DWordWithNoG41Or42
	HWordWithNoG43
	IJKWordsWithNoG2G3G87
	LWordWithNoCannedCycleOrG10
	PWordWithNoG4G10G82G86G88G89OrArc
	QWordWithNoG83
	RWordWithNoArcOrCannedCycle
	DwellTimePWordMissingWithG4
	PWordMissingWithG82
	PWordMissingWithG86
	PWordMissingWithG88
	PWordMissingWithG89
	PWordMissingWithG10
	QWordMissingWithG83
	IJKWordMissingWithG87
	LWordMissingWithG10
	PValueNotAnIntegerWithG10
	PValueOutOfRangeWithG10
	ArcCenterMissingForG2OrG3

	CannotChangeAxisOffsetsWithCutterRadiusComp
	CannotChangeUnitsWithCutterRadiusComp
	CannotUseG53Incremental
	CannotUseG53WithMotionOtherThanG0OrG1
	CannotMoveRotaryAxesDuringProbing
	CannotProbeInInverseTimeFeedMode

	// Geometry
	RadiusToEndDiffersFromRadiusToStart
	ArcRadiusTooSmallToReachEndPoint
	CurrentPointSameAsEndPointOfArc
	ZeroRadiusArc
	ConcaveCornerWithCutterRadiusComp
	CutterGougingWithCutterRadiusComp
	ToolRadiusNotLessThanArcRadius

	// Parameter file
	UnableToOpenParameterFile
	ParameterFileOutOfOrder
	RequiredParameterMissing
	UnableToCreateBackup
	ParameterFileNotFound

	// Cycle / spindle preconditions
	SpindleNotTurningClockwiseInG84
	RBelowBottomInCycle
	BugBackBoreNotSupportedInPlane

	// Session
	UnknownModeForLine
	ModalMotionModeNotYetSet
)

var names = map[Kind]string{
	Unknown:                                  "unknown error",
	BadCharacterUsed:                         "bad character used",
	UnclosedExpression:                       "unclosed expression",
	UnclosedComment:                          "unclosed comment",
	NestedComment:                            "nested comment",
	BadFormatUnsignedInteger:                 "bad format unsigned integer",
	BadNumberFormat:                          "bad number format",
	LineTooLong:                              "line too long",
	AttemptToDivideByZero:                    "attempt to divide by zero",
	AttemptToRaiseNegativeToNonIntegerPower:  "attempt to raise negative number to non-integer power",
	UnknownOperation:                         "unknown operation",
	ArgumentToAcosOutOfRange:                 "argument to acos out of range",
	ArgumentToAsinOutOfRange:                 "argument to asin out of range",
	NegativeArgumentToSqrt:                   "negative argument to sqrt",
	ZeroOrNegativeArgumentToLn:               "zero or negative argument to ln",
	UnknownWordStartCharacter:                "unknown word start character",
	MultipleWordsOnOneLine:                   "multiple words of the same letter on one line",
	UnknownGCodeUsed:                         "unknown g-code used",
	UnknownMCodeUsed:                         "unknown m-code used",
	GCodeOutOfRange:                          "g-code out of range",
	MCodeOutOfRange:                          "m-code out of range",
	TooManyMCodesOnLine:                      "too many m-codes on line",
	EqualSignMissingInParameterSetting:       "equal sign missing in parameter setting",
	ParameterNumberOutOfRange:                "parameter number out of range",
	NegativeFWordUsed:                        "negative f-word used",
	NegativeSpindleSpeedUsed:                 "negative spindle speed used",
	ToolRadiusIndexTooBig:                    "tool radius index too big",
	ToolRadiusIndexNegative:                  "tool radius index negative",
	LineNumberTooBig:                         "line number too big",
	CannotUseAxisValuesWithG80:               "cannot use axis values with g80",
	AllAxesMissingWithG92:                    "all axes missing with g92",
	CannotUseTwoGCodesThatBothUseAxisValues:  "cannot use two g-codes that both use axis values",
	AllAxesMissingWithMotionCode:              "all axes missing with motion code",
	TwoGCodesUsedFromSameModalGroup:          "two g-codes used from same modal group",
	TwoMCodesUsedFromSameModalGroup:          "two m-codes used from same modal group",
	AAndBWordsUsedTogetherDuringCannedCycle:  "a/b/c word used during canned cycle",
	DWordWithNoG41Or42:                       "d-word with no g41 or g42",
	HWordWithNoG43:                           "h-word with no g43",
	IJKWordsWithNoG2G3G87:                    "i/j/k word with no g2, g3 or g87",
	LWordWithNoCannedCycleOrG10:              "l-word with no canned cycle or g10",
	PWordWithNoG4G10G82G86G88G89OrArc:        "p-word with no g4, g10, g82, g86, g88, g89 or arc",
	QWordWithNoG83:                           "q-word with no g83",
	RWordWithNoArcOrCannedCycle:              "r-word with no arc or canned cycle",
	DwellTimePWordMissingWithG4:              "dwell time p-word missing with g4",
	PWordMissingWithG82:                      "p-word missing with g82",
	PWordMissingWithG86:                      "p-word missing with g86",
	PWordMissingWithG88:                      "p-word missing with g88",
	PWordMissingWithG89:                      "p-word missing with g89",
	PWordMissingWithG10:                      "p-word missing with g10",
	QWordMissingWithG83:                      "q-word missing with g83",
	IJKWordMissingWithG87:                    "i/j/k word missing with g87",
	LWordMissingWithG10:                      "l-word missing with g10",
	PValueNotAnIntegerWithG10:                "p-value not an integer with g10",
	PValueOutOfRangeWithG10:                  "p-value out of range with g10",
	ArcCenterMissingForG2OrG3:                "neither i/j/k nor r word given with g2 or g3",
	CannotChangeAxisOffsetsWithCutterRadiusComp: "cannot change axis offsets with cutter radius comp",
	CannotChangeUnitsWithCutterRadiusComp:    "cannot change units with cutter radius comp",
	CannotUseG53Incremental:                  "cannot use g53 incremental",
	CannotUseG53WithMotionOtherThanG0OrG1:    "cannot use g53 with motion other than g0 or g1",
	CannotMoveRotaryAxesDuringProbing:        "cannot move rotary axes during probing",
	CannotProbeInInverseTimeFeedMode:         "cannot probe in inverse time feed mode",
	RadiusToEndDiffersFromRadiusToStart:      "radius to end differs from radius to start",
	ArcRadiusTooSmallToReachEndPoint:         "arc radius too small to reach end point",
	CurrentPointSameAsEndPointOfArc:          "current point same as end point of arc",
	ZeroRadiusArc:                            "zero radius arc",
	ConcaveCornerWithCutterRadiusComp:        "concave corner with cutter radius comp",
	CutterGougingWithCutterRadiusComp:        "cutter gouging with cutter radius comp",
	ToolRadiusNotLessThanArcRadius:           "tool radius not less than arc radius",
	UnableToOpenParameterFile:                "unable to open parameter file",
	ParameterFileOutOfOrder:                  "parameter file out of order",
	RequiredParameterMissing:                 "required parameter missing",
	UnableToCreateBackup:                     "unable to create backup",
	ParameterFileNotFound:                    "parameter file not found",
	SpindleNotTurningClockwiseInG84:          "spindle not turning clockwise in g84",
	RBelowBottomInCycle:                      "r word below bottom in canned cycle",
	BugBackBoreNotSupportedInPlane:           "g87 not supported in this plane",
	UnknownModeForLine:                       "unknown mode for line",
	ModalMotionModeNotYetSet:                 "axis words given with no motion code and no usable modal motion mode",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unrecognized error kind"
}

// Error is the concrete error type returned by every package in this
// module. It always carries a Kind from the closed enumeration above.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.msg
}

// Is lets errors.Is(err, ngcerr.New(SomeKind)) match on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an Error of the given kind with no extra detail.
func New(k Kind) *Error {
	return &Error{Kind: k}
}

// Newf creates an Error of the given kind with a formatted detail
// message appended.
func Newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, msg: fmt.Sprintf(format, args...)}
}
