// Package block implements the fixed-shape Block (spec component C)
// and its modal-group validator (component D). A single Block is
// reused across lines: Parse resets it and reads one preprocessed NGC
// source line into it, enforcing per-word uniqueness and range, before
// Validate resolves the implicit motion mode and rejects modal-group
// conflicts.
package block

import (
	"github.com/kennylevinsen/rs274ngc/ngcerr"
	"github.com/kennylevinsen/rs274ngc/read"
)

// Real is an optional real-valued word.
type Real struct {
	Value float64
	Set   bool
}

// UInt is an optional non-negative integer-valued word.
type UInt struct {
	Value uint
	Set   bool
}

// ParamWrite is one deferred "#n=expr" assignment encountered on the
// line. It is committed to the parameter table after the block parses
// successfully and before it executes (spec §3).
type ParamWrite struct {
	Index int
	Value float64
}

const maxParamWrites = 50

// Number of G modal groups (indices 0..13, per spec §3); not all
// indices are assigned (4, 9 and 11 are reserved).
const numGGroups = 14

// Number of M modal groups (indices 0..9 per spec §3; this
// implementation only assigns 0..4).
const numMGroups = 10

// Block is the parsed image of one line of NGC source.
type Block struct {
	LineNumber UInt

	X, Y, Z, A, B, C Real
	F, I, J, K       Real
	P, Q, R, S       Real

	D, H, L, T UInt

	// GModes[g] holds the ×10-encoded G-code active in modal group g
	// on this line, or -1 if none was given.
	GModes [numGGroups]int
	// MModes[g] holds the M-code active in modal group g on this
	// line, or -1 if none was given.
	MModes [numMGroups]int

	MotionToBe int // resolved motion code for this line, or -1
	MCount     int

	Comment string

	ParamWrites []ParamWrite

	BlockDelete bool
}

// New allocates a fresh, zeroed Block ready for Parse.
func New() *Block {
	b := &Block{}
	b.reset()
	return b
}

func (b *Block) reset() {
	*b = Block{}
	for i := range b.GModes {
		b.GModes[i] = -1
	}
	for i := range b.MModes {
		b.MModes[i] = -1
	}
	b.MotionToBe = -1
}

// Parse resets b and reads the preprocessed line (as produced by
// read.Preprocess) into it. params is consulted for "#n" reads
// appearing inside expressions; "#n=expr" assignments on this line are
// staged into b.ParamWrites rather than applied immediately.
func (b *Block) Parse(line string, blockDelete bool, params read.Params) *ngcerr.Error {
	b.reset()
	b.BlockDelete = blockDelete

	pos := 0
	first := true
	for pos < len(line) {
		c := line[pos]

		if c == '(' {
			end := pos + 1
			for end < len(line) && line[end] != ')' {
				end++
			}
			// Preprocess guarantees a matching ')' exists.
			b.Comment = line[pos+1 : end]
			pos = end + 1
			first = false
			continue
		}

		if c == '#' {
			if err := b.parseParamSetting(line, &pos, params); err != nil {
				return err
			}
			first = false
			continue
		}

		letter := c
		pos++
		if err := b.dispatch(letter, line, &pos, params, first); err != nil {
			return err
		}
		first = false
	}
	return nil
}

func (b *Block) parseParamSetting(line string, pos *int, params read.Params) *ngcerr.Error {
	idx, newpos, err := read.ReadParameterIndex(line, *pos, params)
	if err != nil {
		return err
	}
	*pos = newpos
	if *pos >= len(line) || line[*pos] != '=' {
		return ngcerr.New(ngcerr.EqualSignMissingInParameterSetting)
	}
	*pos++
	v, newpos, err := read.ReadReal(line, *pos, params)
	if err != nil {
		return err
	}
	*pos = newpos
	if len(b.ParamWrites) >= maxParamWrites {
		return ngcerr.Newf(ngcerr.ParameterNumberOutOfRange, "too many parameter settings on one line")
	}
	b.ParamWrites = append(b.ParamWrites, ParamWrite{Index: idx, Value: v})
	return nil
}

func (b *Block) dispatch(letter byte, line string, pos *int, params read.Params, first bool) *ngcerr.Error {
	switch letter {
	case 'n':
		if !first {
			return ngcerr.Newf(ngcerr.BadCharacterUsed, "line number must be first word")
		}
		return b.readLineNumber(line, pos)
	case 'g':
		return b.readG(line, pos, params)
	case 'm':
		return b.readM(line, pos, params)
	case 'x':
		return readRealWord(&b.X, line, pos, params, nil)
	case 'y':
		return readRealWord(&b.Y, line, pos, params, nil)
	case 'z':
		return readRealWord(&b.Z, line, pos, params, nil)
	case 'a':
		return readRealWord(&b.A, line, pos, params, nil)
	case 'b':
		return readRealWord(&b.B, line, pos, params, nil)
	case 'c':
		return readRealWord(&b.C, line, pos, params, nil)
	case 'f':
		return readRealWord(&b.F, line, pos, params, nonNegative(ngcerr.NegativeFWordUsed))
	case 'i':
		return readRealWord(&b.I, line, pos, params, nil)
	case 'j':
		return readRealWord(&b.J, line, pos, params, nil)
	case 'k':
		return readRealWord(&b.K, line, pos, params, nil)
	case 'p':
		return readRealWord(&b.P, line, pos, params, nonNegative(ngcerr.BadCharacterUsed))
	case 'q':
		return readRealWord(&b.Q, line, pos, params, nil)
	case 'r':
		return readRealWord(&b.R, line, pos, params, nil)
	case 's':
		return readRealWord(&b.S, line, pos, params, nonNegative(ngcerr.NegativeSpindleSpeedUsed))
	case 'd':
		return b.readD(line, pos)
	case 'h':
		return readUIntWord(&b.H, line, pos)
	case 'l':
		return readUIntWord(&b.L, line, pos)
	case 't':
		return readUIntWord(&b.T, line, pos)
	default:
		return ngcerr.Newf(ngcerr.BadCharacterUsed, "unknown word address %q", letter)
	}
}

func nonNegative(kind ngcerr.Kind) func(float64) *ngcerr.Error {
	return func(v float64) *ngcerr.Error {
		if v < 0 {
			return ngcerr.New(kind)
		}
		return nil
	}
}

func readRealWord(dst *Real, line string, pos *int, params read.Params, check func(float64) *ngcerr.Error) *ngcerr.Error {
	if dst.Set {
		return ngcerr.New(ngcerr.MultipleWordsOnOneLine)
	}
	v, newpos, err := read.ReadReal(line, *pos, params)
	if err != nil {
		return err
	}
	if check != nil {
		if kerr := check(v); kerr != nil {
			return kerr
		}
	}
	*pos = newpos
	dst.Value, dst.Set = v, true
	return nil
}

func readUIntWord(dst *UInt, line string, pos *int) *ngcerr.Error {
	if dst.Set {
		return ngcerr.New(ngcerr.MultipleWordsOnOneLine)
	}
	v, newpos, err := read.ReadUnsignedInt(line, *pos)
	if err != nil {
		return err
	}
	*pos = newpos
	dst.Value, dst.Set = uint(v), true
	return nil
}

func (b *Block) readD(line string, pos *int) *ngcerr.Error {
	if b.D.Set {
		return ngcerr.New(ngcerr.MultipleWordsOnOneLine)
	}
	v, newpos, err := read.ReadUnsignedInt(line, *pos)
	if err != nil {
		return err
	}
	if v >= maxToolSlots {
		return ngcerr.New(ngcerr.ToolRadiusIndexTooBig)
	}
	*pos = newpos
	b.D.Value, b.D.Set = uint(v), true
	return nil
}

func (b *Block) readLineNumber(line string, pos *int) *ngcerr.Error {
	v, newpos, err := read.ReadUnsignedInt(line, *pos)
	if err != nil {
		return err
	}
	if v > 99999 {
		return ngcerr.New(ngcerr.LineNumberTooBig)
	}
	*pos = newpos
	b.LineNumber.Value, b.LineNumber.Set = uint(v), true
	return nil
}

// maxToolSlots is the tool table capacity referenced by §3 ("capacity
// >= 128").
const maxToolSlots = 128
