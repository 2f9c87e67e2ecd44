package block

import (
	"math"

	"github.com/kennylevinsen/rs274ngc/ngcerr"
	"github.com/kennylevinsen/rs274ngc/read"
)

const gTieTolerance = 0.001

func (b *Block) readG(line string, pos *int, params read.Params) *ngcerr.Error {
	v, newpos, err := read.ReadReal(line, *pos, params)
	if err != nil {
		return err
	}
	*pos = newpos

	scaled := v * 10
	code := int(math.Round(scaled))
	if math.Abs(scaled-float64(code)) > gTieTolerance*10 {
		return ngcerr.Newf(ngcerr.UnknownGCodeUsed, "g%v", v)
	}
	if code < 0 || code >= len(gCodeGroup) {
		return ngcerr.Newf(ngcerr.GCodeOutOfRange, "g%v", v)
	}
	group := gCodeGroup[code]
	if group < 0 {
		return ngcerr.Newf(ngcerr.UnknownGCodeUsed, "g%v", v)
	}
	if b.GModes[group] != -1 {
		return ngcerr.New(ngcerr.TwoGCodesUsedFromSameModalGroup)
	}
	b.GModes[group] = code
	return nil
}

func (b *Block) readM(line string, pos *int, params read.Params) *ngcerr.Error {
	v, newpos, err := read.ReadReal(line, *pos, params)
	if err != nil {
		return err
	}
	*pos = newpos

	code := int(math.Round(v))
	if math.Abs(v-float64(code)) > gTieTolerance {
		return ngcerr.Newf(ngcerr.UnknownMCodeUsed, "m%v", v)
	}
	if code < 0 || code >= len(mCodeGroup) {
		return ngcerr.Newf(ngcerr.MCodeOutOfRange, "m%v", v)
	}
	group := mCodeGroup[code]
	if group < 0 {
		return ngcerr.Newf(ngcerr.UnknownMCodeUsed, "m%v", v)
	}
	if b.MModes[group] != -1 {
		return ngcerr.New(ngcerr.TwoMCodesUsedFromSameModalGroup)
	}
	b.MModes[group] = code
	b.MCount++
	if b.MCount > 4 {
		return ngcerr.New(ngcerr.TooManyMCodesOnLine)
	}
	return nil
}
