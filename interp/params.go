// Package interp implements the semantic executor (spec component G)
// and its supporting state: the parameter store (E), modal settings
// (F), motion converters (H), canned-cycle engine (I), and coordinate
// system composition (J).
package interp

import "github.com/kennylevinsen/rs274ngc/block"

// Params is the sparse, deferred-commit parameter table (spec
// component E). Reads during line scanning see only committed values;
// a line's "#n=expr" writes are staged in the owning block.Block and
// applied by Commit after the block parses but before it executes.
type Params struct {
	values map[int]float64
}

// NewParams creates an empty table.
func NewParams() *Params {
	return &Params{values: make(map[int]float64)}
}

// NewParamsFrom wraps an already-loaded index->value map (the result of
// paramfile.Load), taking ownership of it.
func NewParamsFrom(values map[int]float64) *Params {
	return &Params{values: values}
}

// Snapshot returns the table's current contents as a fresh map, for
// paramfile.Save.
func (p *Params) Snapshot() map[int]float64 {
	out := make(map[int]float64, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Get implements read.Params/block.read.Params for expression
// evaluation.
func (p *Params) Get(index int) (float64, bool) {
	v, ok := p.values[index]
	return v, ok
}

// Set stores a value directly (used by the executor), bypassing the
// deferred-write buffer.
func (p *Params) Set(index int, v float64) {
	p.values[index] = v
}

// Has reports whether index currently holds a value.
func (p *Params) Has(index int) bool {
	_, ok := p.values[index]
	return ok
}

// Commit applies a block's buffered "#n=expr" writes, in encounter
// order, after the block has parsed successfully.
func (p *Params) Commit(writes []block.ParamWrite) {
	for _, w := range writes {
		p.values[w.Index] = w.Value
	}
}

// Indices returns every currently-set parameter index, ascending.
func (p *Params) Indices() []int {
	out := make([]int, 0, len(p.values))
	for i := range p.values {
		out = append(out, i)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
