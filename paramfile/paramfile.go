// Package paramfile loads and saves the interpreter's persistent
// parameter table (spec component K): plain text, one "<index>\t<value>"
// line per stored parameter (zero values included), indices strictly
// increasing. Grounded on
// the line-oriented bufio.Scanner parsing idiom of
// rcornwell-S370's config/configparser package, simplified down to this
// format's single token pair per line.
package paramfile

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kennylevinsen/rs274ngc/ngcerr"
)

// DefaultName is the conventional parameter file name (spec §6).
const DefaultName = "rs274ngc.var"

// MinIndex and MaxIndex bound the legal parameter index range (spec §6).
const (
	MinIndex = 1
	MaxIndex = 5399
)

// RequiredIndices returns the parameter indices that must be present in
// any file this package loads (spec §3): the G92 axis offset, the
// selected-origin index, and six indices (X Y Z A B C) for each of the
// nine origin systems.
func RequiredIndices() []int {
	indices := []int{}
	for i := 0; i < 6; i++ {
		indices = append(indices, 5211+i)
	}
	indices = append(indices, 5220)
	for n := 0; n < 9; n++ {
		base := 5221 + 20*n
		for i := 0; i < 6; i++ {
			indices = append(indices, base+i)
		}
	}
	sort.Ints(indices)
	return indices
}

// Load reads a parameter file into a fresh index->value map. Indices
// not present in the file default to zero once RequiredIndices is
// satisfied; out-of-order indices or a missing required index are
// reported as a *ngcerr.Error, matching spec §6's closed error set.
func Load(path string) (map[int]float64, *ngcerr.Error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ngcerr.Newf(ngcerr.ParameterFileNotFound, "%s", path)
		}
		return nil, ngcerr.Newf(ngcerr.UnableToOpenParameterFile, "%s: %v", path, err)
	}
	defer f.Close()

	values := make(map[int]float64)
	last := -1
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, ngcerr.Newf(ngcerr.ParameterFileOutOfOrder, "line %d: malformed entry %q", lineNo, line)
		}
		index, err := strconv.Atoi(fields[0])
		if err != nil || index < MinIndex || index > MaxIndex {
			return nil, ngcerr.Newf(ngcerr.ParameterFileOutOfOrder, "line %d: bad index %q", lineNo, fields[0])
		}
		if index <= last {
			return nil, ngcerr.New(ngcerr.ParameterFileOutOfOrder)
		}
		last = index
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, ngcerr.Newf(ngcerr.ParameterFileOutOfOrder, "line %d: bad value %q", lineNo, fields[1])
		}
		values[index] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, ngcerr.Newf(ngcerr.UnableToOpenParameterFile, "%s: %v", path, err)
	}

	for _, idx := range RequiredIndices() {
		if _, ok := values[idx]; !ok {
			return nil, ngcerr.Newf(ngcerr.RequiredParameterMissing, "parameter %d", idx)
		}
	}
	if _, ok := values[5220]; ok {
		if n := int(values[5220]); n < 1 || n > 9 {
			return nil, ngcerr.Newf(ngcerr.RequiredParameterMissing, "parameter 5220 out of range: %d", n)
		}
	}
	return values, nil
}

// Save backs up the existing file to path+".bak" (spec §6: rename, not
// copy), then rewrites path with every index in values in ascending
// order, filling in any still-missing required index with zero.
func Save(path string, values map[int]float64) *ngcerr.Error {
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			return ngcerr.Newf(ngcerr.UnableToCreateBackup, "%s: %v", path, err)
		}
	}

	complete := make(map[int]float64, len(values))
	for k, v := range values {
		complete[k] = v
	}
	for _, idx := range RequiredIndices() {
		if _, ok := complete[idx]; !ok {
			complete[idx] = 0
		}
	}

	indices := make([]int, 0, len(complete))
	for idx := range complete {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	f, err := os.Create(path)
	if err != nil {
		return ngcerr.Newf(ngcerr.UnableToOpenParameterFile, "%s: %v", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, idx := range indices {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", idx, strconv.FormatFloat(complete[idx], 'g', -1, 64)); err != nil {
			return ngcerr.Newf(ngcerr.UnableToOpenParameterFile, "%s: %v", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return ngcerr.Newf(ngcerr.UnableToOpenParameterFile, "%s: %v", path, err)
	}
	return nil
}
