package paramfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kennylevinsen/rs274ngc/ngcerr"
)

func requiredValues() map[int]float64 {
	values := make(map[int]float64, len(RequiredIndices()))
	for _, idx := range RequiredIndices() {
		values[idx] = 0
	}
	values[5220] = 1
	return values
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rs274ngc.var")
	values := requiredValues()
	values[100] = 25.5

	if err := Save(path, values); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got[100] != 25.5 {
		t.Fatalf("expected parameter 100 = 25.5, got %v", got[100])
	}
	if got[5220] != 1 {
		t.Fatalf("expected origin index 1, got %v", got[5220])
	}
}

func TestSaveBacksUpExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rs274ngc.var")
	if err := Save(path, requiredValues()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	values := requiredValues()
	values[200] = 1
	if err := Save(path, values); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	backup, err := Load(path + ".bak")
	if err != nil {
		t.Fatalf("Load backup: %v", err)
	}
	if _, ok := backup[200]; ok {
		t.Fatalf("backup should predate parameter 200")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.var"))
	if err == nil || err.Kind != ngcerr.ParameterFileNotFound {
		t.Fatalf("expected ParameterFileNotFound, got %v", err)
	}
}

func TestLoadRejectsOutOfOrderIndices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rs274ngc.var")
	if err := os.WriteFile(path, []byte("10\t1\n5\t2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil || err.Kind != ngcerr.ParameterFileOutOfOrder {
		t.Fatalf("expected ParameterFileOutOfOrder, got %v", err)
	}
}

func TestLoadRejectsMissingRequiredParameter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rs274ngc.var")
	if err := os.WriteFile(path, []byte("100\t1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil || err.Kind != ngcerr.RequiredParameterMissing {
		t.Fatalf("expected RequiredParameterMissing, got %v", err)
	}
}
