package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stops.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, "stop_code,stop_name,stop_lat,stop_lon\n"+
		"1234,State & Anapamu,34.4221,-119.7027\n"+
		"5678,UCSB North Hall,34.4140,-119.8489\n"+
		",Ignored Empty Code,0,0\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	s, ok := c.Lookup("1234")
	if !ok {
		t.Fatal("Lookup(1234) not found")
	}
	if s.Name != "State & Anapamu" || s.Lat != 34.4221 || s.Lon != -119.7027 {
		t.Errorf("unexpected stop: %+v", s)
	}

	if _, ok := c.Lookup("0000"); ok {
		t.Error("Lookup(0000) should not be found")
	}
}

func TestLoadColumnVariants(t *testing.T) {
	// stop_id fallback, no coordinates, shuffled column order.
	path := writeCatalog(t, "stop_name,stop_id\nDowntown Transit Center,42\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, ok := c.Lookup("42")
	if !ok || s.Name != "Downtown Transit Center" {
		t.Errorf("got %+v ok=%v", s, ok)
	}
	if s.Lat != 0 || s.Lon != 0 {
		t.Errorf("coordinates should default to zero: %+v", s)
	}
}

func TestLoadMissingColumns(t *testing.T) {
	path := writeCatalog(t, "a,b\n1,2\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for missing required columns")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
