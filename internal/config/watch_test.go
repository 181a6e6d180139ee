package config

import (
	"os"
	"testing"
	"time"
)

func TestWatcherScanInvalidatesOnChange(t *testing.T) {
	dir := t.TempDir()
	p := Paths{BaseDir: dir}
	writeFile(t, p.PoolPath("genshin", "character"), "draw:\n  base_rate: 0.009\n")

	s := NewStore(dir)
	w := NewWatcher(s, time.Minute, nil)
	w.scan(true)

	cfg, err := s.Lookup("genshin", "character")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseRate != 0.009 {
		t.Fatalf("override not applied: %v", cfg.BaseRate)
	}

	path := p.PoolPath("genshin", "character")
	writeFile(t, path, "draw:\n  base_rate: 0.010\n")
	// Force a visibly newer mtime so the scan cannot miss it.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	w.scan(false)

	cfg, err = s.Lookup("genshin", "character")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseRate != 0.010 {
		t.Errorf("scan did not reload: %v", cfg.BaseRate)
	}
}

func TestWatcherStartStop(t *testing.T) {
	s := NewStore(t.TempDir())
	w := NewWatcher(s, 10*time.Millisecond, nil)
	w.Start()
	time.Sleep(30 * time.Millisecond)
	w.Stop()
}
