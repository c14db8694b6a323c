package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/molsim/internal/element"
	"github.com/san-kum/molsim/internal/molecule"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Ticks != DefaultTicks {
		t.Errorf("expected %d ticks, got %d", DefaultTicks, cfg.Ticks)
	}
	if cfg.Temperature != 273 {
		t.Errorf("expected 273 K, got %f", cfg.Temperature)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	p := cfg.EngineParams()
	if p.TickStep != 0.02 || p.Bounds.X() != 2000 || p.MoleculeRadius != 250 {
		t.Errorf("unexpected engine params %+v", p)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte(`
ticks: 42
temperature: 350
spawn:
  - molecule: ethanol
    count: 3
engine:
  restitution: 0.8
  bounds: [500, 600, 700]
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Ticks != 42 || cfg.Temperature != 350 {
		t.Errorf("unexpected ticks/temperature %d/%f", cfg.Ticks, cfg.Temperature)
	}
	if len(cfg.Spawn) != 1 || cfg.Spawn[0].Molecule != "ethanol" {
		t.Errorf("unexpected spawn %+v", cfg.Spawn)
	}
	if cfg.Engine.Restitution != 0.8 {
		t.Errorf("expected restitution 0.8, got %f", cfg.Engine.Restitution)
	}
	if cfg.Engine.TickStep != 0.02 {
		t.Errorf("unset keys should keep defaults, tick_step = %f", cfg.Engine.TickStep)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}

	p := cfg.EngineParams()
	if p.Bounds.Y() != 600 || p.Restitution != 0.8 {
		t.Errorf("unexpected engine params %+v", p)
	}

	sc := cfg.SimConfig()
	if sc.Ticks != 42 || len(sc.Spawn) != 1 || sc.Spawn[0].Count != 3 {
		t.Errorf("unexpected sim config %+v", sc)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("ticks: [1, 2"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("ticks: -5\n"), 0644)
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Engine.SpinRate = 0.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Seed != 99 || loaded.Engine.SpinRate != 0.5 || len(loaded.Engine.Bounds) != 3 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero ticks", func(c *Config) { c.Ticks = 0 }},
		{"negative temperature", func(c *Config) { c.Temperature = -1 }},
		{"negative sample interval", func(c *Config) { c.SampleEvery = -2 }},
		{"unnamed molecule", func(c *Config) { c.Spawn = []SpawnConfig{{Count: 1}} }},
		{"negative count", func(c *Config) { c.Spawn = []SpawnConfig{{Molecule: "water", Count: -1}} }},
		{"zero tick step", func(c *Config) { c.Engine.TickStep = 0 }},
		{"zero speed factor", func(c *Config) { c.Engine.SpeedFactor = 0 }},
		{"short bounds", func(c *Config) { c.Engine.Bounds = []float64{1, 2} }},
		{"negative bounds", func(c *Config) { c.Engine.Bounds = []float64{1, -2, 3} }},
		{"restitution above one", func(c *Config) { c.Engine.Restitution = 1.5 }},
		{"negative radius", func(c *Config) { c.Engine.MoleculeRadius = -1 }},
		{"zero min distance", func(c *Config) { c.Engine.MinDistance = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("salt")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Spawn[0].Molecule != "sodium-chloride" {
		t.Errorf("expected sodium-chloride first, got %s", cfg.Spawn[0].Molecule)
	}

	cfg.Spawn[0].Count = 1000
	if Presets["salt"].Spawn[0].Count == 1000 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreRunnable(t *testing.T) {
	reg, err := molecule.NewRegistry(element.Default())
	if err != nil {
		t.Fatal(err)
	}

	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
		for _, s := range cfg.Spawn {
			if _, err := reg.Get(s.Molecule); err != nil {
				t.Errorf("preset %s: %v", name, err)
			}
		}
	}
}
