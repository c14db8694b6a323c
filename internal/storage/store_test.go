package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/molsim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		TicksTaken: 2,
		SimTime:    0.04,
		Times:      []float64{0.02, 0.04},
		Series: map[string][]float64{
			"mean_speed": {600, 610},
			"collisions": {0, 1},
		},
		Metrics:    map[string]float64{"mean_speed": 610, "collisions": 1},
		Collisions: 1,
		WallHits:   3,
		Instances:  4,
	}
}

func testInfo() RunInfo {
	return RunInfo{
		Label:       "water",
		Seed:        42,
		Ticks:       2,
		Temperature: 300,
		Spawn:       []sim.Spawn{{Molecule: "water", Count: 4}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testInfo(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Label != "water" || meta.Seed != 42 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Collisions != 1 || meta.WallHits != 3 || meta.Instances != 4 {
		t.Errorf("unexpected counters %+v", meta)
	}
	if meta.Metrics["mean_speed"] != 610 {
		t.Errorf("expected mean_speed 610, got %f", meta.Metrics["mean_speed"])
	}
	if len(meta.Spawn) != 1 || meta.Spawn[0].Count != 4 {
		t.Errorf("unexpected spawn %+v", meta.Spawn)
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(times) != 2 {
		t.Errorf("expected 2 times, got %d", len(times))
	}
	if got := series["mean_speed"]; len(got) != 2 || got[1] != 610 {
		t.Errorf("unexpected mean_speed series %v", got)
	}
	if got := series["collisions"]; len(got) != 2 || got[1] != 1 {
		t.Errorf("unexpected collisions series %v", got)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(testInfo(), testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(RunInfo{}, &sim.Result{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testInfo(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "series.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	runID, err := st.Save(testInfo(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.ID != runID || len(data.Times) != 2 || len(data.Series["mean_speed"]) != 2 {
		t.Errorf("unexpected export %+v", data)
	}

	if err := st.ExportJSON(&buf, "missing"); err == nil {
		t.Error("expected error for unknown run")
	}
}
