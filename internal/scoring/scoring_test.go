package scoring

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/grid"
)

func TestHeatmapRecord(t *testing.T) {
	tests := []struct {
		name            string
		pos             grid.Position
		panel, row, col int
	}{
		{"origin", grid.Pos(0, 0), 0, 0, 0},
		{"left top corner", grid.Pos(27, 55), 0, 27, 27},
		{"right half start", grid.Pos(28, 0), 1, 0, 0},
		{"center", grid.Pos(28, 28), 1, 14, 0},
		{"right edge", grid.Pos(55, 10), 1, 5, 27},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var h Heatmap
			h.Record(tc.pos, 56, 56)
			if got := h.Cells[tc.panel][tc.row][tc.col]; got != 1 {
				t.Errorf("cell[%d][%d][%d] = %v, expected 1", tc.panel, tc.row, tc.col, got)
			}
			if h.Total() != 1 {
				t.Errorf("Total() = %v, expected 1", h.Total())
			}
		})
	}
}

func TestHeatmapScalesLargerArena(t *testing.T) {
	var h Heatmap
	// 112x112 arena: each panel covers 56x112 cells
	h.Record(grid.Pos(3, 4), 112, 112)
	if h.Cells[0][1][1] != 1 {
		t.Errorf("expected visit in cell [0][1][1], got total %v", h.Total())
	}
}

func TestHeatmapIgnoresOutside(t *testing.T) {
	var h Heatmap
	for _, p := range []grid.Position{grid.Pos(-1, 0), grid.Pos(56, 0), grid.Pos(0, 56), grid.Pos(0, -1)} {
		h.Record(p, 56, 56)
	}
	if h.Total() != 0 {
		t.Errorf("Total() = %v, expected 0", h.Total())
	}
}

func TestHeatmapFlatten(t *testing.T) {
	var h Heatmap
	h.Record(grid.Pos(1, 0), 56, 56)
	h.Record(grid.Pos(1, 0), 56, 56)
	h.Record(grid.Pos(2, 0), 56, 56)

	flat := h.Flatten(0)
	if len(flat) != PanelCells {
		t.Fatalf("len = %d, expected %d", len(flat), PanelCells)
	}
	if flat[1] != 1 || flat[2] != 0.5 {
		t.Errorf("flat[1]=%v flat[2]=%v, expected 1 and 0.5", flat[1], flat[2])
	}
	for _, v := range h.Flatten(1) {
		if v != 0 {
			t.Fatal("empty panel should flatten to zeros")
		}
	}

	h.Reset()
	if h.Total() != 0 {
		t.Error("Reset should clear the heat-map")
	}
}

func TestNopScorer(t *testing.T) {
	var h Heatmap
	h.Record(grid.Pos(5, 5), 56, 56)
	bonus, err := NopScorer{}.Bonus(context.Background(), &h)
	if err != nil || bonus != 0 {
		t.Errorf("Bonus() = %d, %v; expected 0, nil", bonus, err)
	}
}

// biasedModel favours digit d for any lit pixel.
func biasedModel(d int) *DigitModel {
	m := NewDigitModel()
	for px := range PanelCells {
		m.Weights[px*Classes+d] = 1
	}
	return m
}

func TestDigitScorerBonus(t *testing.T) {
	s, err := NewDigitScorer(biasedModel(7))
	if err != nil {
		t.Fatal(err)
	}

	var h Heatmap
	h.Record(grid.Pos(3, 3), 56, 56)
	h.Record(grid.Pos(40, 3), 56, 56)

	bonus, err := s.Bonus(context.Background(), &h)
	if err != nil {
		t.Fatalf("Bonus() failed: %v", err)
	}
	if bonus != 14 {
		t.Errorf("Bonus() = %d, expected 14", bonus)
	}
}

func TestDigitScorerClassifyZeroModel(t *testing.T) {
	s, err := NewDigitScorer(NewDigitModel())
	if err != nil {
		t.Fatal(err)
	}

	// All logits tie at zero; the lowest digit wins
	d, err := s.Classify(make([]float64, PanelCells))
	if err != nil {
		t.Fatalf("Classify() failed: %v", err)
	}
	if d != 0 {
		t.Errorf("Classify() = %d, expected 0", d)
	}
}

func TestDigitScorerEmptyPanel(t *testing.T) {
	s, err := NewDigitScorer(biasedModel(5))
	if err != nil {
		t.Fatal(err)
	}

	var h Heatmap
	h.Record(grid.Pos(3, 3), 56, 56)

	// The untouched right panel has all-zero logits and reads as 0
	bonus, err := s.Bonus(context.Background(), &h)
	if err != nil {
		t.Fatalf("Bonus() failed: %v", err)
	}
	if bonus != 5 {
		t.Errorf("Bonus() = %d, expected 5", bonus)
	}
}

func TestDigitScorerCancelled(t *testing.T) {
	s, err := NewDigitScorer(NewDigitModel())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Bonus(ctx, &Heatmap{}); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestDigitScorerRejectsBadModel(t *testing.T) {
	if _, err := NewDigitScorer(nil); err == nil {
		t.Error("expected error for nil model")
	}
	if _, err := NewDigitScorer(&DigitModel{Weights: make([]float64, 3), Bias: make([]float64, Classes)}); err == nil {
		t.Error("expected error for short weights")
	}
	s, _ := NewDigitScorer(NewDigitModel())
	if _, err := s.Classify(make([]float64, 10)); err == nil {
		t.Error("expected error for short input")
	}
}

func TestDigitModelSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digits.gob")
	want := biasedModel(3)
	want.Bias[2] = 0.25

	if err := SaveDigitModel(path, want); err != nil {
		t.Fatalf("SaveDigitModel() failed: %v", err)
	}
	got, err := LoadDigitModel(path)
	if err != nil {
		t.Fatalf("LoadDigitModel() failed: %v", err)
	}
	if got.Bias[2] != 0.25 || got.Weights[3] != 1 {
		t.Errorf("loaded model differs: bias[2]=%v weights[3]=%v", got.Bias[2], got.Weights[3])
	}

	if _, err := LoadDigitModel(filepath.Join(t.TempDir(), "missing.gob")); err == nil {
		t.Error("expected error for missing model file")
	}
}
