package scoring

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"

	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Classes is the number of digits the classifier distinguishes.
const Classes = 10

// DigitModel holds the parameters of a single dense layer mapping a flattened
// panel to per-digit logits.
type DigitModel struct {
	Weights []float64 // PanelCells x Classes, row-major
	Bias    []float64 // Classes
}

// NewDigitModel returns a zero-initialised model.
func NewDigitModel() *DigitModel {
	return &DigitModel{
		Weights: make([]float64, PanelCells*Classes),
		Bias:    make([]float64, Classes),
	}
}

func (m *DigitModel) validate() error {
	if len(m.Weights) != PanelCells*Classes {
		return fmt.Errorf("scoring: model has %d weights, expected %d", len(m.Weights), PanelCells*Classes)
	}
	if len(m.Bias) != Classes {
		return fmt.Errorf("scoring: model has %d biases, expected %d", len(m.Bias), Classes)
	}
	return nil
}

// LoadDigitModel reads gob-encoded weights from path.
func LoadDigitModel(path string) (*DigitModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scoring: open model: %w", err)
	}
	defer f.Close()

	var m DigitModel
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("scoring: decode model %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveDigitModel writes the model to path in gob encoding.
func SaveDigitModel(path string, m *DigitModel) error {
	if err := m.validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scoring: create model: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("scoring: encode model: %w", err)
	}
	return f.Close()
}

// DigitScorer reads each heat-map panel as a handwritten digit and awards
// the sum of the recognised digits.
type DigitScorer struct {
	model *DigitModel
}

// NewDigitScorer creates a scorer backed by m.
func NewDigitScorer(m *DigitModel) (*DigitScorer, error) {
	if m == nil {
		return nil, errors.New("scoring: nil model")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &DigitScorer{model: m}, nil
}

// Bonus classifies every panel and sums the predicted digits.
func (s *DigitScorer) Bonus(ctx context.Context, h *Heatmap) (int, error) {
	total := 0
	for i := range Panels {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		d, err := s.Classify(h.Flatten(i))
		if err != nil {
			return 0, fmt.Errorf("scoring: panel %d: %w", i, err)
		}
		total += d
	}
	return total, nil
}

// Classify runs one forward pass over a flattened panel and returns the digit
// with the highest logit. Ties resolve to the lowest digit.
func (s *DigitScorer) Classify(input []float64) (int, error) {
	if len(input) != PanelCells {
		return 0, fmt.Errorf("input has %d values, expected %d", len(input), PanelCells)
	}

	logits, err := s.forward(input)
	if err != nil {
		return 0, err
	}

	best := 0
	for i, v := range logits {
		if v > logits[best] {
			best = i
		}
	}
	return best, nil
}

func (s *DigitScorer) forward(input []float64) ([]float64, error) {
	g := gorgonia.NewGraph()

	x := gorgonia.NewMatrix(g,
		tensor.Float64,
		gorgonia.WithShape(1, PanelCells),
		gorgonia.WithName("x"),
		gorgonia.WithValue(tensor.New(tensor.WithShape(1, PanelCells), tensor.WithBacking(clone(input)))))

	w := gorgonia.NewMatrix(g,
		tensor.Float64,
		gorgonia.WithShape(PanelCells, Classes),
		gorgonia.WithName("w"),
		gorgonia.WithValue(tensor.New(tensor.WithShape(PanelCells, Classes), tensor.WithBacking(clone(s.model.Weights)))))

	b := gorgonia.NewMatrix(g,
		tensor.Float64,
		gorgonia.WithShape(1, Classes),
		gorgonia.WithName("b"),
		gorgonia.WithValue(tensor.New(tensor.WithShape(1, Classes), tensor.WithBacking(clone(s.model.Bias)))))

	logits, err := gorgonia.Mul(x, w)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	if logits, err = gorgonia.Add(logits, b); err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		return nil, fmt.Errorf("forward pass: %w", err)
	}

	out, ok := logits.Value().Data().([]float64)
	if !ok {
		return nil, errors.New("unexpected output type")
	}
	return clone(out), nil
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
