package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/zoo/internal/tensor"
)

// LayerSummary describes one module visited by Summarize.
type LayerSummary struct {
	Path       string       // Index path from the root, e.g. "3.1".
	Depth      int          // Nesting depth, 0 for direct children of the root.
	Layer      string       // Module description.
	Output     tensor.Shape // Inferred output shape.
	Parameters int          // Trainable scalars, including children.
}

// Summarize infers output shapes and parameter counts for every module in m,
// descending into Sequential containers. Parallel containers are reported as
// a single row followed by their branches. Nothing is allocated.
func Summarize[B tensor.Backend](m Module[B], input tensor.Shape) ([]LayerSummary, error) {
	var rows []LayerSummary
	_, err := summarize(m, input, "", 0, &rows)
	return rows, err
}

func summarize[B tensor.Backend](m Module[B], input tensor.Shape, path string, depth int, rows *[]LayerSummary) (tensor.Shape, error) {
	switch c := m.(type) {
	case *Sequential[B]:
		shape := input
		for i, child := range c.Children() {
			out, err := summarize(child, shape, join(path, i), depth, rows)
			if err != nil {
				return nil, err
			}
			shape = out
		}
		return shape, nil

	case *Parallel[B]:
		out, err := c.OutputShape(input)
		if err != nil {
			return nil, wrapPath(err, path)
		}
		n, err := c.NumParameters(input)
		if err != nil {
			return nil, wrapPath(err, path)
		}
		*rows = append(*rows, LayerSummary{Path: path, Depth: depth, Layer: c.String(), Output: out, Parameters: n})
		for i, branch := range c.Children() {
			if _, err := summarize(branch, input, join(path, i), depth+1, rows); err != nil {
				return nil, err
			}
		}
		return out, nil

	default:
		out, err := m.OutputShape(input)
		if err != nil {
			return nil, wrapPath(err, path)
		}
		n, err := m.NumParameters(input)
		if err != nil {
			return nil, wrapPath(err, path)
		}
		*rows = append(*rows, LayerSummary{Path: path, Depth: depth, Layer: m.String(), Output: out, Parameters: n})
		return out, nil
	}
}

func wrapPath(err error, path string) error {
	if path == "" {
		return err
	}
	return errors.Wrap(err, path)
}

func join(path string, i int) string {
	if path == "" {
		return fmt.Sprint(i)
	}
	return fmt.Sprintf("%s.%d", path, i)
}
