//go:build !opencl

package field

import "errors"

// OpenCLEvaluator is unavailable in builds without the opencl tag.
type OpenCLEvaluator struct{}

// NewOpenCLEvaluator always fails; rebuild with -tags opencl.
func NewOpenCLEvaluator(int) (*OpenCLEvaluator, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (e *OpenCLEvaluator) Evaluate([]Point, []Vector, float64, float64, float64) error {
	return errors.New("OpenCL evaluator unavailable")
}

func (e *OpenCLEvaluator) Close() {}

func (e *OpenCLEvaluator) DeviceName() string { return "" }
