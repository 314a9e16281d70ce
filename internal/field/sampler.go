package field

import (
	"runtime"
	"sync"
)

// minPointsPerWorker keeps tiny lattices on the calling goroutine.
const minPointsPerWorker = 256

// Evaluator fills vectors with the field at points for one instant.
// len(vectors) must equal len(points).
type Evaluator interface {
	Evaluate(points []Point, vectors []Vector, time, frequency, amplitude float64) error
}

// CPUEvaluator evaluates the field on the host, splitting the lattice into
// contiguous ranges across Workers goroutines.
type CPUEvaluator struct {
	Workers int
}

// NewCPUEvaluator returns an evaluator using one worker per CPU.
func NewCPUEvaluator() *CPUEvaluator {
	return &CPUEvaluator{Workers: runtime.NumCPU()}
}

// Evaluate implements Evaluator.
func (e *CPUEvaluator) Evaluate(points []Point, vectors []Vector, time, frequency, amplitude float64) error {
	n := len(points)
	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	if limit := n / minPointsPerWorker; workers > limit {
		workers = limit
	}
	if workers <= 1 {
		evaluateRange(points, vectors, 0, n, time, frequency, amplitude)
		return nil
	}
	per := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * per
		if start >= n {
			break
		}
		end := start + per
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			evaluateRange(points, vectors, lo, hi, time, frequency, amplitude)
		}(start, end)
	}
	wg.Wait()
	return nil
}

func evaluateRange(points []Point, vectors []Vector, lo, hi int, time, frequency, amplitude float64) {
	for i := lo; i < hi; i++ {
		vectors[i] = ComputeFieldAt(points[i], time, frequency, amplitude)
	}
}

// Sampler owns a lattice and the field vectors computed over it. Vectors are
// overwritten in place on every Update; no history is kept.
type Sampler struct {
	points    []Point
	vectors   []Vector
	evaluator Evaluator
	fallback  *CPUEvaluator
}

// NewSampler creates a sampler over points. A nil evaluator selects the CPU
// implementation.
func NewSampler(points []Point, evaluator Evaluator) *Sampler {
	cpu := NewCPUEvaluator()
	if evaluator == nil {
		evaluator = cpu
	}
	return &Sampler{
		points:    points,
		vectors:   make([]Vector, len(points)),
		evaluator: evaluator,
		fallback:  cpu,
	}
}

// Update recomputes every vector for the given instant. If the configured
// evaluator fails the CPU path fills the vectors instead and the error is
// returned so the caller can report it.
func (s *Sampler) Update(time, frequency, amplitude float64) error {
	if err := s.evaluator.Evaluate(s.points, s.vectors, time, frequency, amplitude); err != nil {
		_ = s.fallback.Evaluate(s.points, s.vectors, time, frequency, amplitude)
		return err
	}
	return nil
}

// Points returns the lattice. Callers must not modify it.
func (s *Sampler) Points() []Point { return s.points }

// Vectors returns the current field vectors. The slice is reused by the
// next Update.
func (s *Sampler) Vectors() []Vector { return s.vectors }

// Len reports the lattice size.
func (s *Sampler) Len() int { return len(s.points) }
