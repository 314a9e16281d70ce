//go:build opencl

package field

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

const fieldKernelSource = `__kernel void dipole_field(
    const int count,
    const float time,
    const float frequency,
    const float amplitude,
    __global const float* points,
    __global float* vectors)
{
    int i = get_global_id(0);
    if (i >= count) {
        return;
    }
    float x = points[i*3];
    float y = points[i*3+1];
    float z = points[i*3+2];
    float d = sqrt(x*x + y*y + z*z);
    float phase = 6.28318530718f * (frequency * time - d);
    float mag = amplitude / fmax(0.5f, d);
    float s = sin(phase);
    float c = cos(phase);
    vectors[i*3] = x * mag * s;
    vectors[i*3+1] = y * mag * s;
    vectors[i*3+2] = z * mag * c;
}`

// OpenCLEvaluator computes the field on an OpenCL device. The lattice is
// uploaded once; every Evaluate only transfers the resulting vectors back.
type OpenCLEvaluator struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	pointBuf   *cl.MemObject
	vectorBuf  *cl.MemObject
	count      int
	uploaded   bool
	hostPoints []float32
	hostVecs   []float32
	deviceName string
}

// NewOpenCLEvaluator prepares a kernel for a lattice of count points,
// preferring a GPU device and falling back to a CPU device.
func NewOpenCLEvaluator(count int) (*OpenCLEvaluator, error) {
	if count <= 0 {
		return nil, errors.New("lattice is empty")
	}
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	e := &OpenCLEvaluator{
		count:      count,
		hostPoints: make([]float32, count*3),
		hostVecs:   make([]float32, count*3),
		deviceName: device.Name(),
	}
	if e.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if e.queue, err = e.context.CreateCommandQueue(device, 0); err != nil {
		e.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if e.program, err = e.context.CreateProgramWithSource([]string{fieldKernelSource}); err != nil {
		e.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := e.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		e.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if e.kernel, err = e.program.CreateKernel("dipole_field"); err != nil {
		e.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	byteSize := count * 3 * int(unsafe.Sizeof(float32(0)))
	if e.pointBuf, err = e.context.CreateEmptyBuffer(cl.MemReadOnly, byteSize); err != nil {
		e.Close()
		return nil, fmt.Errorf("allocating point buffer: %w", err)
	}
	if e.vectorBuf, err = e.context.CreateEmptyBuffer(cl.MemWriteOnly, byteSize); err != nil {
		e.Close()
		return nil, fmt.Errorf("allocating vector buffer: %w", err)
	}
	return e, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// Evaluate implements Evaluator.
func (e *OpenCLEvaluator) Evaluate(points []Point, vectors []Vector, time, frequency, amplitude float64) error {
	if len(points) != e.count || len(vectors) != e.count {
		return fmt.Errorf("lattice size %d does not match evaluator size %d", len(points), e.count)
	}
	if !e.uploaded {
		for i, p := range points {
			e.hostPoints[i*3] = float32(p.X)
			e.hostPoints[i*3+1] = float32(p.Y)
			e.hostPoints[i*3+2] = float32(p.Z)
		}
		if _, err := e.queue.EnqueueWriteBufferFloat32(e.pointBuf, true, 0, e.hostPoints, nil); err != nil {
			return fmt.Errorf("writing point buffer: %w", err)
		}
		e.uploaded = true
	}
	if err := e.kernel.SetArgs(
		int32(e.count),
		float32(time),
		float32(frequency),
		float32(amplitude),
		e.pointBuf,
		e.vectorBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := e.queue.EnqueueNDRangeKernel(e.kernel, nil, []int{e.count}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := e.queue.EnqueueReadBufferFloat32(e.vectorBuf, true, 0, e.hostVecs, nil); err != nil {
		return fmt.Errorf("reading vector buffer: %w", err)
	}
	for i := range vectors {
		vectors[i] = Vector{
			X: float64(e.hostVecs[i*3]),
			Y: float64(e.hostVecs[i*3+1]),
			Z: float64(e.hostVecs[i*3+2]),
		}
	}
	return nil
}

// Close releases every OpenCL object held by the evaluator.
func (e *OpenCLEvaluator) Close() {
	if e.vectorBuf != nil {
		e.vectorBuf.Release()
		e.vectorBuf = nil
	}
	if e.pointBuf != nil {
		e.pointBuf.Release()
		e.pointBuf = nil
	}
	if e.kernel != nil {
		e.kernel.Release()
		e.kernel = nil
	}
	if e.program != nil {
		e.program.Release()
		e.program = nil
	}
	if e.queue != nil {
		e.queue.Release()
		e.queue = nil
	}
	if e.context != nil {
		e.context.Release()
		e.context = nil
	}
}

// DeviceName reports the OpenCL device in use.
func (e *OpenCLEvaluator) DeviceName() string {
	return e.deviceName
}
