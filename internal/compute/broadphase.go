// GPU broad phase: every collider reduced to a bounding sphere, one WGSL
// kernel reporting the overlapping index pairs.
package compute

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// BoundingSphere is one collider for the scan. Layout matches the WGSL
// Sphere struct: vec3 center then radius, 16 bytes.
type BoundingSphere struct {
	X, Y, Z float32
	Radius  float32
}

const scanShader = `
// Each thread owns one sphere and tests it against every higher index,
// so each unordered pair is visited exactly once.

struct Sphere {
    center: vec3<f32>,
    radius: f32,
}

@group(0) @binding(0) var<storage, read> spheres: array<Sphere>;
@group(0) @binding(1) var<storage, read_write> pairs: array<vec2<u32>>;
@group(0) @binding(2) var<storage, read_write> pairCount: atomic<u32>;
@group(0) @binding(3) var<uniform> sphereCount: u32;

@compute @workgroup_size(256)
fn scan(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = gid.x;
    if (i >= sphereCount) {
        return;
    }
    let a = spheres[i];
    for (var j = i + 1u; j < sphereCount; j = j + 1u) {
        let b = spheres[j];
        let d = a.center - b.center;
        let reach = a.radius + b.radius;
        if (dot(d, d) < reach * reach) {
            let slot = atomicAdd(&pairCount, 1u);
            if (slot < arrayLength(&pairs)) {
                pairs[slot] = vec2<u32>(i, j);
            }
        }
    }
}
`

// BroadPhase owns the scan pipeline and its buffers. Everything is created
// once; per scan only the sphere upload, a dispatch, and the readback move.
type BroadPhase struct {
	system    *System
	pipeline  *wgpu.ComputePipeline
	bindGroup *wgpu.BindGroup

	sphereBuffer *Buffer
	pairBuffer   *Buffer
	countBuffer  *Buffer
	paramBuffer  *Buffer

	maxSpheres uint32
	maxPairs   uint32
}

// NewBroadPhase allocates the scan for up to maxSpheres colliders and
// maxPairs overlaps per scan. Initialize must have succeeded first.
func NewBroadPhase(maxSpheres, maxPairs uint32) (*BroadPhase, error) {
	sys := Get()
	if sys == nil {
		return nil, fmt.Errorf("compute: not initialized")
	}

	sphereBuffer, err := sys.CreateBuffer("scan_spheres", uint64(maxSpheres)*16,
		wgpu.BufferUsageStorage|wgpu.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	pairBuffer, err := sys.CreateBuffer("scan_pairs", uint64(maxPairs)*8,
		wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	if err != nil {
		sphereBuffer.Release()
		return nil, err
	}
	countBuffer, err := sys.CreateBuffer("scan_count", 4,
		wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	if err != nil {
		sphereBuffer.Release()
		pairBuffer.Release()
		return nil, err
	}
	paramBuffer, err := sys.CreateBuffer("scan_params", 4,
		wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if err != nil {
		sphereBuffer.Release()
		pairBuffer.Release()
		countBuffer.Release()
		return nil, err
	}

	bp := &BroadPhase{
		system:       sys,
		sphereBuffer: sphereBuffer,
		pairBuffer:   pairBuffer,
		countBuffer:  countBuffer,
		paramBuffer:  paramBuffer,
		maxSpheres:   maxSpheres,
		maxPairs:     maxPairs,
	}
	if err := bp.buildPipeline(); err != nil {
		bp.Release()
		return nil, err
	}
	return bp, nil
}

func (bp *BroadPhase) buildPipeline() error {
	device := bp.system.device

	layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "scan_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageCompute,
				Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage}},
			{Binding: 1, Visibility: wgpu.ShaderStageCompute,
				Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeStorage}},
			{Binding: 2, Visibility: wgpu.ShaderStageCompute,
				Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeStorage}},
			{Binding: 3, Visibility: wgpu.ShaderStageCompute,
				Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return fmt.Errorf("compute: create bind group layout: %w", err)
	}
	defer layout.Release()

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "scan_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("compute: create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "scan_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: scanShader},
	})
	if err != nil {
		return fmt.Errorf("compute: create shader module: %w", err)
	}
	defer shader.Release()

	bp.pipeline, err = device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  "scan_pipeline",
		Layout: pipelineLayout,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     shader,
			EntryPoint: "scan",
		},
	})
	if err != nil {
		return fmt.Errorf("compute: create compute pipeline: %w", err)
	}

	bp.bindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "scan_bind_group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: bp.sphereBuffer.buffer, Size: bp.sphereBuffer.size},
			{Binding: 1, Buffer: bp.pairBuffer.buffer, Size: bp.pairBuffer.size},
			{Binding: 2, Buffer: bp.countBuffer.buffer, Size: bp.countBuffer.size},
			{Binding: 3, Buffer: bp.paramBuffer.buffer, Size: bp.paramBuffer.size},
		},
	})
	if err != nil {
		return fmt.Errorf("compute: create bind group: %w", err)
	}
	return nil
}

// ScanPairs uploads the spheres, runs the kernel, and returns the
// overlapping index pairs. Indices refer to the input slice order.
func (bp *BroadPhase) ScanPairs(spheres []BoundingSphere) ([][2]int32, error) {
	if len(spheres) == 0 {
		return nil, nil
	}
	if uint32(len(spheres)) > bp.maxSpheres {
		return nil, fmt.Errorf("compute: %d spheres exceed scan capacity %d", len(spheres), bp.maxSpheres)
	}

	count := uint32(len(spheres))
	bp.system.WriteBuffer(bp.sphereBuffer, 0, ToBytes(spheres))
	bp.system.WriteBuffer(bp.countBuffer, 0, ToBytes([]uint32{0}))
	bp.system.WriteBuffer(bp.paramBuffer, 0, ToBytes([]uint32{count}))

	device := bp.system.device
	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("compute: create command encoder: %w", err)
	}
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(bp.pipeline)
	pass.SetBindGroup(0, bp.bindGroup, nil)
	pass.DispatchWorkgroups((count+255)/256, 1, 1)
	pass.End()
	pass.Release()

	commands, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("compute: finish encoder: %w", err)
	}
	bp.system.queue.Submit(commands)
	commands.Release()

	countData, err := bp.system.ReadBuffer(bp.countBuffer, 4)
	if err != nil {
		return nil, err
	}
	found := FromBytes[uint32](countData)[0]
	if found == 0 {
		return [][2]int32{}, nil
	}
	// The kernel drops writes past the buffer end, so clamp the count to
	// what was actually stored.
	if found > bp.maxPairs {
		found = bp.maxPairs
	}

	pairData, err := bp.system.ReadBuffer(bp.pairBuffer, uint64(found)*8)
	if err != nil {
		return nil, err
	}
	raw := FromBytes[[2]int32](pairData)
	pairs := make([][2]int32, found)
	copy(pairs, raw)
	return pairs, nil
}

// Release frees the pipeline and buffers.
func (bp *BroadPhase) Release() {
	if bp.bindGroup != nil {
		bp.bindGroup.Release()
	}
	if bp.pipeline != nil {
		bp.pipeline.Release()
	}
	for _, b := range []*Buffer{bp.sphereBuffer, bp.pairBuffer, bp.countBuffer, bp.paramBuffer} {
		if b != nil {
			b.Release()
		}
	}
}
