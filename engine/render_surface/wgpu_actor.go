package render_surface

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/common"
	"github.com/swarmvista/vista/engine/mesh"
)

type wgpuActor struct {
	mu     *sync.Mutex
	device *deviceImpl
	mesh   *mesh.Mesh

	vertexBuffer *wgpu.Buffer
	lineBuffer   *wgpu.Buffer
	faceBuffer   *wgpu.Buffer

	// Allocated byte capacities, so growing geometry only recreates
	// buffers when it outgrows them.
	vertexCap, lineCap, faceCap uint64

	lineIndexCount int
	faceIndexCount int

	materialBuffer    *wgpu.Buffer
	materialBindGroup *wgpu.BindGroup

	color         Color
	opacity       float32
	lineWidth     float32
	visible       bool
	dirty         bool
	materialDirty bool
}

var _ Actor = &wgpuActor{}

func newWGPUActor(d *deviceImpl, m *mesh.Mesh, style Style) *wgpuActor {
	a := &wgpuActor{
		mu:            &sync.Mutex{},
		device:        d,
		mesh:          m,
		color:         style.Color,
		opacity:       style.Opacity,
		lineWidth:     style.LineWidth,
		visible:       style.Visible,
		dirty:         true,
		materialDirty: true,
	}
	a.initMaterial()
	return a
}

// newBackdropActor builds the full-viewport quad a surface paints its
// background with. The quad is authored directly in clip space at far depth
// so every scene actor draws in front of it.
func newBackdropActor(d *deviceImpl, c Color) *wgpuActor {
	const z = 0.9999
	quad := &mesh.Mesh{
		Points: []mgl32.Vec3{
			{-1, -1, z},
			{1, -1, z},
			{1, 1, z},
			{-1, 1, z},
		},
		Faces: []uint32{0, 1, 2, 0, 2, 3},
	}
	a := newWGPUActor(d, quad, DefaultStyle().WithColor(c))
	if err := a.upload(); err != nil {
		panic(err)
	}
	return a
}

func (a *wgpuActor) initMaterial() {
	d := a.device
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Material Buffer",
		Size:  16,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	group, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Material Bind Group",
		Layout: d.materialLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		panic(err)
	}
	a.materialBuffer = buf
	a.materialBindGroup = group
}

// upload pushes the mesh's current points and topology to the GPU,
// recreating any buffer the geometry has outgrown.
func (a *wgpuActor) upload() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.uploadLocked()
}

func (a *wgpuActor) uploadLocked() error {
	d := a.device

	vertexData := common.SliceToBytes(a.mesh.Points)
	if len(vertexData) > 0 {
		if uint64(len(vertexData)) > a.vertexCap {
			if a.vertexBuffer != nil {
				a.vertexBuffer.Release()
			}
			buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: "Vertex Buffer",
				Size:  uint64(len(vertexData)),
				Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return err
			}
			a.vertexBuffer = buf
			a.vertexCap = uint64(len(vertexData))
		}
		d.queue.WriteBuffer(a.vertexBuffer, 0, vertexData)
	}

	lineData := common.SliceToBytes(a.mesh.Lines)
	if len(lineData) > 0 {
		if uint64(len(lineData)) > a.lineCap {
			if a.lineBuffer != nil {
				a.lineBuffer.Release()
			}
			buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: "Line Index Buffer",
				Size:  uint64(len(lineData)),
				Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return err
			}
			a.lineBuffer = buf
			a.lineCap = uint64(len(lineData))
		}
		d.queue.WriteBuffer(a.lineBuffer, 0, lineData)
	}
	a.lineIndexCount = len(a.mesh.Lines)

	faceData := common.SliceToBytes(a.mesh.Faces)
	if len(faceData) > 0 {
		if uint64(len(faceData)) > a.faceCap {
			if a.faceBuffer != nil {
				a.faceBuffer.Release()
			}
			buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: "Face Index Buffer",
				Size:  uint64(len(faceData)),
				Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return err
			}
			a.faceBuffer = buf
			a.faceCap = uint64(len(faceData))
		}
		d.queue.WriteBuffer(a.faceBuffer, 0, faceData)
	}
	a.faceIndexCount = len(a.mesh.Faces)

	a.dirty = false
	return nil
}

// flush re-uploads stale geometry and material state ahead of a draw. The
// caller holds the device lock, so buffer writes land on the queue before
// the frame's command buffer is submitted.
func (a *wgpuActor) flush(d *deviceImpl) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dirty {
		_ = a.uploadLocked()
	}
	if a.materialDirty {
		rgba := [4]float32{
			a.color[0],
			a.color[1],
			a.color[2],
			a.color[3] * a.opacity,
		}
		d.queue.WriteBuffer(a.materialBuffer, 0, common.StructToBytes(&rgba))
		a.materialDirty = false
	}
}

func (a *wgpuActor) release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, buf := range []*wgpu.Buffer{a.vertexBuffer, a.lineBuffer, a.faceBuffer, a.materialBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	a.vertexBuffer, a.lineBuffer, a.faceBuffer, a.materialBuffer = nil, nil, nil, nil
	a.vertexCap, a.lineCap, a.faceCap = 0, 0, 0
	a.lineIndexCount, a.faceIndexCount = 0, 0
}

func (a *wgpuActor) Color() Color {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.color
}

func (a *wgpuActor) SetColor(c Color) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.color = c
	a.materialDirty = true
}

func (a *wgpuActor) Opacity() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.opacity
}

func (a *wgpuActor) SetOpacity(o float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.opacity = o
	a.materialDirty = true
}

func (a *wgpuActor) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

func (a *wgpuActor) SetVisible(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.visible = v
}

func (a *wgpuActor) SetLineWidth(w float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	// WebGPU line primitives are fixed width; recorded for parity with the
	// headless surface and future backends.
	a.lineWidth = w
}

func (a *wgpuActor) MarkDirty() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dirty = true
}
