package render_surface

import (
	"log/slog"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/common"
	"github.com/swarmvista/vista/engine/mesh"
)

// openGLToWGPUClip remaps OpenGL clip-space depth [-1, 1] to the [0, 1]
// range WebGPU expects. Applied on the left of every projection matrix.
var openGLToWGPUClip = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type wgpuSurface struct {
	mu     *sync.Mutex
	device *deviceImpl

	viewport   Viewport
	background Color

	preset       CameraPreset
	boundsCenter mgl32.Vec3
	boundsRadius float32
	cameraDirty  bool

	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup

	// Fixed identity camera for the backdrop quad, which is authored
	// directly in clip space.
	identityBuffer    *wgpu.Buffer
	identityBindGroup *wgpu.BindGroup

	backdrop *wgpuActor

	actors []*wgpuActor
}

var _ RenderSurface = &wgpuSurface{}

func newWGPUSurface(d *deviceImpl, viewport Viewport) *wgpuSurface {
	s := &wgpuSurface{
		mu:           &sync.Mutex{},
		device:       d,
		viewport:     viewport,
		background:   White,
		preset:       PresetIso,
		boundsRadius: 1,
		cameraDirty:  true,
	}

	s.cameraBuffer, s.cameraBindGroup = d.newCameraBinding("Camera")
	s.identityBuffer, s.identityBindGroup = d.newCameraBinding("Identity Camera")

	identity := mgl32.Ident4()
	d.queue.WriteBuffer(s.identityBuffer, 0, common.SliceToBytes(identity[:]))

	s.backdrop = newBackdropActor(d, s.background)

	return s
}

// newCameraBinding creates a 4x4 matrix uniform buffer and its bind group
// against the shared camera layout.
func (d *deviceImpl) newCameraBinding(label string) (*wgpu.Buffer, *wgpu.BindGroup) {
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Buffer",
		Size:  64,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	group, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: d.cameraLayout,
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
	return buf, group
}

func (s *wgpuSurface) UploadMesh(m *mesh.Mesh) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.actors {
		if a.mesh == m {
			a.MarkDirty()
		}
	}
	return nil
}

func (s *wgpuSurface) CreateActor(m *mesh.Mesh, style Style) (Actor, error) {
	a := newWGPUActor(s.device, m, style)
	if err := a.upload(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actors = append(s.actors, a)
	s.cameraDirty = true
	return a, nil
}

func (s *wgpuSurface) RemoveActor(actor Actor) {
	a, ok := actor.(*wgpuActor)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, held := range s.actors {
		if held == a {
			s.actors = append(s.actors[:i], s.actors[i+1:]...)
			a.release()
			s.cameraDirty = true
			return
		}
	}
}

func (s *wgpuSurface) SetCameraPreset(preset CameraPreset) error {
	switch preset {
	case PresetTopDown, PresetIso:
	default:
		return &UnknownPresetError{Preset: preset}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preset = preset
	s.cameraDirty = true
	return nil
}

func (s *wgpuSurface) SetBackground(c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
	s.backdrop.SetColor(c)
}

func (s *wgpuSurface) RecomputeDisplayedBounds() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refitBoundsLocked()
}

// refitBoundsLocked recomputes the bounding sphere of every visible actor's
// geometry; the camera framing is derived from it on the next render.
func (s *wgpuSurface) refitBoundsLocked() {
	var (
		initialized bool
		lo, hi      mgl32.Vec3
	)
	for _, a := range s.actors {
		if !a.Visible() || a.mesh.IsEmpty() {
			continue
		}
		alo, ahi := a.mesh.Bounds()
		if !initialized {
			lo, hi = alo, ahi
			initialized = true
			continue
		}
		for i := 0; i < 3; i++ {
			if alo[i] < lo[i] {
				lo[i] = alo[i]
			}
			if ahi[i] > hi[i] {
				hi[i] = ahi[i]
			}
		}
	}
	if !initialized {
		s.boundsCenter = mgl32.Vec3{}
		s.boundsRadius = 1
	} else {
		s.boundsCenter = lo.Add(hi).Mul(0.5)
		s.boundsRadius = hi.Sub(lo).Len() * 0.5
		if s.boundsRadius < 1e-3 {
			s.boundsRadius = 1
		}
	}
	s.cameraDirty = true
}

// viewProjection builds the camera matrix for the current preset, fit to the
// displayed bounds, in WebGPU clip space.
func (s *wgpuSurface) viewProjection(aspect float32) mgl32.Mat4 {
	const margin = 1.15
	r := s.boundsRadius * margin
	center := s.boundsCenter

	switch s.preset {
	case PresetTopDown:
		// Parallel projection straight down the Z axis.
		dist := 10 * r
		view := mgl32.LookAtV(center.Add(mgl32.Vec3{0, 0, dist}), center, mgl32.Vec3{0, 1, 0})
		rx, ry := r, r
		if aspect > 1 {
			rx = r * aspect
		} else if aspect > 0 {
			ry = r / aspect
		}
		proj := mgl32.Ortho(-rx, rx, -ry, ry, 0.1*dist, 2*dist)
		return openGLToWGPUClip.Mul4(proj).Mul4(view)
	default:
		// Perspective view from the -Y side, elevated, looking at the
		// bounds center with Z up.
		dir := mgl32.Vec3{1, -1, 1}.Normalize()
		dist := 3.5 * r
		eye := center.Add(dir.Mul(dist))
		view := mgl32.LookAtV(eye, center, mgl32.Vec3{0, 0, 1})
		if aspect <= 0 {
			aspect = 1
		}
		proj := mgl32.Perspective(mgl32.DegToRad(35), aspect, 0.01*dist, 100*dist)
		return openGLToWGPUClip.Mul4(proj).Mul4(view)
	}
}

func (s *wgpuSurface) Render() {
	if err := s.device.ensureFrame(); err != nil {
		slog.Warn("skipping frame", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.device
	d.mu.Lock()
	defer d.mu.Unlock()

	px := s.viewport.X * float32(d.width)
	py := (1 - s.viewport.Y - s.viewport.Height) * float32(d.height)
	pw := s.viewport.Width * float32(d.width)
	ph := s.viewport.Height * float32(d.height)
	if pw < 1 || ph < 1 {
		return
	}

	if s.cameraDirty {
		vp := s.viewProjection(pw / ph)
		d.queue.WriteBuffer(s.cameraBuffer, 0, common.SliceToBytes(vp[:]))
		s.cameraDirty = false
	}

	pass := d.framePass
	pass.SetViewport(px, py, pw, ph, 0, 1)
	pass.SetScissorRect(uint32(px), uint32(py), uint32(pw), uint32(ph))

	// Backdrop first: a clip-space quad at far depth carrying the surface
	// background color.
	s.backdrop.flush(d)
	pass.SetPipeline(d.facePipeline)
	pass.SetBindGroup(0, s.identityBindGroup, nil)
	pass.SetBindGroup(1, s.backdrop.materialBindGroup, nil)
	pass.SetVertexBuffer(0, s.backdrop.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(s.backdrop.faceBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(s.backdrop.faceIndexCount), 1, 0, 0, 0)

	pass.SetBindGroup(0, s.cameraBindGroup, nil)
	for _, a := range s.actors {
		if !a.Visible() {
			continue
		}
		a.flush(d)
		if a.vertexBuffer == nil {
			continue
		}
		pass.SetBindGroup(1, a.materialBindGroup, nil)
		pass.SetVertexBuffer(0, a.vertexBuffer, 0, wgpu.WholeSize)
		if a.faceIndexCount > 0 {
			pass.SetPipeline(d.facePipeline)
			pass.SetIndexBuffer(a.faceBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(uint32(a.faceIndexCount), 1, 0, 0, 0)
		}
		if a.lineIndexCount > 0 {
			pass.SetPipeline(d.linePipeline)
			pass.SetIndexBuffer(a.lineBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(uint32(a.lineIndexCount), 1, 0, 0, 0)
		}
	}
}
