package render_surface

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Viewport is the fraction of the window a surface occupies, with X and Y
// the lower-left corner and all components in [0, 1].
type Viewport struct {
	X, Y, Width, Height float32
}

// FullViewport covers the whole window.
var FullViewport = Viewport{X: 0, Y: 0, Width: 1, Height: 1}

// Device owns the GPU resources shared by every surface drawn into one
// window: the wgpu instance, adapter, device, queue, swapchain surface, and
// the line and face render pipelines. Surfaces created from the same device
// draw into disjoint viewports of the same swapchain frame.
type Device interface {
	// ConfigureSurface reconfigures the swapchain and depth texture for a
	// new window size. Must be called once before the first frame and again
	// on every resize.
	//
	// Parameters:
	//   - width: the new width of the window in pixels
	//   - height: the new height of the window in pixels
	ConfigureSurface(width, height int)

	// NewSurface creates a render surface that draws into the given
	// viewport of this device's window.
	//
	// Parameters:
	//   - viewport: the window fraction the surface occupies
	//
	// Returns:
	//   - RenderSurface: the new surface
	NewSurface(viewport Viewport) RenderSurface

	// EndFrame ends the render pass opened by the first surface render of
	// the frame and submits the command buffer to the GPU. A no-op when no
	// surface rendered this frame.
	EndFrame()

	// Present presents the swapchain texture to the display and releases
	// it. Must be called after EndFrame.
	Present()

	// Release frees the device's GPU resources.
	Release()
}

type deviceImpl struct {
	mu       *sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat    *wgpu.TextureFormat
	depthTextureView *wgpu.TextureView
	width, height    int

	linePipeline   *wgpu.RenderPipeline
	facePipeline   *wgpu.RenderPipeline
	cameraLayout   *wgpu.BindGroupLayout
	materialLayout *wgpu.BindGroupLayout

	// Frame state shared by every surface viewport until EndFrame.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ Device = &deviceImpl{}

// NewDevice creates the shared GPU device for one window.
//
// Parameters:
//   - surfaceDescriptor: the native surface descriptor obtained from the window
//   - width: the initial window width in pixels
//   - height: the initial window height in pixels
//   - forceFallbackAdapter: true to force a software adapter
//
// Returns:
//   - Device: the new device
//   - error: error if no adapter or device is available
func NewDevice(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, forceFallbackAdapter bool) (Device, error) {
	runtime.LockOSThread()
	d := &deviceImpl{
		mu:       &sync.Mutex{},
		instance: wgpu.CreateInstance(nil),
	}
	d.surface = d.instance.CreateSurface(surfaceDescriptor)

	a, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    d.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	d.adapter = a

	dev, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	d.device = dev
	d.queue = dev.GetQueue()

	d.ConfigureSurface(width, height)
	if err := d.createPipelines(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *deviceImpl) ConfigureSurface(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	capabilities := d.surface.GetCapabilities(d.adapter)
	d.surfaceFormat = &capabilities.Formats[0]

	d.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *d.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	depthTexture, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	d.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	d.width = width
	d.height = height
}

// createPipelines builds the two render pipelines every surface shares: one
// for line-list topology and one for triangle-list topology. Both take a
// position-only vertex buffer, a camera uniform at group 0, and a material
// color uniform at group 1, with standard alpha blending.
func (d *deviceImpl) createPipelines() error {
	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Flat Color Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: flatColorWGSL,
		},
	})
	if err != nil {
		return err
	}

	d.cameraLayout, err = d.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 64,
				},
			},
		},
	})
	if err != nil {
		return err
	}

	d.materialLayout, err = d.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Material Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 16,
				},
			},
		},
	})
	if err != nil {
		return err
	}

	pipelineLayout, err := d.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Flat Color Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{d.cameraLayout, d.materialLayout},
	})
	if err != nil {
		return err
	}

	build := func(label string, topology wgpu.PrimitiveTopology) (*wgpu.RenderPipeline, error) {
		return d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  label,
			Layout: pipelineLayout,
			Vertex: wgpu.VertexState{
				Module:     module,
				EntryPoint: "vs_main",
				Buffers: []wgpu.VertexBufferLayout{
					{
						ArrayStride: 12,
						StepMode:    wgpu.VertexStepModeVertex,
						Attributes: []wgpu.VertexAttribute{
							{
								Format:         wgpu.VertexFormatFloat32x3,
								Offset:         0,
								ShaderLocation: 0,
							},
						},
					},
				},
			},
			Fragment: &wgpu.FragmentState{
				Module:     module,
				EntryPoint: "fs_main",
				Targets: []wgpu.ColorTargetState{
					{
						Format: *d.surfaceFormat,
						Blend: &wgpu.BlendState{
							Color: wgpu.BlendComponent{
								Operation: wgpu.BlendOperationAdd,
								SrcFactor: wgpu.BlendFactorSrcAlpha,
								DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							},
							Alpha: wgpu.BlendComponent{
								Operation: wgpu.BlendOperationAdd,
								SrcFactor: wgpu.BlendFactorOne,
								DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							},
						},
						WriteMask: wgpu.ColorWriteMaskAll,
					},
				},
			},
			Primitive: wgpu.PrimitiveState{
				Topology:  topology,
				FrontFace: wgpu.FrontFaceCCW,
				CullMode:  wgpu.CullModeNone,
			},
			Multisample: wgpu.MultisampleState{
				Count: 1,
				Mask:  0xFFFFFFFF,
			},
			DepthStencil: &wgpu.DepthStencilState{
				Format:            wgpu.TextureFormatDepth24Plus,
				DepthWriteEnabled: true,
				DepthCompare:      wgpu.CompareFunctionLess,
				StencilFront: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
				StencilBack: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
			},
		})
	}

	if d.linePipeline, err = build("Line Pipeline", wgpu.PrimitiveTopologyLineList); err != nil {
		return err
	}
	if d.facePipeline, err = build("Face Pipeline", wgpu.PrimitiveTopologyTriangleList); err != nil {
		return err
	}
	return nil
}

func (d *deviceImpl) NewSurface(viewport Viewport) RenderSurface {
	return newWGPUSurface(d, viewport)
}

// ensureFrame acquires the swapchain texture, creates the command encoder,
// and begins the shared render pass if the first surface render of the frame
// has not done so already. The whole window is cleared to white; surfaces
// paint their own backgrounds over their viewports.
func (d *deviceImpl) ensureFrame() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.framePass != nil {
		return nil
	}
	if d.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := d.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: 1.0, G: 1.0, B: 1.0, A: 1.0,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            d.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})

	d.frameEncoder = encoder
	d.framePass = pass
	d.frameSurface = surfaceTexture
	d.frameView = view

	return nil
}

func (d *deviceImpl) EndFrame() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.framePass == nil {
		return
	}

	d.framePass.End()

	commandBuffer, err := d.frameEncoder.Finish(nil)
	if err != nil {
		d.frameEncoder.Release()
		d.frameEncoder = nil
		d.framePass = nil
		return
	}

	d.queue.Submit(commandBuffer)

	commandBuffer.Release()
	d.frameEncoder.Release()
	d.frameEncoder = nil
	d.framePass = nil
}

func (d *deviceImpl) Present() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frameSurface == nil {
		return
	}

	d.surface.Present()
	d.frameView.Release()
	d.frameSurface.Release()
	d.frameView = nil
	d.frameSurface = nil
}

func (d *deviceImpl) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}
