package render_surface

// flatColorWGSL is the single shader both pipelines use: positions are
// transformed by the per-surface camera and every fragment gets the
// per-actor material color.
const flatColorWGSL = `
struct Camera {
    view_proj : mat4x4<f32>,
};

struct Material {
    color : vec4<f32>,
};

@group(0) @binding(0) var<uniform> camera : Camera;
@group(1) @binding(0) var<uniform> material : Material;

@vertex
fn vs_main(@location(0) position : vec3<f32>) -> @builtin(position) vec4<f32> {
    return camera.view_proj * vec4<f32>(position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return material.color;
}
`
