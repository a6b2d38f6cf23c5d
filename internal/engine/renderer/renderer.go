// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/exhalegfx/escherball/internal/engine/lighting"
	"github.com/exhalegfx/escherball/internal/engine/mesh"
	"github.com/exhalegfx/escherball/internal/engine/shader"
	"github.com/exhalegfx/escherball/internal/logger"
	"github.com/exhalegfx/escherball/internal/stage/materials"
	"github.com/exhalegfx/escherball/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// gpuMesh is a mesh uploaded to the GPU.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Renderer draws the stage meshes with a Lambert + emissive shader fed by
// the point light buffer.
type Renderer struct {
	config Config
	log    *zap.Logger

	program uint32
	cube    gpuMesh
	sphere  gpuMesh

	// Uniform locations
	uModel, uView, uProj         int32
	uDiffuse, uEmissive          int32
	uFillDir, uFillColor         int32
	uKeyColor                    int32
	uPointPos, uPointColor       int32
	uPointRange, uPointIntensity int32
	uPointCount                  int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.04, 0.03, 0.05, 1.0) // Near-black gallery backdrop

	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program
	r.lookupUniforms()

	r.cube = uploadMesh(mesh.Cube())
	r.sphere = uploadMesh(mesh.UVSphere(24, 32))

	return r, nil
}

func (r *Renderer) lookupUniforms() {
	// The matrix uniforms feed gl_Position and can never be linked out.
	r.uModel = shader.MustGetUniform(r.program, "uModel")
	r.uView = shader.MustGetUniform(r.program, "uView")
	r.uProj = shader.MustGetUniform(r.program, "uProj")
	r.uDiffuse = shader.GetUniform(r.program, "uDiffuse")
	r.uEmissive = shader.GetUniform(r.program, "uEmissive")
	r.uFillDir = shader.GetUniform(r.program, "uFillDir")
	r.uFillColor = shader.GetUniform(r.program, "uFillColor")
	r.uKeyColor = shader.GetUniform(r.program, "uKeyColor")
	r.uPointPos = shader.GetUniform(r.program, "uPointPos")
	r.uPointColor = shader.GetUniform(r.program, "uPointColor")
	r.uPointRange = shader.GetUniform(r.program, "uPointRange")
	r.uPointIntensity = shader.GetUniform(r.program, "uPointIntensity")
	r.uPointCount = shader.GetUniform(r.program, "uPointCount")
}

// uploadMesh creates VAO/VBO/EBO for a mesh.
func uploadMesh(m *mesh.Mesh) gpuMesh {
	var g gpuMesh
	g.indexCount = int32(len(m.Indices))

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(mesh.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(3*4))

	gl.BindVertexArray(0)
	return g
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, g := range []gpuMesh{r.cube, r.sphere} {
		if g.vao != 0 {
			gl.DeleteVertexArrays(1, &g.vao)
			gl.DeleteBuffers(1, &g.vbo)
			gl.DeleteBuffers(1, &g.ebo)
		}
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// SetCamera uploads the view and projection matrices.
func (r *Renderer) SetCamera(view, proj math.Mat4) {
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.uProj, 1, false, proj.Ptr())
}

// SetLights uploads the light rig: the key light becomes the directional
// fill, the buffer fills the point light arrays.
func (r *Renderer) SetLights(buf *lighting.PointLightBuffer, key lighting.AreaLight) {
	gl.UseProgram(r.program)

	dir := lighting.Direction(key.Rotation.Y, 55)
	gl.Uniform3f(r.uFillDir, dir[0], dir[1], dir[2])
	gl.Uniform3f(r.uFillColor, 0.35, 0.35, 0.4)
	gl.Uniform3f(r.uKeyColor,
		key.Color[0]*key.Intensity*0.2,
		key.Color[1]*key.Intensity*0.2,
		key.Color[2]*key.Intensity*0.2,
	)

	positions := buf.GetPositions()
	colors := buf.GetColors()
	ranges := buf.GetRanges()
	intensities := buf.GetIntensities()
	gl.Uniform3fv(r.uPointPos, lighting.MaxPointLights, &positions[0])
	gl.Uniform3fv(r.uPointColor, lighting.MaxPointLights, &colors[0])
	gl.Uniform1fv(r.uPointRange, lighting.MaxPointLights, &ranges[0])
	gl.Uniform1fv(r.uPointIntensity, lighting.MaxPointLights, &intensities[0])
	gl.Uniform1i(r.uPointCount, int32(buf.Count))
}

// DrawCube draws the unit cube under the given model transform and surface.
func (r *Renderer) DrawCube(model math.Mat4, s materials.Surface) {
	r.draw(r.cube, model, s)
}

// DrawSphere draws the unit sphere under the given model transform and
// surface.
func (r *Renderer) DrawSphere(model math.Mat4, s materials.Surface) {
	r.draw(r.sphere, model, s)
}

func (r *Renderer) draw(g gpuMesh, model math.Mat4, s materials.Surface) {
	gl.UniformMatrix4fv(r.uModel, 1, false, model.Ptr())
	gl.Uniform3f(r.uDiffuse, s.Diffuse[0], s.Diffuse[1], s.Diffuse[2])
	gl.Uniform3f(r.uEmissive,
		s.Emissive[0]*s.EmissiveIntensity*0.1,
		s.Emissive[1]*s.EmissiveIntensity*0.1,
		s.Emissive[2]*s.EmissiveIntensity*0.1,
	)
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
}

// ReadPixels reads the current framebuffer as RGBA bytes, bottom-up.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

const vertexShaderSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProj * uView * world;
}
`

const fragmentShaderSrc = `
#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;

uniform vec3 uDiffuse;
uniform vec3 uEmissive;

uniform vec3 uFillDir;
uniform vec3 uFillColor;
uniform vec3 uKeyColor;

#define MAX_POINT_LIGHTS 32
uniform vec3 uPointPos[MAX_POINT_LIGHTS];
uniform vec3 uPointColor[MAX_POINT_LIGHTS];
uniform float uPointRange[MAX_POINT_LIGHTS];
uniform float uPointIntensity[MAX_POINT_LIGHTS];
uniform int uPointCount;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);

	// Directional key + constant ambient fill.
	float ndl = max(dot(n, normalize(uFillDir)), 0.0);
	vec3 light = uFillColor * 0.4 + uKeyColor * ndl;

	for (int i = 0; i < uPointCount; i++) {
		vec3 toLight = uPointPos[i] - vWorldPos;
		float dist = length(toLight);
		float falloff = clamp(1.0 - dist / uPointRange[i], 0.0, 1.0);
		falloff *= falloff;
		float pndl = max(dot(n, toLight / max(dist, 0.0001)), 0.0);
		light += uPointColor[i] * uPointIntensity[i] * 0.05 * falloff * pndl;
	}

	vec3 color = uDiffuse * light + uEmissive;
	FragColor = vec4(color, 1.0);
}
`
