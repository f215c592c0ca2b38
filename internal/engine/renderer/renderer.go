// Package renderer draws animated windows with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/engine/lighting"
	"github.com/Faultbox/polyfx/internal/engine/renderer/shaders"
	"github.com/Faultbox/polyfx/internal/engine/shader"
	"github.com/Faultbox/polyfx/internal/logger"
	"github.com/Faultbox/polyfx/pkg/math"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// floats per vertex: position, normal, texcoord, opacity, textured flag
const stride = 3 + 3 + 2 + 1 + 1

// noClip disables fragment clipping.
var noClip = [4]float32{-1e9, -1e9, 1e9, 1e9}

// Renderer implements polygon.Renderer with OpenGL 4.1.
type Renderer struct {
	config Config

	program                    *shader.Program
	locModel, locView, locProj int32
	locClip, locColor          int32
	locLighting, locLightDir   int32
	locAmbient, locTexture     int32

	vao, vbo uint32
	texture  uint32

	out   polygon.Output
	state polygon.FrameState
	verts []float32

	// SideColor fills the side faces of thick slabs.
	SideColor [4]float32
	Sun       lighting.Sun
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:    cfg,
		SideColor: [4]float32{0.35, 0.37, 0.42, 1},
		Sun:       lighting.DefaultSun(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.DepthFunc(gl.LEQUAL)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.New(shaders.SlabVertexShader, shaders.SlabFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("slab shader: %w", err)
	}
	r.locModel = r.program.MustUniform("uModel")
	r.locView = r.program.Uniform("uView")
	r.locProj = r.program.Uniform("uProj")
	r.locClip = r.program.Uniform("uClip")
	r.locColor = r.program.Uniform("uColor")
	r.locLighting = r.program.Uniform("uLighting")
	r.locLightDir = r.program.Uniform("uLightDir")
	r.locAmbient = r.program.Uniform("uAmbient")
	r.locTexture = r.program.Uniform("uTexture")

	r.createBuffers()
	logger.Debug("renderer created",
		zap.Uint32("program", r.program.ID),
		zap.Uint32("vao", r.vao))
	return r, nil
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	offsets := []struct{ size, offset int }{{3, 0}, {3, 3}, {2, 6}, {1, 8}, {1, 9}}
	for i, a := range offsets {
		gl.VertexAttribPointerWithOffset(uint32(i), int32(a.size), gl.FLOAT, false, stride*4, uintptr(a.offset*4))
		gl.EnableVertexAttribArray(uint32(i))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// SetOutput sets the view and projection polygons are drawn with.
func (r *Renderer) SetOutput(out polygon.Output) { r.out = out }

// UploadSurface replaces the window texture.
func (r *Renderer) UploadSurface(img *image.RGBA) {
	if r.texture == 0 {
		gl.GenTextures(1, &r.texture)
	}
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// BeginGeometry implements polygon.Renderer.
func (r *Renderer) BeginGeometry(state polygon.FrameState) {
	r.state = state
	r.bind()
	if state.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.Uniform1i(r.locLighting, boolInt(state.Lighting))
	dir := r.Sun.Direction()
	gl.Uniform3f(r.locLightDir, dir.X, dir.Y, dir.Z)
	gl.Uniform1f(r.locAmbient, min(max(r.Sun.Ambient, 0), 1))
}

// DrawPolygon implements polygon.Renderer.
func (r *Renderer) DrawPolygon(d *polygon.PolygonDraw) {
	p := d.Polygon
	v := r.verts[:0]

	front := p.Front()
	for k := 1; k+1 < p.Sides; k++ {
		for _, i := range [3]int{0, k, k + 1} {
			v = appendVertex(v, front[i], p.Normals[0], d.TexCoords[i], d.Opacity, 1)
		}
	}
	back := p.Back()
	for k := 1; k+1 < p.Sides; k++ {
		for _, i := range [3]int{0, k, k + 1} {
			v = appendVertex(v, back[i], p.Normals[p.Sides], d.TexCoords[p.Sides+i], d.BackOpacity, 1)
		}
	}
	if !r.state.Flat {
		for s := 0; s+3 < len(p.SideIndices); s += 4 {
			idx := p.SideIndices[s : s+4]
			n := p.Normals[idx[0]]
			for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
				v = appendVertex(v, p.Vertices[idx[i]], n, math.Vec2{}, d.BackOpacity, 0)
			}
		}
	}
	r.verts = v

	gl.DepthMask(d.Pass == 0)
	gl.UniformMatrix4fv(r.locModel, 1, false, &d.Model[0])
	gl.Uniform4f(r.locClip, d.ClipBox.X1, d.ClipBox.Y1, d.ClipBox.X2, d.ClipBox.Y2)
	gl.Uniform4fv(r.locColor, 1, &r.SideColor[0])
	r.flush(gl.TRIANGLES)
}

// EndGeometry implements polygon.Renderer.
func (r *Renderer) EndGeometry() {
	gl.DepthMask(true)
	gl.Disable(gl.DEPTH_TEST)
}

// DrawWindow paints the surface flat over rect, for a window at rest.
func (r *Renderer) DrawWindow(rect math.Rect) {
	if r.texture == 0 {
		return
	}
	r.bind()
	gl.Disable(gl.DEPTH_TEST)
	gl.Uniform1i(r.locLighting, 0)

	x1, y1 := float32(rect.X1), float32(rect.Y1)
	x2, y2 := float32(rect.X2), float32(rect.Y2)
	n := math.Vec3{Z: 1}
	v := r.verts[:0]
	for _, c := range [6][4]float32{
		{x1, y1, 0, 0}, {x2, y1, 1, 0}, {x2, y2, 1, 1},
		{x1, y1, 0, 0}, {x2, y2, 1, 1}, {x1, y2, 0, 1},
	} {
		v = appendVertex(v, math.Vec3{X: c[0], Y: c[1]}, n, math.Vec2{X: c[2], Y: c[3]}, 1, 1)
	}
	r.verts = v

	model := math.Identity()
	gl.UniformMatrix4fv(r.locModel, 1, false, &model[0])
	gl.Uniform4fv(r.locClip, 1, &noClip[0])
	r.flush(gl.TRIANGLES)
}

// DrawOutline strokes line loop vertices given in screen pixels.
func (r *Renderer) DrawOutline(points []math.Vec2, color [4]float32) {
	if len(points) < 2 {
		return
	}
	r.bind()
	gl.Disable(gl.DEPTH_TEST)
	gl.Uniform1i(r.locLighting, 0)

	v := r.verts[:0]
	for _, pt := range points {
		v = appendVertex(v, pt.Vec3(0), math.Vec3{Z: 1}, math.Vec2{}, 1, 0)
	}
	r.verts = v

	model := math.Identity()
	gl.UniformMatrix4fv(r.locModel, 1, false, &model[0])
	gl.Uniform4fv(r.locClip, 1, &noClip[0])
	gl.Uniform4fv(r.locColor, 1, &color[0])
	r.flush(gl.LINE_LOOP)
}

// bind activates the program with the current output and texture.
func (r *Renderer) bind() {
	r.program.Use()
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.UniformMatrix4fv(r.locView, 1, false, &r.out.ModelView[0])
	gl.UniformMatrix4fv(r.locProj, 1, false, &r.out.Projection[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.Uniform1i(r.locTexture, 0)
	gl.BindVertexArray(r.vao)
}

func (r *Renderer) flush(mode uint32) {
	if len(r.verts) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.verts)*4, unsafe.Pointer(&r.verts[0]), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(len(r.verts)/stride))
}

func appendVertex(v []float32, pos, normal math.Vec3, tc math.Vec2, opacity, textured float32) []float32 {
	return append(v,
		pos.X, pos.Y, pos.Z,
		normal.X, normal.Y, normal.Z,
		tc.X, tc.Y,
		opacity, textured,
	)
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
