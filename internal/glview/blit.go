package glview

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const blitVertexSrc = `#version 410 core
out vec2 uv;
void main() {
	// one oversized triangle covering the viewport
	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
	// image rows run top to bottom
	uv = vec2(p.x, 1.0 - p.y);
	gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}`

const blitFragmentSrc = `#version 410 core
in vec2 uv;
uniform sampler2D frame;
out vec4 fragColor;
void main() {
	fragColor = texture(frame, uv);
}`

// Blitter copies a CPU frame into a texture and draws it over the whole
// viewport.
type Blitter struct {
	program *Program
	vao     uint32
	texture uint32
	w, h    int
}

func NewBlitter() (*Blitter, error) {
	program, err := NewProgram(blitVertexSrc, blitFragmentSrc)
	if err != nil {
		return nil, err
	}
	b := &Blitter{program: program}
	gl.GenVertexArrays(1, &b.vao)

	gl.GenTextures(1, &b.texture)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return b, nil
}

// Upload copies frame into the texture, reallocating it when the size changes.
func (b *Blitter) Upload(frame *image.NRGBA) {
	size := frame.Rect.Size()
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Stride/4))
	if size.X != b.w || size.Y != b.h {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
		b.w, b.h = size.X, size.Y
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(size.X), int32(size.Y), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw renders the last uploaded frame.
func (b *Blitter) Draw() {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	b.program.Use()
	b.program.SetInt("frame", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

func (b *Blitter) Delete() {
	gl.DeleteTextures(1, &b.texture)
	gl.DeleteVertexArrays(1, &b.vao)
	b.program.Delete()
}
