package desktop

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// World-to-clip transform shared by every program: translate by the camera
// offset, scale to framebuffer pixels, then to NDC with y down.
const worldToClip = `
uniform vec2 uOffset;
uniform float uZoom;
uniform vec2 uResolution;

vec4 toClip(vec2 world) {
    vec2 screenPos = (world + uOffset) * uZoom;
    vec2 ndc = (screenPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    return vec4(ndc, 0.0, 1.0);
}
`

// Line vertex shader: grid background.
const lineVertSrc = `#version 410 core
layout(location = 0) in vec2 aWorldPos;
` + worldToClip + `
void main() {
    gl_Position = toClip(aWorldPos);
}
` + "\x00"

const lineFragSrc = `#version 410 core

uniform vec3 uColor;
out vec4 FragColor;

void main() {
    FragColor = vec4(uColor, 1.0);
}
` + "\x00"

// Circle vertex shader: point sprites with per-vertex pos/size/colour.
const circleVertSrc = `#version 410 core
layout(location = 0) in vec2 aWorldPos;
layout(location = 1) in float aSize;
layout(location = 2) in vec4 aColor;
` + worldToClip + `
out vec4 vColor;

void main() {
    gl_Position = toClip(aWorldPos);
    gl_PointSize = max(1.0, floor(aSize * uZoom + 0.5));
    vColor = aColor;
}
` + "\x00"

// Circle fragment shader: discs with a one-pixel-ish soft edge.
const circleFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5)) * 2.0;
    if (dist > 1.0) discard;
    float edge = 1.0 - smoothstep(0.9, 1.0, dist);
    FragColor = vec4(vColor.rgb, vColor.a * edge);
}
` + "\x00"

// infoLog reads a shader or program log of length n through get.
func infoLog(n int32, get func(length int32, log *uint8)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	get(n, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func compileShader(kind uint32, src string) (uint32, error) {
	id := gl.CreateShader(kind)
	cs, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(id, 1, cs, nil)
	gl.CompileShader(id)

	var ok, n int32
	if gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok); ok != gl.FALSE {
		return id, nil
	}
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
	msg := infoLog(n, func(l int32, p *uint8) { gl.GetShaderInfoLog(id, l, nil, p) })
	gl.DeleteShader(id)
	return 0, fmt.Errorf("compile shader: %s", msg)
}

// linkProgram builds a program from vertex and fragment sources. The
// shader objects are released once linked.
func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	var shaders [2]uint32
	for i, st := range []struct {
		kind uint32
		src  string
	}{{gl.VERTEX_SHADER, vertSrc}, {gl.FRAGMENT_SHADER, fragSrc}} {
		id, err := compileShader(st.kind, st.src)
		if err != nil {
			for _, prev := range shaders[:i] {
				gl.DeleteShader(prev)
			}
			return 0, err
		}
		shaders[i] = id
	}

	prog := gl.CreateProgram()
	for _, id := range shaders {
		gl.AttachShader(prog, id)
	}
	gl.LinkProgram(prog)
	for _, id := range shaders {
		gl.DetachShader(prog, id)
		gl.DeleteShader(id)
	}

	var ok, n int32
	if gl.GetProgramiv(prog, gl.LINK_STATUS, &ok); ok != gl.FALSE {
		return prog, nil
	}
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
	msg := infoLog(n, func(l int32, p *uint8) { gl.GetProgramInfoLog(prog, l, nil, p) })
	gl.DeleteProgram(prog)
	return 0, fmt.Errorf("link program: %s", msg)
}
