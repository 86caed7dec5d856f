package graphics

// The face program expands one packed face per instance into a 4-vertex
// triangle strip. Positions are chunk-local (row, bit, depth) as written by
// the mesher; the per-draw chunk origin comes from the origins buffer indexed
// by the draw id.
const faceVertexShader = `#version 430 core
#extension GL_ARB_shader_draw_parameters : require

layout(location = 0) in uint face;

layout(std430, binding = 0) readonly buffer ChunkOrigins {
	ivec4 origins[];
};

uniform mat4 view;
uniform mat4 proj;
uniform vec3 palette[16];

out vec3 vColor;

void main() {
	uint z = face & 31u;
	uint y = (face >> 5) & 31u;
	uint x = (face >> 10) & 31u;
	uint dir = (face >> 15) & 7u;
	uint w = ((face >> 18) & 31u) + 1u;
	uint h = ((face >> 23) & 31u) + 1u;
	uint bt = face >> 28;

	vec2 corner = vec2(gl_VertexID & 1, gl_VertexID >> 1);
	float row = float(x) + corner.x * float(w);
	float bit = float(y) + corner.y * float(h);
	bool positive = dir == 1u || dir == 2u || dir == 4u;
	float depth = float(z) + (positive ? 1.0 : 0.0);

	vec3 local;
	if (dir == 2u || dir == 3u) {
		local = vec3(row, depth, bit);
	} else if (dir == 0u || dir == 1u) {
		local = vec3(depth, bit, row);
	} else {
		local = vec3(row, bit, depth);
	}

	ivec3 origin = origins[gl_DrawIDARB].xyz;
	// negative chunks start one cell past key*32
	origin += ivec3(lessThan(origin, ivec3(0)));

	vColor = palette[bt];
	gl_Position = proj * view * vec4(vec3(origin) + local, 1.0);
}
`

const faceFragmentShader = `#version 430 core
in vec3 vColor;
out vec4 fragColor;

void main() {
	fragColor = vec4(vColor, 1.0);
}
`
