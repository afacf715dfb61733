package gpu

// Shader sources for the indirect draw pipeline. Buffer and struct layouts
// here mirror the Go-side encodings byte for byte; changing either side
// alone breaks rendering silently.

const vertexShaderSrc = `#version 460 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

struct DrawData {
	mat4 transform;
	mat4 inverseTranspose;
	vec4 boundingSphere;
	uint materialID;
	uint skinID;
	uint pad0;
	uint pad1;
};

layout(std430, binding = 0) readonly buffer DrawDataBuffer {
	DrawData draws[];
};

layout(std430, binding = 3) readonly buffer SkinsBuffer {
	mat4 jointMatrices[];
};

struct Light {
	vec3 direction;
	float range;
	vec3 color;
	float intensity;
	vec3 position;
	float innerConeCos;
	float outerConeCos;
	uint lightType;
	float pad0;
	float pad1;
};

layout(std140, binding = 4) uniform SceneData {
	mat4 viewProjection[2];
	vec4 cameraPosition[2];
	vec4 params;
	Light lights[4];
} scene;

layout(location = 0) out vec3 fragWorldPos;
layout(location = 1) out vec3 fragNormal;
layout(location = 2) out vec2 fragUV;
layout(location = 3) flat out uint fragMaterialID;

void main() {
	DrawData d = draws[gl_DrawID];

	vec4 worldPos = d.transform * vec4(inPosition, 1.0);
	fragWorldPos = worldPos.xyz;
	fragNormal = normalize(mat3(d.inverseTranspose) * inNormal);
	fragUV = inUV;
	fragMaterialID = d.materialID;

	gl_Position = scene.viewProjection[0] * worldPos;
}
`

const fragmentShaderSrc = `#version 460 core

const uint NO_TEXTURE = 0xFFFFFFFFu;
const uint LIGHT_NONE = 0xFFFFFFFFu;
const uint LIGHT_DIRECTIONAL = 0u;
const uint LIGHT_POINT = 1u;
const uint LIGHT_SPOT = 2u;

struct Material {
	vec4 baseColorFactor;
	vec3 emissiveFactor;
	float metallicFactor;
	float roughnessFactor;
	uint baseColorTexture;
	uint normalTexture;
	uint emissiveTexture;
};

layout(std430, binding = 1) readonly buffer MaterialBuffer {
	Material materials[];
};

struct Light {
	vec3 direction;
	float range;
	vec3 color;
	float intensity;
	vec3 position;
	float innerConeCos;
	float outerConeCos;
	uint lightType;
	float pad0;
	float pad1;
};

layout(std140, binding = 4) uniform SceneData {
	mat4 viewProjection[2];
	vec4 cameraPosition[2];
	vec4 params;
	Light lights[4];
} scene;

layout(binding = 0) uniform sampler2D boundTextures[16];

layout(location = 0) in vec3 fragWorldPos;
layout(location = 1) in vec3 fragNormal;
layout(location = 2) in vec2 fragUV;
layout(location = 3) flat in uint fragMaterialID;

layout(location = 0) out vec4 outColor;

float rangeAttenuation(float dist, float range) {
	if (range < 0.0) {
		return 1.0 / max(dist * dist, 1e-4);
	}
	float falloff = clamp(1.0 - pow(dist / range, 4.0), 0.0, 1.0);
	return falloff * falloff / max(dist * dist, 1e-4);
}

float spotAttenuation(vec3 toSurface, Light l) {
	float cd = dot(normalize(l.direction), normalize(toSurface));
	return clamp((cd - l.outerConeCos) / max(l.innerConeCos - l.outerConeCos, 1e-4), 0.0, 1.0);
}

void main() {
	Material m = materials[fragMaterialID];

	vec4 base = m.baseColorFactor;
	if (m.baseColorTexture != NO_TEXTURE) {
		base *= texture(boundTextures[m.baseColorTexture], fragUV);
	}

	vec3 n = normalize(fragNormal);
	vec3 lit = vec3(0.03) * base.rgb;

	for (int i = 0; i < 4; i++) {
		Light l = scene.lights[i];
		if (l.lightType == LIGHT_NONE) {
			continue;
		}

		vec3 radiance;
		vec3 toLight;
		if (l.lightType == LIGHT_DIRECTIONAL) {
			toLight = -normalize(l.direction);
			radiance = l.color * l.intensity;
		} else {
			vec3 offset = l.position - fragWorldPos;
			float dist = length(offset);
			toLight = offset / max(dist, 1e-4);
			radiance = l.color * l.intensity * rangeAttenuation(dist, l.range);
			if (l.lightType == LIGHT_SPOT) {
				radiance *= spotAttenuation(-offset, l);
			}
		}

		lit += base.rgb * radiance * max(dot(n, toLight), 0.0);
	}

	vec3 emissive = m.emissiveFactor;
	if (m.emissiveTexture != NO_TEXTURE) {
		emissive *= texture(boundTextures[m.emissiveTexture], fragUV).rgb;
	}

	float exposure = scene.params.y;
	vec3 color = vec3(1.0) - exp(-(lit + emissive) * exposure);
	outColor = vec4(color, base.a);
}
`
