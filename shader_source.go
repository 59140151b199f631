package main

const (
	aPosition = 0
	aNormal   = 1
	aTexCoord = 2
)

const vsModelSource = `#version 300 es
	layout (location = 0) in vec3 aPosition;
	layout (location = 1) in vec3 aNormal;
	layout (location = 2) in vec2 aTexCoord;
	uniform mat4 uModelMatrix;
	uniform mat4 uViewMatrix;
	uniform mat4 uProjectionMatrix;
	out highp vec3 vWorldPosition;
	out highp vec3 vNormal;
	out highp vec2 vTexCoord;

	void main(void) {
		vec4 worldPosition = uModelMatrix * vec4(aPosition, 1.0);
		vWorldPosition = worldPosition.xyz;
		vNormal = mat3(uModelMatrix) * aNormal;
		vTexCoord = aTexCoord;
		gl_Position = uProjectionMatrix * uViewMatrix * worldPosition;
	}
`

const fsModelSource = `#version 300 es
	in highp vec3 vWorldPosition;
	in highp vec3 vNormal;
	in highp vec2 vTexCoord;
	uniform lowp vec3 uBaseColor;
	uniform lowp float uOpacity;
	uniform bool uUseTexture;
	uniform sampler2D uSampler;
	uniform lowp vec3 uSkyColor;
	uniform lowp vec3 uGroundColor;
	uniform highp vec3 uHemisphereDirection;
	uniform highp vec3 uLightDirection;
	uniform lowp vec3 uLightColor;
	uniform highp vec3 uPointLightPosition;
	uniform lowp vec3 uPointLightColor;
	out lowp vec4 outColor;

	void main(void) {
		highp vec3 n = normalize(vNormal);
		if (!gl_FrontFacing) {
			n = -n;
		}
		lowp vec4 diffuse = vec4(uBaseColor, uOpacity);
		if (uUseTexture) {
			diffuse *= texture(uSampler, vTexCoord);
		}
		lowp vec3 irradiance = mix(uGroundColor, uSkyColor, 0.5 * dot(n, uHemisphereDirection) + 0.5);
		irradiance += uLightColor * max(dot(n, uLightDirection), 0.0);
		highp vec3 toPoint = normalize(uPointLightPosition - vWorldPosition);
		irradiance += uPointLightColor * max(dot(n, toPoint), 0.0);
		outColor = vec4(min(diffuse.rgb * irradiance, vec3(1.0)), diffuse.a);
	}
`
