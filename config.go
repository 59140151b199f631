package main

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const defaultModelURL = "https://raw.githubusercontent.com/KhronosGroup/glTF-Sample-Models/main/2.0/Lantern/glTF/Lantern.gltf"

var errInvalidConfig = errors.New("invalid config")

type config struct {
	Model    string         `yaml:"model"`
	Camera   cameraConfig   `yaml:"camera"`
	Controls controlsConfig `yaml:"controls"`
	Lights   lightsConfig   `yaml:"lights"`
}

type cameraConfig struct {
	Fov      float64    `yaml:"fov"`
	MinFov   float64    `yaml:"min_fov"`
	MaxFov   float64    `yaml:"max_fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

type controlsConfig struct {
	RotateSpeed    float64 `yaml:"rotate_speed"`
	ZoomSpeed      float64 `yaml:"zoom_speed"`
	NormalizeWheel bool    `yaml:"normalize_wheel"`
	// wheel delta of one notch after normalization
	WheelStep float64 `yaml:"wheel_step"`
}

type lightsConfig struct {
	Hemisphere  hemisphereLight  `yaml:"hemisphere"`
	Directional directionalLight `yaml:"directional"`
	Point       pointLight       `yaml:"point"`
}

// hemisphereLight blends from ground to sky color along Direction.
type hemisphereLight struct {
	Sky       rgb        `yaml:"sky"`
	Ground    rgb        `yaml:"ground"`
	Direction [3]float32 `yaml:"direction"`
	Intensity float32    `yaml:"intensity"`
}

type directionalLight struct {
	Color     rgb        `yaml:"color"`
	Direction [3]float32 `yaml:"direction"`
	Intensity float32    `yaml:"intensity"`
}

// pointLight is positioned relative to the model.
type pointLight struct {
	Color     rgb        `yaml:"color"`
	Position  [3]float32 `yaml:"position"`
	Intensity float32    `yaml:"intensity"`
}

func defaultConfig() *config {
	return &config{
		Model: defaultModelURL,
		Camera: cameraConfig{
			Fov:      70,
			MinFov:   10,
			MaxFov:   75,
			Near:     0.01,
			Far:      40,
			Position: [3]float32{0, 0, 2},
		},
		Controls: controlsConfig{
			RotateSpeed: 0.005,
			ZoomSpeed:   0.1,
			WheelStep:   100,
		},
		Lights: lightsConfig{
			Hemisphere: hemisphereLight{
				Sky:       0xffffff,
				Ground:    0xbbbbff,
				Direction: [3]float32{0.5, 1, 0.25},
				Intensity: 1,
			},
			Directional: directionalLight{
				Color:     0xffffff,
				Direction: [3]float32{1, 1, 1},
				Intensity: 1,
			},
			Point: pointLight{
				Color:     0xffffff,
				Position:  [3]float32{2, 2, 2},
				Intensity: 1,
			},
		},
	}
}

// parseConfig overlays the YAML document on the defaults.
func parseConfig(b []byte) (*config, error) {
	c := defaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *config) validate() error {
	cam := &c.Camera
	switch {
	case c.Model == "":
		return fmt.Errorf("%w: empty model URL", errInvalidConfig)
	case cam.MinFov <= 0 || cam.MaxFov >= 180:
		return fmt.Errorf("%w: fov bounds must be inside (0, 180)", errInvalidConfig)
	case cam.MinFov >= cam.MaxFov:
		return fmt.Errorf("%w: min_fov %g must be less than max_fov %g", errInvalidConfig, cam.MinFov, cam.MaxFov)
	case cam.Fov < cam.MinFov || cam.MaxFov < cam.Fov:
		return fmt.Errorf("%w: fov %g out of [%g, %g]", errInvalidConfig, cam.Fov, cam.MinFov, cam.MaxFov)
	case cam.Near <= 0 || cam.Far <= 0:
		return fmt.Errorf("%w: near and far must be positive", errInvalidConfig)
	case cam.Near >= cam.Far:
		return fmt.Errorf("%w: near %g must be less than far %g", errInvalidConfig, cam.Near, cam.Far)
	case c.Controls.NormalizeWheel && c.Controls.WheelStep <= 0:
		return fmt.Errorf("%w: wheel_step must be positive", errInvalidConfig)
	case c.Lights.Hemisphere.Direction == [3]float32{}:
		return fmt.Errorf("%w: zero hemisphere light direction", errInvalidConfig)
	case c.Lights.Directional.Direction == [3]float32{}:
		return fmt.Errorf("%w: zero directional light direction", errInvalidConfig)
	}
	return nil
}

// rgb is a 0xRRGGBB color.
type rgb uint32
