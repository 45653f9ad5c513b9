package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flycam/input"
	"github.com/plus3/flycam/rig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Camera          CameraConfig   `yaml:"camera"`
	Target          TargetConfig   `yaml:"target"`
	Bindings        BindingsConfig `yaml:"bindings"`
	TickRate        int            `yaml:"tick_rate"`
	PoseLogInterval float64        `yaml:"pose_log_interval"`
	Logging         LoggingConfig  `yaml:"logging"`
	Script          []HoldConfig   `yaml:"script"`
	ScriptLoop      float64        `yaml:"script_loop"`
}

type CameraConfig struct {
	Position Vec3    `yaml:"position"`
	Speed    float64 `yaml:"speed"`
	Boost    float64 `yaml:"boost"`
	Up       Vec3    `yaml:"up"`
}

type TargetConfig struct {
	Position Vec3 `yaml:"position"`
}

type BindingsConfig struct {
	Forward  string `yaml:"forward"`
	Backward string `yaml:"backward"`
	Left     string `yaml:"left"`
	Right    string `yaml:"right"`
	Up       string `yaml:"up"`
	Down     string `yaml:"down"`
	Boost    string `yaml:"boost"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type HoldConfig struct {
	Action string  `yaml:"action"`
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Boost  bool    `yaml:"boost"`
}

// Vec3 is a YAML sequence of three numbers.
type Vec3 [3]float64

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	var xs []float64
	if err := node.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: expected 3 components, got %d", node.Line, len(xs))
	}
	copy(v[:], xs)
	return nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			Position: Vec3{0, 3, -12},
			Speed:    rig.DefaultSpeed,
			Boost:    3,
			Up:       Vec3(rig.WorldUp),
		},
		Bindings: BindingsConfig{
			Forward:  "W",
			Backward: "S",
			Left:     "A",
			Right:    "D",
			Up:       "ShiftLeft",
			Down:     "ControlLeft",
			Boost:    "Space",
		},
		TickRate:        60,
		PoseLogInterval: 1,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Fields
// absent from data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var ErrInvalid = errors.New("invalid config")

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, field, fmt.Sprintf(format, args...))
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Camera.Speed < 0 {
		return invalid("camera.speed", "must not be negative, got %g", c.Camera.Speed)
	}
	if c.Camera.Boost < 0 {
		return invalid("camera.boost", "must not be negative, got %g", c.Camera.Boost)
	}
	if c.Camera.Up.Vec().Len() < rig.Epsilon {
		return invalid("camera.up", "must not be the zero vector")
	}
	if c.Camera.Position == c.Target.Position {
		return invalid("camera.position", "must differ from target.position")
	}
	if c.TickRate <= 0 {
		return invalid("tick_rate", "must be positive, got %d", c.TickRate)
	}
	if c.PoseLogInterval < 0 {
		return invalid("pose_log_interval", "must not be negative, got %g", c.PoseLogInterval)
	}
	if c.ScriptLoop < 0 {
		return invalid("script_loop", "must not be negative, got %g", c.ScriptLoop)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level", "unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "text", "json":
	default:
		return invalid("logging.format", "unknown format %q", c.Logging.Format)
	}
	if _, err := c.KeyBindings(); err != nil {
		return err
	}
	if _, err := c.Holds(); err != nil {
		return err
	}
	return nil
}

// KeyBindings resolves the key names. An empty boost name leaves boost unbound.
func (c *Config) KeyBindings() (input.Bindings, error) {
	var b input.Bindings
	names := [len(rig.Actions)]string{
		rig.Forward:  c.Bindings.Forward,
		rig.Backward: c.Bindings.Backward,
		rig.Left:     c.Bindings.Left,
		rig.Right:    c.Bindings.Right,
		rig.Up:       c.Bindings.Up,
		rig.Down:     c.Bindings.Down,
	}
	for _, a := range rig.Actions {
		key, err := input.ParseKey(names[a])
		if err != nil {
			return b, invalid("bindings."+a.String(), "%v", err)
		}
		b.Keys[a] = key
	}

	if c.Bindings.Boost != "" {
		key, err := input.ParseKey(c.Bindings.Boost)
		if err != nil {
			return b, invalid("bindings.boost", "%v", err)
		}
		b.Boost = key
		b.HasBoost = true
	}
	return b, nil
}

// Holds converts the script section into input holds.
func (c *Config) Holds() ([]input.Hold, error) {
	holds := make([]input.Hold, 0, len(c.Script))
	for i, h := range c.Script {
		field := fmt.Sprintf("script[%d]", i)
		action, err := rig.ParseAction(h.Action)
		if err != nil {
			return nil, invalid(field+".action", "%v", err)
		}
		if h.From < 0 || h.To <= h.From {
			return nil, invalid(field, "need 0 <= from < to, got from=%g to=%g", h.From, h.To)
		}
		holds = append(holds, input.Hold{Action: action, From: h.From, To: h.To, Boost: h.Boost})
	}
	return holds, nil
}
