package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/surround.view/internal/stitch"
)

// DefaultConfigPath is the path to the canonical rig definition.
const DefaultConfigPath = "config/rig.defaults.json"

const (
	defaultAlignX = 16
	defaultAlignY = 2
)

// RigConfig describes a camera rig and the panorama it feeds. The same JSON
// is accepted at startup and by the /api/rig endpoint.
type RigConfig struct {
	Output    OutputConfig       `json:"output"`
	Alignment *AlignmentConfig   `json:"alignment,omitempty"`
	Cameras   []CameraConfig     `json:"cameras"`
	Bowl      *stitch.BowlConfig `json:"bowl,omitempty"`
}

// OutputConfig is the panorama frame.
type OutputConfig struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	StartAngle *float64 `json:"start_angle,omitempty"` // degrees mapped to column 0
}

// AlignmentConfig is the pixel grid copy areas are aligned to.
type AlignmentConfig struct {
	X *int `json:"x,omitempty"`
	Y *int `json:"y,omitempty"`
}

// CameraConfig is one camera's field of view and native size.
type CameraConfig struct {
	Name       string      `json:"name"`
	AngleStart float64     `json:"angle_start"`
	AngleRange float64     `json:"angle_range"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Crop       *CropConfig `json:"crop,omitempty"`
}

// CropConfig holds per-camera border insets in pixels.
type CropConfig struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// LoadRigConfig loads a RigConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadRigConfig(path string) (*RigConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseRigConfig(data)
}

// ParseRigConfig decodes and validates a rig definition.
func ParseRigConfig(data []byte) (*RigConfig, error) {
	cfg := &RigConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical rig from DefaultConfigPath.
// It searches the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *RigConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/<pkg>/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadRigConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *RigConfig) Validate() error {
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("output size must be positive, got %dx%d", c.Output.Width, c.Output.Height)
	}
	if n := len(c.Cameras); n < 2 || n > stitch.MaxCameras {
		return fmt.Errorf("camera count must be between 2 and %d, got %d", stitch.MaxCameras, n)
	}
	if c.Alignment != nil {
		if c.Alignment.X != nil && *c.Alignment.X < 1 {
			return fmt.Errorf("alignment.x must be >= 1, got %d", *c.Alignment.X)
		}
		if c.Alignment.Y != nil && *c.Alignment.Y < 1 {
			return fmt.Errorf("alignment.y must be >= 1, got %d", *c.Alignment.Y)
		}
	}

	for i, cam := range c.Cameras {
		if cam.Width <= 0 || cam.Height <= 0 {
			return fmt.Errorf("camera %d (%s): size must be positive, got %dx%d", i, cam.Name, cam.Width, cam.Height)
		}
		if !(cam.AngleRange > 0 && cam.AngleRange <= 360) {
			return fmt.Errorf("camera %d (%s): angle_range must be in (0, 360], got %f", i, cam.Name, cam.AngleRange)
		}
		if cam.Crop == nil {
			continue
		}
		cr := cam.Crop
		if cr.Left < 0 || cr.Right < 0 || cr.Top < 0 || cr.Bottom < 0 {
			return fmt.Errorf("camera %d (%s): crop must be non-negative", i, cam.Name)
		}
		if cr.Left+cr.Right >= cam.Width || cr.Top+cr.Bottom >= cam.Height {
			return fmt.Errorf("camera %d (%s): crop leaves no valid pixels", i, cam.Name)
		}
	}
	return nil
}

// GetStartAngle returns the output start angle or the default.
func (c *RigConfig) GetStartAngle() float64 {
	if c.Output.StartAngle == nil {
		return stitch.DefaultOutStartAngle
	}
	return *c.Output.StartAngle
}

// GetAlignX returns the horizontal alignment or the default.
func (c *RigConfig) GetAlignX() int {
	if c.Alignment == nil || c.Alignment.X == nil {
		return defaultAlignX
	}
	return *c.Alignment.X
}

// GetAlignY returns the vertical alignment or the default.
func (c *RigConfig) GetAlignY() int {
	if c.Alignment == nil || c.Alignment.Y == nil {
		return defaultAlignY
	}
	return *c.Alignment.Y
}

// HasExplicitCrops reports whether any camera carries crop margins.
func (c *RigConfig) HasExplicitCrops() bool {
	for _, cam := range c.Cameras {
		if cam.Crop != nil {
			return true
		}
	}
	return false
}

// CameraInfos converts the camera list into planner inputs.
func (c *RigConfig) CameraInfos() []stitch.CameraInfo {
	infos := make([]stitch.CameraInfo, len(c.Cameras))
	for i, cam := range c.Cameras {
		infos[i] = stitch.CameraInfo{
			Name: cam.Name,
			SliceView: stitch.RoundViewSlice{
				HoriAngleStart: cam.AngleStart,
				HoriAngleRange: cam.AngleRange,
				Width:          cam.Width,
				Height:         cam.Height,
			},
		}
	}
	return infos
}

// NewStitcher builds a Stitcher configured for this rig. No stage has run
// yet; explicit crops, if any, already count as the resolved crop stage.
func (c *RigConfig) NewStitcher() (*stitch.Stitcher, error) {
	s, err := stitch.New(c.GetAlignX(), c.GetAlignY())
	if err != nil {
		return nil, err
	}
	if err := s.SetOutputSize(c.Output.Width, c.Output.Height); err != nil {
		return nil, err
	}
	s.SetOutStartAngle(c.GetStartAngle())
	if err := s.SetCameraNum(len(c.Cameras)); err != nil {
		return nil, err
	}
	for i, info := range c.CameraInfos() {
		if err := s.SetCameraInfo(i, info); err != nil {
			return nil, err
		}
	}
	for i, cam := range c.Cameras {
		if cam.Crop == nil {
			continue
		}
		crop := stitch.CropInfo{Left: cam.Crop.Left, Right: cam.Crop.Right, Top: cam.Crop.Top, Bottom: cam.Crop.Bottom}
		if err := s.SetCropInfo(i, crop); err != nil {
			return nil, err
		}
	}
	if c.Bowl != nil {
		s.SetBowlConfig(*c.Bowl)
	}
	return s, nil
}
