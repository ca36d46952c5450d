package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/raindrops/pkg/embedded"
)

// DefaultSimulationConfigPath 内置配置文件路径
const DefaultSimulationConfigPath = "data/simulation.yaml"

// SimulationConfig 模拟配置
//
// 配置文件位置: data/simulation.yaml
type SimulationConfig struct {
	Units    UnitsConfig    `yaml:"units"`
	World    WorldConfig    `yaml:"world"`
	Rain     RainConfig     `yaml:"rain"`
	Obstacle ObstacleConfig `yaml:"obstacle"`
	Stats    StatsConfig    `yaml:"stats"`
	Timing   TimingConfig   `yaml:"timing"`

	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `yaml:"seed"`
}

// UnitsConfig 单位换算
type UnitsConfig struct {
	// PixelsPerMeter 1 米对应的像素数
	PixelsPerMeter float64 `yaml:"pixelsPerMeter"`
}

// WorldConfig 初始世界尺寸（窗口大小变化后由前端覆盖）
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RainConfig 雨滴参数
type RainConfig struct {
	SpawnRate  float64 `yaml:"spawnRate"`  // 雨滴/秒
	FallSpeed  float64 `yaml:"fallSpeed"`  // 米/秒
	DropLength float64 `yaml:"dropLength"` // 像素
}

// ObstacleConfig 障碍物参数
type ObstacleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"` // 米/秒
	AngleDegrees float64 `yaml:"angleDegrees"`
}

// StatsConfig 统计窗口参数
type StatsConfig struct {
	WindowSeconds         float64 `yaml:"windowSeconds"`
	UpdateIntervalSeconds float64 `yaml:"updateIntervalSeconds"`
}

// TimingConfig 帧时间参数
type TimingConfig struct {
	// MaxDeltaTime 单帧 dt 上限（秒），0 表示不限制
	MaxDeltaTime float64 `yaml:"maxDeltaTime"`
}

// DefaultSimulationConfig 返回与 data/simulation.yaml 相同的默认配置
func DefaultSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		Units: UnitsConfig{PixelsPerMeter: 100},
		World: WorldConfig{Width: 1280, Height: 720},
		Rain: RainConfig{
			SpawnRate:  1000,
			FallSpeed:  10,
			DropLength: 8,
		},
		Obstacle: ObstacleConfig{
			Width:        50,
			Height:       200,
			Speed:        1,
			AngleDegrees: 0,
		},
		Stats: StatsConfig{
			WindowSeconds:         5,
			UpdateIntervalSeconds: 0.1,
		},
		Timing: TimingConfig{MaxDeltaTime: 0.1},
	}
}

// ParseSimulationConfig 解析 YAML 配置
//
// 文件中缺失的字段保留默认值。
//
// 参数:
//   - data: YAML 内容
//
// 返回:
//   - *SimulationConfig: 解析并验证后的配置
//   - error: 解析或验证失败时返回错误
func ParseSimulationConfig(data []byte) (*SimulationConfig, error) {
	cfg := DefaultSimulationConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	return cfg, nil
}

// LoadSimulationConfig 从文件系统加载配置
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}
	return ParseSimulationConfig(data)
}

// LoadEmbeddedSimulationConfig 加载内置的 data/simulation.yaml
// 调用前必须先调用 embedded.Init()
func LoadEmbeddedSimulationConfig() (*SimulationConfig, error) {
	data, err := embedded.ReadFile(DefaultSimulationConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded simulation config: %w", err)
	}
	return ParseSimulationConfig(data)
}

// Validate 验证配置有效性
//
// 检查：
//   - 所有数值必须是有限值
//   - 尺寸、生成速率、下落速度、统计窗口必须为正
//   - 障碍物速度可以为 0 或负值
//   - 统计更新间隔不能大于统计窗口
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *SimulationConfig) Validate() error {
	const (
		anyValue = iota
		nonNegative
		positive
	)
	fields := []struct {
		name  string
		value float64
		rule  int
	}{
		{"units.pixelsPerMeter", c.Units.PixelsPerMeter, positive},
		{"world.width", c.World.Width, positive},
		{"world.height", c.World.Height, positive},
		{"rain.spawnRate", c.Rain.SpawnRate, nonNegative},
		{"rain.fallSpeed", c.Rain.FallSpeed, positive},
		{"rain.dropLength", c.Rain.DropLength, nonNegative},
		{"obstacle.width", c.Obstacle.Width, positive},
		{"obstacle.height", c.Obstacle.Height, positive},
		{"obstacle.speed", c.Obstacle.Speed, anyValue},
		{"obstacle.angleDegrees", c.Obstacle.AngleDegrees, anyValue},
		{"stats.windowSeconds", c.Stats.WindowSeconds, positive},
		{"stats.updateIntervalSeconds", c.Stats.UpdateIntervalSeconds, nonNegative},
		{"timing.maxDeltaTime", c.Timing.MaxDeltaTime, nonNegative},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", f.name, f.value)
		}
		switch {
		case f.rule == positive && f.value <= 0:
			return fmt.Errorf("%s must be positive, got %v", f.name, f.value)
		case f.rule == nonNegative && f.value < 0:
			return fmt.Errorf("%s must not be negative, got %v", f.name, f.value)
		}
	}

	if c.Stats.UpdateIntervalSeconds > c.Stats.WindowSeconds {
		return fmt.Errorf("stats.updateIntervalSeconds(%.3f) > stats.windowSeconds(%.3f)",
			c.Stats.UpdateIntervalSeconds, c.Stats.WindowSeconds)
	}

	return nil
}

// PixelsPerSecond 将 米/秒 换算为 像素/秒
func (c *SimulationConfig) PixelsPerSecond(metersPerSecond float64) float64 {
	return metersPerSecond * c.Units.PixelsPerMeter
}

// ResolveSimulationConfig 按命令行参数加载配置
//
// path 为空时加载内置配置，否则从文件系统读取。
func ResolveSimulationConfig(path string) (*SimulationConfig, error) {
	if path == "" {
		return LoadEmbeddedSimulationConfig()
	}
	return LoadSimulationConfig(path)
}
