package game

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/gonewx/raindrops/pkg/config"
)

// ControlKind 可调节的控件
type ControlKind int

const (
	ControlRainSpeed     ControlKind = iota // 雨滴下落速度（米/秒）
	ControlObstacleSpeed                    // 障碍物速度（米/秒）
	ControlAngle                            // 障碍物角度（度）
)

// String 返回控件名称
func (k ControlKind) String() string {
	switch k {
	case ControlRainSpeed:
		return "rainSpeed"
	case ControlObstacleSpeed:
		return "obstacleSpeed"
	case ControlAngle:
		return "angleDegrees"
	default:
		return fmt.Sprintf("ControlKind(%d)", int(k))
	}
}

// MinRainSpeed 键盘调节时雨滴速度的下限（米/秒）
const MinRainSpeed = 0.1

// Controls 来自界面控件的数值
// 进入模拟核心前必须经过 Validate 或 Sanitize。
type Controls struct {
	RainSpeed     float64 `yaml:"rainSpeed"`     // 米/秒，必须为正
	ObstacleSpeed float64 `yaml:"obstacleSpeed"` // 米/秒，可为 0 或负值
	AngleDegrees  float64 `yaml:"angleDegrees"`  // 度，任意实数
}

// DefaultControls 根据配置返回默认控件值
func DefaultControls(cfg *config.SimulationConfig) Controls {
	return Controls{
		RainSpeed:     cfg.Rain.FallSpeed,
		ObstacleSpeed: cfg.Obstacle.Speed,
		AngleDegrees:  cfg.Obstacle.AngleDegrees,
	}
}

// Get 返回某个控件的当前值
func (c Controls) Get(kind ControlKind) float64 {
	switch kind {
	case ControlRainSpeed:
		return c.RainSpeed
	case ControlObstacleSpeed:
		return c.ObstacleSpeed
	default:
		return c.AngleDegrees
	}
}

// Set 验证并设置某个控件的值
// 验证失败时不修改当前值。
func (c *Controls) Set(kind ControlKind, value float64) error {
	if err := validateControl(kind, value); err != nil {
		return err
	}
	switch kind {
	case ControlRainSpeed:
		c.RainSpeed = value
	case ControlObstacleSpeed:
		c.ObstacleSpeed = value
	case ControlAngle:
		c.AngleDegrees = value
	default:
		return fmt.Errorf("unknown control %v", kind)
	}
	return nil
}

// Adjust 按增量调节控件（键盘控制使用）
// 雨滴速度不会低于 MinRainSpeed。
func (c *Controls) Adjust(kind ControlKind, delta float64) {
	value := c.Get(kind) + delta
	if kind == ControlRainSpeed && value < MinRainSpeed {
		value = MinRainSpeed
	}
	if err := c.Set(kind, value); err != nil {
		log.Printf("[Controls] Ignoring adjustment of %v: %v", kind, err)
	}
}

// Validate 检查所有控件值
func (c Controls) Validate() error {
	for _, kind := range []ControlKind{ControlRainSpeed, ControlObstacleSpeed, ControlAngle} {
		if err := validateControl(kind, c.Get(kind)); err != nil {
			return err
		}
	}
	return nil
}

// Sanitize 将非法字段替换为 defaults 中的对应值
func (c Controls) Sanitize(defaults Controls) Controls {
	out := c
	for _, kind := range []ControlKind{ControlRainSpeed, ControlObstacleSpeed, ControlAngle} {
		if err := validateControl(kind, c.Get(kind)); err != nil {
			log.Printf("[Controls] Warning: %v (using default %v)", err, defaults.Get(kind))
			_ = out.Set(kind, defaults.Get(kind))
		}
	}
	return out
}

// ParseControl 解析文本输入的控件值
//
// 参数:
//   - kind: 控件类型
//   - text: 输入文本
//
// 返回:
//   - float64: 解析后的值
//   - error: 非数字或不满足该控件约束时返回错误
func ParseControl(kind ControlKind, text string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %v %q: %w", kind, text, err)
	}
	if err := validateControl(kind, value); err != nil {
		return 0, err
	}
	return value, nil
}

func validateControl(kind ControlKind, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%v must be a finite number, got %v", kind, value)
	}
	if kind == ControlRainSpeed && value <= 0 {
		return fmt.Errorf("%v must be positive, got %v", kind, value)
	}
	return nil
}
