// Package app 提供模拟窗口的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/raindrops/pkg/config"
	"github.com/gonewx/raindrops/pkg/game"
	"github.com/gonewx/raindrops/pkg/systems"
	"github.com/gonewx/raindrops/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Simulation 已验证的模拟配置，为 nil 时使用默认配置
	Simulation *config.SimulationConfig
	// Storage 控件偏好存储，可为 nil（不持久化）
	Storage *gdata.Manager
}

// 每次按键的调节步长
var controlSteps = map[game.ControlKind]float64{
	game.ControlRainSpeed:     0.5,
	game.ControlObstacleSpeed: 0.25,
	game.ControlAngle:         5,
}

var (
	backgroundColor = color.RGBA{R: 20, G: 24, B: 36, A: 255}
	dropColor       = color.RGBA{R: 150, G: 190, B: 255, A: 255}
	obstacleColor   = color.RGBA{R: 240, G: 200, B: 90, A: 255}
)

// App 是模拟窗口的核心包装器，实现 ebiten.Game 接口
type App struct {
	sim      *game.Simulation
	settings *game.SettingsManager

	start    time.Time
	focused  bool
	paused   bool
	selected game.ControlKind

	statsText systems.StatsText
	width     int
	verbose   bool
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	simCfg := cfg.Simulation
	if simCfg == nil {
		simCfg = config.DefaultSimulationConfig()
	}
	if err := simCfg.Validate(); err != nil {
		return nil, fmt.Errorf("模拟配置无效: %w", err)
	}

	sim := game.NewSimulation(simCfg, nil)
	settings := game.NewSettingsManager(cfg.Storage, game.DefaultControls(simCfg))
	if err := sim.ApplyControls(settings.Controls()); err != nil {
		return nil, fmt.Errorf("控件设置无效: %w", err)
	}

	a := &App{
		sim:      sim,
		settings: settings,
		start:    time.Now(),
		focused:  true,
		verbose:  cfg.Verbose,
	}
	sim.OnStats(func(st systems.StatsText) {
		a.statsText = st
	})
	// 首次更新前也显示 0 值
	a.statsText = sim.Stats().Latest().Format()

	log.Printf("[App] Initialized, controls=%+v", settings.Controls())
	return a, nil
}

// now 自启动以来的秒数
func (a *App) now() float64 {
	return time.Since(a.start).Seconds()
}

// Update 更新模拟
// 每个 tick 调用一次（通常每秒 60 次），dt 由实际经过的时间计算
func (a *App) Update() error {
	now := a.now()

	// 失去焦点时暂停；重新获得焦点时重置时钟，避免一次性推进过长时间
	if !ebiten.IsFocused() {
		a.focused = false
		return nil
	}
	if !a.focused {
		a.focused = true
		a.sim.ResetClock(now)
		log.Printf("[App] Focus regained, clock reset")
	}

	a.handleInput(now)

	if a.paused {
		return nil
	}
	a.sim.Tick(now)
	return nil
}

func (a *App) handleInput(now float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.paused = !a.paused
		if !a.paused {
			a.sim.ResetClock(now)
		}
		log.Printf("[App] Paused=%v", a.paused)
	}

	zone := utils.JustPressedZone(a.width)
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || zone == utils.ZoneSelect {
		a.selected = (a.selected + 1) % 3
	}

	controls := a.settings.Controls()
	changed := false
	step := controlSteps[a.selected]
	switch zone {
	case utils.ZoneIncrease:
		controls.Adjust(a.selected, step)
		changed = true
	case utils.ZoneDecrease:
		controls.Adjust(a.selected, -step)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		controls.Adjust(a.selected, step)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) || inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		controls.Adjust(a.selected, -step)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		controls = game.DefaultControls(a.sim.Config())
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.sim.Reset()
		a.statsText = a.sim.Stats().Latest().Format()
	}

	if changed {
		a.applyControls(controls)
	}
}

// applyControls 应用并保存控件值
func (a *App) applyControls(c game.Controls) {
	if err := a.settings.SetControls(c); err != nil {
		log.Printf("[App] Rejected controls: %v", err)
		return
	}
	if err := a.sim.ApplyControls(c); err != nil {
		log.Printf("[App] Rejected controls: %v", err)
		return
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	rain := a.sim.Rain
	length := float32(a.sim.Config().Rain.DropLength)
	for i := range rain.X {
		vector.DrawFilledRect(screen, float32(rain.X[i]), float32(rain.Y[i])-length, 1, length, dropColor, false)
	}

	corners := a.sim.Obstacle.Corners()
	for i := range corners {
		p, q := corners[i], corners[(i+1)%len(corners)]
		vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 2, obstacleColor, true)
	}

	ebitenutil.DebugPrint(screen, a.hudText())
}

// hudText 统计与控件信息
func (a *App) hudText() string {
	st := a.statsText
	c := a.sim.Controls()

	var b strings.Builder
	fmt.Fprintf(&b, "Hits/s: %s  Hits/100px: %s  Frame: %s ms\n", st.HitsPerSecond, st.HitsPer100, st.AvgFrameTime)
	fmt.Fprintf(&b, "Left: %s%%  Top: %s%%  Right: %s%%\n", st.LeftPercent, st.TopPercent, st.RightPercent)

	values := []struct {
		kind  game.ControlKind
		label string
		value float64
	}{
		{game.ControlRainSpeed, "Rain speed (m/s)", c.RainSpeed},
		{game.ControlObstacleSpeed, "Obstacle speed (m/s)", c.ObstacleSpeed},
		{game.ControlAngle, "Angle (deg)", c.AngleDegrees},
	}
	for _, v := range values {
		marker := " "
		if v.kind == a.selected {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %s: %.2f\n", marker, v.label, v.value)
	}
	if a.paused {
		b.WriteString("PAUSED\n")
	}
	if utils.IsMobile() {
		b.WriteString("Tap middle: select  Tap left/right: adjust")
	} else {
		b.WriteString("Tab: select  Up/Down: adjust  R: defaults  C: clear  Space: pause")
	}
	return b.String()
}

// Layout 逻辑屏幕尺寸跟随窗口大小，世界边界同步更新
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width = outsideWidth
	a.sim.SetWorldSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Simulation 返回模拟实例
func (a *App) Simulation() *game.Simulation {
	return a.sim
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
