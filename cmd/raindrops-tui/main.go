// Package main 终端版雨滴模拟
//
// Usage:
//
//	go run ./cmd/raindrops-tui [flags]
//
// Flags:
//
//	--config <path>    外部 YAML 配置（默认使用内置默认值）
//	--mute             关闭撞击音效
//	--verbose          启用详细日志（输出到 stderr 会干扰画面，建议重定向）
//
// Controls:
//
//	Tab            切换选中的控件
//	Up/Down        调节选中的控件
//	r              恢复默认控件值
//	c              清空雨滴和统计
//	Space          暂停/继续
//	q/Escape       退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/gonewx/raindrops/pkg/config"
	"github.com/gonewx/raindrops/pkg/game"
	"github.com/gonewx/raindrops/pkg/geometry"
	"github.com/gonewx/raindrops/pkg/systems"
)

// 每个字符单元对应的像素尺寸
const (
	cellWidth  = 8
	cellHeight = 16

	hudRows       = 3
	soundCooldown = 60 * time.Millisecond
)

var (
	configFlag  = flag.String("config", "", "Path to simulation YAML (default: built-in defaults)")
	muteFlag    = flag.Bool("mute", false, "Disable hit sounds")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var sideTones = map[geometry.Side]float64{
	geometry.SideTop:    880,
	geometry.SideLeft:   660,
	geometry.SideRight:  990,
	geometry.SideBottom: 440,
}

var controlSteps = map[game.ControlKind]float64{
	game.ControlRainSpeed:     0.5,
	game.ControlObstacleSpeed: 0.25,
	game.ControlAngle:         5,
}

type terminal struct {
	screen tcell.Screen
	sim    *game.Simulation

	start    time.Time
	paused   bool
	selected game.ControlKind
	stats    systems.StatsText

	audioInit bool
	lastSound time.Time
}

func newTerminal(cfg *config.SimulationConfig) (*terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	t := &terminal{
		screen: screen,
		sim:    game.NewSimulation(cfg, nil),
		start:  time.Now(),
	}
	t.sim.OnStats(func(st systems.StatsText) { t.stats = st })
	t.stats = t.sim.Stats().Latest().Format()
	t.handleResize()

	if !*muteFlag {
		if err := t.initAudio(); err != nil {
			// 没有音效也可以运行
			log.Printf("[TUI] Audio initialization failed: %v", err)
		}
	}
	return t, nil
}

func (t *terminal) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		t.audioInit = true
	}
	return err
}

// playHitSound 撞击音效，按边区分音高并限频
func (t *terminal) playHitSound(side geometry.Side) {
	if !t.audioInit || time.Since(t.lastSound) < soundCooldown {
		return
	}
	t.lastSound = time.Now()

	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, sideTones[side])
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(40*time.Millisecond), sine))
}

func (t *terminal) now() float64 {
	return time.Since(t.start).Seconds()
}

func (t *terminal) handleResize() {
	t.screen.Sync()
	cols, rows := t.screen.Size()
	rows -= hudRows
	if rows < 1 {
		rows = 1
	}
	t.sim.SetWorldSize(float64(cols*cellWidth), float64(rows*cellHeight))
}

func (t *terminal) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		controls := t.sim.Controls()
		step := controlSteps[t.selected]

		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			t.selected = (t.selected + 1) % 3
		case tcell.KeyUp, tcell.KeyRight:
			controls.Adjust(t.selected, step)
		case tcell.KeyDown, tcell.KeyLeft:
			controls.Adjust(t.selected, -step)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				t.paused = !t.paused
				if !t.paused {
					t.sim.ResetClock(t.now())
				}
			case 'r':
				controls = game.DefaultControls(t.sim.Config())
			case 'c':
				t.sim.Reset()
				t.stats = t.sim.Stats().Latest().Format()
			}
		}

		if controls != t.sim.Controls() {
			if err := t.sim.ApplyControls(controls); err != nil {
				log.Printf("[TUI] Rejected controls: %v", err)
			}
		}

	case *tcell.EventResize:
		t.handleResize()
	}

	return true
}

func (t *terminal) step() {
	if t.paused {
		return
	}
	res := t.sim.Tick(t.now())
	if len(res.Collisions) > 0 {
		t.playHitSound(res.Collisions[len(res.Collisions)-1].Side)
	}
}

func (t *terminal) draw() {
	s := t.screen
	s.Clear()
	cols, rows := s.Size()

	obstacleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	dropStyle := tcell.StyleDefault.Foreground(tcell.ColorLightBlue)

	// 障碍物：中心点落在矩形内的单元格
	o := t.sim.Obstacle
	for cy := 0; cy < rows-hudRows; cy++ {
		for cx := 0; cx < cols; cx++ {
			p := r2.Point{X: (float64(cx) + 0.5) * cellWidth, Y: (float64(cy) + 0.5) * cellHeight}
			if o.ContainsPoint(p) {
				s.SetContent(cx, cy, '█', nil, obstacleStyle)
			}
		}
	}

	rain := t.sim.Rain
	for i := range rain.X {
		cx := int(rain.X[i] / cellWidth)
		cy := int(rain.Y[i] / cellHeight)
		if cx < 0 || cy < 0 || cx >= cols || cy >= rows-hudRows {
			continue
		}
		s.SetContent(cx, cy, '|', nil, dropStyle)
	}

	st := t.stats
	c := t.sim.Controls()
	hud := []string{
		fmt.Sprintf("Hits/s %s  Hits/100px %s  Frame %s ms  L %s%%  T %s%%  R %s%%",
			st.HitsPerSecond, st.HitsPer100, st.AvgFrameTime, st.LeftPercent, st.TopPercent, st.RightPercent),
		fmt.Sprintf("%s rain %.2f m/s  %s obstacle %.2f m/s  %s angle %.1f°",
			marker(t.selected, game.ControlRainSpeed), c.RainSpeed,
			marker(t.selected, game.ControlObstacleSpeed), c.ObstacleSpeed,
			marker(t.selected, game.ControlAngle), c.AngleDegrees),
		"Tab select  Up/Down adjust  r defaults  c clear  Space pause  q quit",
	}
	hudStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, line := range hud {
		drawText(s, 0, rows-hudRows+i, line, hudStyle)
	}

	s.Show()
}

func marker(selected, kind game.ControlKind) string {
	if selected == kind {
		return ">"
	}
	return " "
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func (t *terminal) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- t.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return
			}

		case <-ticker.C:
			t.step()
			t.draw()
		}
	}
}

func (t *terminal) cleanup() {
	if t.audioInit {
		speaker.Close()
	}
	t.screen.Fini()
}

func loadConfig(path string) (*config.SimulationConfig, error) {
	if path == "" {
		return config.DefaultSimulationConfig(), nil
	}
	return config.LoadSimulationConfig(path)
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	t, err := newTerminal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer t.cleanup()

	t.run()
}
