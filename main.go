// Package main 雨滴模拟桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose          启用详细日志
//	--config <path>    使用外部 YAML 配置（默认使用内置 data/simulation.yaml）
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/raindrops/pkg/app"
	"github.com/gonewx/raindrops/pkg/config"
	"github.com/gonewx/raindrops/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "Path to simulation YAML (default: embedded data/simulation.yaml)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	cfg, err := config.ResolveSimulationConfig(*configFlag)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 控件偏好存储，打开失败时降级为仅内存
	storage, err := gdata.Open(gdata.Config{AppName: "raindrops"})
	if err != nil {
		log.Printf("[Main] Warning: gdata unavailable: %v (settings will not persist)", err)
		storage = nil
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		Simulation: cfg,
		Storage:    storage,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(int(cfg.World.Width), int(cfg.World.Height))
	ebiten.SetWindowTitle("Raindrops")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
