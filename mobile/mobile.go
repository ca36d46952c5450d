//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	ebitenmobile bind -target android -tags mobile -javapkg com.gonewx.raindrops -o build/android/raindrops.aar ./mobile
//
// 移动端不读取外部配置文件，使用内置默认配置；控件偏好仍通过 gdata 保存。
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/raindrops/pkg/app"
	"github.com/gonewx/raindrops/pkg/config"
)

func init() {
	storage, err := gdata.Open(gdata.Config{AppName: "raindrops"})
	if err != nil {
		log.Printf("[Mobile] Warning: gdata unavailable: %v", err)
		storage = nil
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    true, // Enable verbose logging for debugging
		Simulation: config.DefaultSimulationConfig(),
		Storage:    storage,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
