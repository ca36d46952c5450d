package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SettingsManager 控件偏好管理器
// 负责控件值（雨速、障碍物速度、角度）的加载、保存和内存管理。
// 只保存偏好，不保存模拟状态。
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaults     Controls
	controls     Controls
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "controls"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaults: 默认控件值
//
// 返回：
//   - *SettingsManager: 设置管理器实例
func NewSettingsManager(gdataManager *gdata.Manager, defaults Controls) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     defaults,
		controls:     defaults,
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载控件偏好
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置；
// 加载到的非法字段替换为默认值。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.controls = sm.defaults
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.controls = sm.defaults
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := sm.defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.controls = sm.defaults
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.controls = loaded.Sanitize(sm.defaults)
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存控件偏好到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.controls)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Controls 当前控件值
func (sm *SettingsManager) Controls() Controls {
	return sm.controls
}

// SetControls 修改内存中的控件值（需调用 Save() 持久化）
func (sm *SettingsManager) SetControls(c Controls) error {
	if err := c.Validate(); err != nil {
		return err
	}
	sm.controls = c
	return nil
}

// Reset 恢复默认值
func (sm *SettingsManager) Reset() {
	sm.controls = sm.defaults
}
