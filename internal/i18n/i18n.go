package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cody-why/mouse-pilot/pkg/utils"
)

// Supported languages
const (
	LangZH = "zh"
	LangEN = "en"
)

var (
	currentLang  = LangEN // Default language is English
	translations = map[string]map[string]string{
		LangZH: getDefaultZHTranslations(),
		LangEN: getDefaultENTranslations(),
	}
	mutex sync.RWMutex
)

func init() {
	if lang := os.Getenv("MOUSE_PILOT_LANG"); lang == LangZH || lang == LangEN {
		currentLang = lang
	}
}

// LoadOverrides merges user-edited translation files from the config
// directory over the built-in defaults, writing the defaults out first so
// the files are there to edit. Called once at startup; tests never touch it.
func LoadOverrides() error {
	i18nDir := filepath.Join(utils.GetConfigDir(), "i18n")
	if err := os.MkdirAll(i18nDir, 0755); err != nil {
		return err
	}

	for _, lang := range []string{LangZH, LangEN} {
		path := filepath.Join(i18nDir, lang+".json")

		mutex.RLock()
		defaults := translations[lang]
		mutex.RUnlock()

		merged, err := loadAndUpdateTranslation(path, defaults)
		if err != nil {
			return err
		}

		mutex.Lock()
		translations[lang] = merged
		mutex.Unlock()
	}
	return nil
}

// loadAndUpdateTranslation reads a translation file, fills in any missing
// keys from the defaults, and writes it back if anything changed.
func loadAndUpdateTranslation(path string, defaults map[string]string) (map[string]string, error) {
	var loaded map[string]string
	var updated bool

	if _, err := os.Stat(path); os.IsNotExist(err) {
		loaded = defaults
		updated = true
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, err
		}
		for key, value := range defaults {
			if _, exists := loaded[key]; !exists {
				loaded[key] = value
				updated = true
			}
		}
	}

	if updated {
		data, err := json.MarshalIndent(loaded, "", "  ")
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, err
		}
	}

	return loaded, nil
}

// SetLang switches the current language.
func SetLang(lang string) error {
	if lang != LangZH && lang != LangEN {
		return fmt.Errorf("unsupported language: %s", lang)
	}
	mutex.Lock()
	currentLang = lang
	mutex.Unlock()
	return nil
}

// GetCurrentLang returns the current language.
func GetCurrentLang() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return currentLang
}

// T returns the translation for key, falling back to the key itself.
func T(key string) string {
	mutex.RLock()
	defer mutex.RUnlock()

	if langMap, ok := translations[currentLang]; ok {
		if text, ok := langMap[key]; ok {
			return text
		}
	}
	return key
}

// Tf returns the translation for key formatted with args.
func Tf(key string, args ...interface{}) string {
	return fmt.Sprintf(T(key), args...)
}

// getDefaultENTranslations 获取默认英文翻译
func getDefaultENTranslations() map[string]string {
	return map[string]string{
		// GUI general
		"app_title": "Mouse Pilot",
		"save":      "Save",
		"cancel":    "Cancel",
		"close":     "Close",
		"confirm":   "OK",
		"help":      "Help",

		// Recording
		"record":                 "Record",
		"stop_record":            "Stop Recording",
		"clear":                  "Clear",
		"recording":              "Recording...",
		"events_recorded":        "Recorded events: %d",
		"macro_name_placeholder": "Macro name...",
		"save_macro":             "Save Macro",
		"no_events_to_save":      "nothing recorded to save",
		"macro_name_required":    "macro name required",
		"add_delay":              "Add Delay",
		"delay_ms":               "Delay (ms)",

		// Playback
		"play_once":      "Play Once",
		"play_repeat":    "Play",
		"stop_playback":  "Stop",
		"repeat_count":   "Repeats",
		"interval_ms":    "Interval (ms)",
		"status_idle":    "Idle",
		"status_playing": "Playing %s (macro %d/%d, repeat %d/%d) %d%%",

		// Macro list
		"macros":             "Macros",
		"rename":             "Rename",
		"delete":             "Delete",
		"new_name":           "New name",
		"delete_macro_ask":   "Delete macro \"%s\"?",
		"macro_saved":        "Macro saved: %s",
		"macro_deleted":      "Macro deleted: %s",
		"macro_renamed":      "Macro renamed: %s",
		"save_failed":        "Failed to save macro: %v",
		"rename_failed":      "Failed to rename macro: %v",
		"delete_failed":      "Failed to delete macro: %v",
		"no_macros_selected": "No macros selected",

		// Shortcuts
		"shortcuts_help":     "Global shortcuts",
		"sc_start_recording": "Start recording",
		"sc_stop_recording":  "Stop recording",
		"sc_clear_recording": "Clear recording",
		"sc_play_once":       "Play selection once",
		"sc_play_repeat":     "Play selection with repeats",
		"sc_stop_playback":   "Stop playback",

		// Language
		"language":         "Language",
		"language_en":      "English",
		"language_zh":      "Chinese",
		"restart_required": "Language changed, restart to apply everywhere",

		// Startup and headless mode
		"load_config_failed":   "Failed to load config, using defaults: %v",
		"open_store_failed":    "Failed to open macro store: %v",
		"monitor_start_failed": "Failed to start input monitor: %v",
		"accessibility_hint":   "On macOS, grant Accessibility permission in System Settings and try again",
		"stored_macros":        "Stored macros:",
		"no_stored_macros":     "No stored macros",
		"macro_not_found":      "Macro not found: %s",
		"playing_macro":        "Playing %s (macro %d/%d, repeat %d/%d)",
		"playback_complete":    "Playback complete",
		"playback_stopped":     "Playback stopped",
	}
}

// getDefaultZHTranslations 获取默认中文翻译
func getDefaultZHTranslations() map[string]string {
	return map[string]string{
		// GUI通用
		"app_title": "鼠标键盘宏录制器",
		"save":      "保存",
		"cancel":    "取消",
		"close":     "关闭",
		"confirm":   "确定",
		"help":      "帮助",

		// 录制
		"record":                 "开始录制",
		"stop_record":            "停止录制",
		"clear":                  "清除",
		"recording":              "录制中...",
		"events_recorded":        "已录制事件: %d",
		"macro_name_placeholder": "宏名称...",
		"save_macro":             "保存宏",
		"no_events_to_save":      "没有可保存的录制内容",
		"macro_name_required":    "请输入宏名称",
		"add_delay":              "添加延时",
		"delay_ms":               "延时（毫秒）",

		// 播放
		"play_once":      "播放一次",
		"play_repeat":    "播放",
		"stop_playback":  "停止",
		"repeat_count":   "重复次数",
		"interval_ms":    "间隔（毫秒）",
		"status_idle":    "空闲",
		"status_playing": "正在播放 %s（宏 %d/%d，第 %d/%d 次）%d%%",

		// 宏列表
		"macros":             "宏列表",
		"rename":             "重命名",
		"delete":             "删除",
		"new_name":           "新名称",
		"delete_macro_ask":   "确定删除宏 \"%s\" 吗？",
		"macro_saved":        "宏已保存: %s",
		"macro_deleted":      "宏已删除: %s",
		"macro_renamed":      "宏已重命名: %s",
		"save_failed":        "保存宏失败: %v",
		"rename_failed":      "重命名宏失败: %v",
		"delete_failed":      "删除宏失败: %v",
		"no_macros_selected": "未选择任何宏",

		// 快捷键
		"shortcuts_help":     "全局快捷键",
		"sc_start_recording": "开始录制",
		"sc_stop_recording":  "停止录制",
		"sc_clear_recording": "清除录制",
		"sc_play_once":       "播放选中宏一次",
		"sc_play_repeat":     "按重复次数播放选中宏",
		"sc_stop_playback":   "停止播放",

		// 语言
		"language":         "语言",
		"language_en":      "英文",
		"language_zh":      "中文",
		"restart_required": "语言设置已更改，重启后完全生效",

		// 启动与命令行模式
		"load_config_failed":   "加载配置失败，使用默认配置: %v",
		"open_store_failed":    "打开宏存储失败: %v",
		"monitor_start_failed": "启动输入监听失败: %v",
		"accessibility_hint":   "macOS 上请在系统设置中授予辅助功能权限后重试",
		"stored_macros":        "已保存的宏:",
		"no_stored_macros":     "没有已保存的宏",
		"macro_not_found":      "未找到宏: %s",
		"playing_macro":        "正在播放 %s（宏 %d/%d，第 %d/%d 次）",
		"playback_complete":    "播放完成",
		"playback_stopped":     "播放已停止",
	}
}
