package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iabetor/pisay/internal/logger"
	"github.com/iabetor/pisay/internal/textfilter"
	"github.com/iabetor/pisay/internal/tts"
)

// Config 是 PiSay 的顶层配置结构。
type Config struct {
	Filter  FilterConfig  `yaml:"filter"`
	TTS     TTSConfig     `yaml:"tts"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
}

// FilterConfig 文本清洗配置。
type FilterConfig struct {
	// Enabled 为 nil 时默认开启。
	Enabled *bool `yaml:"enabled"`
	// Boundary 首尾字符处理策略：always（无条件删除）或 quotes（仅删除引号）。
	Boundary string `yaml:"boundary"`
	// Replacements 追加在默认替换表之后，按顺序生效。
	Replacements []textfilter.Replacement `yaml:"replacements"`
}

// TTSConfig 语音合成配置。
type TTSConfig struct {
	Engine string `yaml:"engine"`
	// MaxChars 单次送入引擎的最大字符数，0 表示不切分。
	// 腾讯云单次上限约 150 字符，默认按 100 切分以留余量。
	MaxChars int           `yaml:"max_chars"`
	Edge     EdgeConfig    `yaml:"edge"`
	Piper    PiperConfig   `yaml:"piper"`
	Sherpa   SherpaConfig  `yaml:"sherpa"`
	Tencent  TencentConfig `yaml:"tencent"`
	Say      SayConfig     `yaml:"say"`
}

// EdgeConfig Edge TTS 配置。
type EdgeConfig struct {
	Voice string `yaml:"voice"`
}

// PiperConfig Piper TTS 配置。
type PiperConfig struct {
	ModelPath string `yaml:"model_path"`
	Binary    string `yaml:"binary"`
}

// SherpaConfig sherpa-onnx 离线模型配置。
type SherpaConfig struct {
	ModelDir   string  `yaml:"model_dir"`
	Model      string  `yaml:"model"`
	SpeakerID  int     `yaml:"speaker_id"`
	Speed      float32 `yaml:"speed"`
	NumThreads int     `yaml:"num_threads"`
}

// TencentConfig 腾讯云 TTS 配置。
type TencentConfig struct {
	SecretID  string  `yaml:"secret_id"`
	SecretKey string  `yaml:"secret_key"`
	VoiceType int64   `yaml:"voice_type"`
	Region    string  `yaml:"region"`
	Speed     float64 `yaml:"speed"`
}

// SayConfig macOS say 配置。
type SayConfig struct {
	Voice string `yaml:"voice"`
}

// OutputConfig 输出配置。
type OutputConfig struct {
	Dir  string `yaml:"dir"`
	Play bool   `yaml:"play"`
}

// HistoryConfig 合成历史记录配置。
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Quiet      bool   `yaml:"quiet"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

var supportedEngines = map[string]bool{
	"edge": true, "piper": true, "sherpa": true, "tencent": true, "say": true,
}

// Load 读取 YAML 配置文件并返回 Config。
// 支持 ${VAR_NAME} 形式的环境变量展开。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	expanded := os.Expand(string(data), os.Getenv)

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	setDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置文件 %s 无效: %w", path, err)
	}
	return cfg, nil
}

// Default 返回只包含默认值的配置，用于没有配置文件的场景。
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Validate 检查取值范围受限的配置项。
func (c *Config) Validate() error {
	if _, err := textfilter.ParseBoundaryPolicy(c.Filter.Boundary); err != nil {
		return err
	}
	if !supportedEngines[c.TTS.Engine] {
		return fmt.Errorf("不支持的 TTS 引擎: %s", c.TTS.Engine)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// FilterEnabled 返回是否开启文本清洗。
func (c *Config) FilterEnabled() bool {
	return c.Filter.Enabled == nil || *c.Filter.Enabled
}

// TextFilter 根据配置构造清洗流水线。
func (c *Config) TextFilter() (textfilter.Filter, error) {
	policy, err := textfilter.ParseBoundaryPolicy(c.Filter.Boundary)
	if err != nil {
		return textfilter.Filter{}, err
	}
	return textfilter.Filter{
		Replacements: textfilter.DefaultReplacements.With(c.Filter.Replacements...),
		Boundary:     policy,
	}, nil
}

// EngineConfig 转换为 tts 包的引擎参数。
func (c *Config) EngineConfig() tts.EngineConfig {
	t := c.TTS
	return tts.EngineConfig{
		Name:  t.Engine,
		Edge:  tts.EdgeConfig{Voice: t.Edge.Voice},
		Piper: tts.PiperConfig{ModelPath: t.Piper.ModelPath, Binary: t.Piper.Binary},
		Sherpa: tts.SherpaConfig{
			ModelDir:   t.Sherpa.ModelDir,
			Model:      t.Sherpa.Model,
			SpeakerID:  t.Sherpa.SpeakerID,
			Speed:      t.Sherpa.Speed,
			NumThreads: t.Sherpa.NumThreads,
		},
		Tencent: tts.TencentConfig{
			SecretID:  t.Tencent.SecretID,
			SecretKey: t.Tencent.SecretKey,
			VoiceType: t.Tencent.VoiceType,
			Region:    t.Tencent.Region,
			Speed:     t.Tencent.Speed,
		},
		Say: tts.SayConfig{Voice: t.Say.Voice},
	}
}

// LoggerConfig 转换为 logger 包的配置。
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		Quiet:      c.Log.Quiet,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	}
}

// setDefaults 为未设置的配置项填充默认值。
func setDefaults(cfg *Config) {
	if cfg.Filter.Boundary == "" {
		cfg.Filter.Boundary = "always"
	}
	cfg.TTS.Engine = strings.ToLower(strings.TrimSpace(cfg.TTS.Engine))
	if cfg.TTS.Engine == "" {
		cfg.TTS.Engine = "edge"
	}
	if cfg.TTS.Engine == "tencent" && cfg.TTS.MaxChars == 0 {
		cfg.TTS.MaxChars = 100
	}
	if cfg.TTS.Edge.Voice == "" {
		cfg.TTS.Edge.Voice = "en-US-AriaNeural"
	}
	if cfg.TTS.Sherpa.NumThreads == 0 {
		cfg.TTS.Sherpa.NumThreads = 2
	}
	if cfg.TTS.Sherpa.Speed == 0 {
		cfg.TTS.Sherpa.Speed = 1.0
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./out"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	cfg.Output.Dir = expandHome(cfg.Output.Dir)
	cfg.History.DBPath = expandHome(cfg.History.DBPath)
	cfg.Log.File = expandHome(cfg.Log.File)
	cfg.TTS.Piper.ModelPath = expandHome(cfg.TTS.Piper.ModelPath)
	cfg.TTS.Sherpa.ModelDir = expandHome(cfg.TTS.Sherpa.ModelDir)

	// 去除密钥两端可能的空白（环境变量展开后常见）
	cfg.TTS.Tencent.SecretID = strings.TrimSpace(cfg.TTS.Tencent.SecretID)
	cfg.TTS.Tencent.SecretKey = strings.TrimSpace(cfg.TTS.Tencent.SecretKey)
}

// expandHome 将 ~/ 开头的路径展开为用户主目录，Go 不会自动处理。
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return path
	}
	return filepath.Join(home, path[2:])
}
