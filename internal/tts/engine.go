package tts

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyText 表示清洗后没有可朗读的内容，不应调用合成引擎。
var ErrEmptyText = errors.New("[tts] 文本为空，跳过合成")

// Engine 定义语音合成后端接口。
type Engine interface {
	// Synthesize 将文本转换为音频。
	// 返回 float32 音频样本、采样率（Hz）和错误。
	Synthesize(ctx context.Context, text string) ([]float32, int, error)
}

// Closer 由持有本地资源（模型、句柄）的引擎实现。
type Closer interface {
	Close()
}

// EngineConfig 汇总创建引擎所需的全部参数。
type EngineConfig struct {
	Name    string
	Edge    EdgeConfig
	Piper   PiperConfig
	Sherpa  SherpaConfig
	Tencent TencentConfig
	Say     SayConfig
}

// EdgeConfig Edge TTS 参数。
type EdgeConfig struct {
	Voice string
}

// PiperConfig piper CLI 参数。
type PiperConfig struct {
	ModelPath string
	Binary    string
}

// SayConfig macOS say 参数。
type SayConfig struct {
	Voice string
}

// NewEngine 按名称创建合成引擎。
// sherpa 引擎加载模型耗时较长，应在程序中只创建一次并复用。
func NewEngine(cfg EngineConfig) (Engine, error) {
	switch strings.ToLower(cfg.Name) {
	case "edge", "":
		return NewEdgeEngine(cfg.Edge.Voice), nil
	case "piper":
		if cfg.Piper.ModelPath == "" {
			return nil, fmt.Errorf("[tts] piper 需要配置 model_path")
		}
		return NewPiperEngine(cfg.Piper.ModelPath, cfg.Piper.Binary), nil
	case "sherpa":
		return NewSherpaEngine(cfg.Sherpa)
	case "tencent":
		return NewTencentEngine(cfg.Tencent)
	case "say":
		return NewSayEngine(cfg.Say.Voice), nil
	default:
		return nil, fmt.Errorf("[tts] 不支持的引擎: %s", cfg.Name)
	}
}
