package tts

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"

	"github.com/iabetor/pisay/internal/logger"
)

// SherpaConfig sherpa-onnx 离线 VITS 模型配置。
type SherpaConfig struct {
	// ModelDir 包含 model.onnx、tokens.txt 以及可选 espeak-ng-data 的目录。
	ModelDir   string
	Model      string // 默认 model.onnx
	SpeakerID  int
	Speed      float32
	NumThreads int
}

// SherpaEngine 封装 sherpa-onnx 离线 TTS。
// 模型加载需要数秒，应在程序生命周期内只创建一个并复用。
// 底层对象不是并发安全的，Synthesize 串行执行。
type SherpaEngine struct {
	mu    sync.Mutex
	tts   *sherpa.OfflineTts
	sid   int
	speed float32
}

var _ Engine = (*SherpaEngine)(nil)

// NewSherpaEngine 加载模型并创建引擎。
func NewSherpaEngine(cfg SherpaConfig) (*SherpaEngine, error) {
	if cfg.ModelDir == "" {
		return nil, fmt.Errorf("[tts] sherpa 需要配置 model_dir")
	}
	if cfg.Model == "" {
		cfg.Model = "model.onnx"
	}
	if cfg.NumThreads <= 0 {
		cfg.NumThreads = 2
	}
	if cfg.Speed <= 0 {
		cfg.Speed = 1.0
	}

	config := sherpa.OfflineTtsConfig{}
	config.Model.Vits.Model = filepath.Join(cfg.ModelDir, cfg.Model)
	config.Model.Vits.Tokens = filepath.Join(cfg.ModelDir, "tokens.txt")
	config.Model.Vits.DataDir = filepath.Join(cfg.ModelDir, "espeak-ng-data")
	config.Model.Vits.NoiseScale = 0.667
	config.Model.Vits.NoiseScaleW = 0.8
	config.Model.Vits.LengthScale = 1.0
	config.Model.NumThreads = cfg.NumThreads
	config.Model.Provider = "cpu"
	config.MaxNumSentences = 1

	impl := sherpa.NewOfflineTts(&config)
	if impl == nil {
		return nil, fmt.Errorf("[tts] 创建 sherpa 离线 TTS 失败，模型目录: %s", cfg.ModelDir)
	}

	logger.Infof("[tts] sherpa 引擎已初始化 (model=%s, threads=%d, sid=%d)",
		config.Model.Vits.Model, cfg.NumThreads, cfg.SpeakerID)

	return &SherpaEngine{tts: impl, sid: cfg.SpeakerID, speed: cfg.Speed}, nil
}

// Synthesize 将文本合成为单声道 float32 音频样本。
// sherpa 的生成调用不可中断，ctx 只在开始前检查。
func (e *SherpaEngine) Synthesize(ctx context.Context, text string) ([]float32, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tts == nil {
		return nil, 0, fmt.Errorf("[tts] sherpa 引擎已关闭")
	}

	logger.Debugf("[tts] sherpa: 正在合成 %d 个字符", len([]rune(text)))
	generated := e.tts.Generate(text, e.sid, e.speed)
	if generated == nil || len(generated.Samples) == 0 {
		return nil, 0, fmt.Errorf("[tts] sherpa: 未生成音频数据")
	}

	logger.Debugf("[tts] sherpa: 生成 %d 个样本，采样率 %d Hz", len(generated.Samples), generated.SampleRate)
	return generated.Samples, generated.SampleRate, nil
}

// Close 释放模型资源。
func (e *SherpaEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tts != nil {
		sherpa.DeleteOfflineTts(e.tts)
		e.tts = nil
	}
}
