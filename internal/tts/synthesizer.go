package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iabetor/pisay/internal/audio"
	"github.com/iabetor/pisay/internal/logger"
	"github.com/iabetor/pisay/internal/textfilter"
)

// Result 描述一次 Generate 调用的结果。
type Result struct {
	ID         string
	Input      string
	Text       string // 实际送入引擎的文本
	WAVPath    string // 跳过时为空
	Skipped    bool
	Samples    int
	SampleRate int
	Elapsed    time.Duration
}

// Recorder 接收每次 Generate 的结果，用于历史记录。
type Recorder interface {
	Record(ctx context.Context, engine string, r Result) error
}

// Synthesizer 将文本清洗与合成引擎组合在一起。
// 引擎创建代价高，应创建一个 Synthesizer 并在整个程序中复用。
type Synthesizer struct {
	engine     Engine
	engineName string
	filter     textfilter.Filter
	recorder   Recorder
	maxChars   int
}

// Option 配置 Synthesizer。
type Option func(*Synthesizer)

// WithFilter 替换默认的清洗配置。
func WithFilter(f textfilter.Filter) Option {
	return func(s *Synthesizer) { s.filter = f }
}

// WithRecorder 为每次 Generate 记录历史。
func WithRecorder(r Recorder) Option {
	return func(s *Synthesizer) { s.recorder = r }
}

// WithMaxChars 将清洗后的长文本按句切分，每段不超过 n 个字符，逐段合成后拼接。
// 部分云端引擎对单次请求长度有限制。n <= 0 表示不切分。
func WithMaxChars(n int) Option {
	return func(s *Synthesizer) { s.maxChars = n }
}

// NewSynthesizer 使用给定引擎创建 Synthesizer。name 仅用于日志和历史记录。
func NewSynthesizer(engine Engine, name string, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		engine:     engine,
		engineName: name,
		filter:     textfilter.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare 返回 text 清洗后的结果（filterInput 为 false 时原样返回）。
func (s *Synthesizer) Prepare(text string, filterInput bool) string {
	if !filterInput {
		return text
	}
	return s.filter.Apply(text)
}

// Synthesize 清洗并合成 text。清洗后为空时返回 ErrEmptyText，不调用引擎。
func (s *Synthesizer) Synthesize(ctx context.Context, text string, filterInput bool) ([]float32, int, error) {
	text = s.Prepare(text, filterInput)
	if text == "" {
		return nil, 0, ErrEmptyText
	}
	return s.synthesize(ctx, text)
}

// synthesize 按 maxChars 分段调用引擎并拼接样本。
func (s *Synthesizer) synthesize(ctx context.Context, text string) ([]float32, int, error) {
	chunks := splitChunks(text, s.maxChars)
	if len(chunks) <= 1 {
		return s.engine.Synthesize(ctx, text)
	}

	logger.Debugf("[tts] 文本分为 %d 段合成", len(chunks))
	var all []float32
	sampleRate := 0
	for i, chunk := range chunks {
		samples, rate, err := s.engine.Synthesize(ctx, chunk)
		if err != nil {
			return nil, 0, fmt.Errorf("第 %d 段: %w", i+1, err)
		}
		if sampleRate != 0 && rate != sampleRate {
			return nil, 0, fmt.Errorf("第 %d 段采样率 %d 与前段 %d 不一致", i+1, rate, sampleRate)
		}
		sampleRate = rate
		all = append(all, samples...)
	}
	return all, sampleRate, nil
}

// Generate 将 text 合成为 WAV 文件写入 wavPath。
//
// 建议开启 filterInput：输入中的杂乱符号可能导致合成引擎崩溃。
// 清洗后为空时什么也不做，返回 Skipped=true 且 error 为 nil。
func (s *Synthesizer) Generate(ctx context.Context, text, wavPath string, filterInput bool) (Result, error) {
	start := time.Now()
	res := Result{
		ID:    uuid.NewString(),
		Input: text,
		Text:  s.Prepare(text, filterInput),
	}

	if res.Text == "" {
		res.Skipped = true
		res.Elapsed = time.Since(start)
		logger.Infof("[tts] 输入无可朗读内容，跳过合成: %q", text)
		s.record(ctx, res)
		return res, nil
	}

	samples, sampleRate, err := s.synthesize(ctx, res.Text)
	if err != nil {
		return res, fmt.Errorf("[tts] %s 合成失败: %w", s.engineName, err)
	}

	if err := audio.WriteWAVFile(wavPath, samples, sampleRate); err != nil {
		return res, fmt.Errorf("[tts] 写入 WAV 失败: %w", err)
	}

	res.WAVPath = wavPath
	res.Samples = len(samples)
	res.SampleRate = sampleRate
	res.Elapsed = time.Since(start)

	logger.Infof("[tts] 已生成 %s (时长 %.1fs, %d Hz, 耗时 %v)",
		wavPath, audio.Duration(samples, sampleRate), sampleRate, res.Elapsed)
	s.record(ctx, res)
	return res, nil
}

// Close 释放引擎持有的资源。
func (s *Synthesizer) Close() {
	if c, ok := s.engine.(Closer); ok {
		c.Close()
	}
}

func (s *Synthesizer) record(ctx context.Context, r Result) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, s.engineName, r); err != nil {
		logger.Warnf("[tts] 记录历史失败: %v", err)
	}
}
