package tts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/iabetor/pisay/internal/audio"
	"github.com/iabetor/pisay/internal/logger"
)

// saySampleRate 是 afconvert 转换后的采样率。
const saySampleRate = 22050

// SayEngine 使用 macOS 内置 say 命令实现语音合成，仅在 macOS 上可用。
type SayEngine struct {
	voice string // macOS 语音名称，如 "Samantha"
}

// NewSayEngine 创建 macOS say TTS 引擎。voice 为空时使用系统默认语音。
func NewSayEngine(voice string) *SayEngine {
	return &SayEngine{voice: voice}
}

// Synthesize 先用 say 输出 AIFF，再用 afconvert 转为 16-bit LE 单声道 WAV。
func (s *SayEngine) Synthesize(ctx context.Context, text string) ([]float32, int, error) {
	logger.Debugf("[tts] say: 正在合成 %d 个字符", len([]rune(text)))

	tmpFile, err := os.CreateTemp("", "pisay-say-*.aiff")
	if err != nil {
		return nil, 0, fmt.Errorf("[tts] say: 创建临时文件失败: %w", err)
	}
	aiffPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(aiffPath)

	wavPath := aiffPath + ".wav"
	defer os.Remove(wavPath)

	args := []string{"-o", aiffPath}
	if s.voice != "" {
		args = append(args, "-v", s.voice)
	}
	// "--" 防止以 "-" 开头的文本被当作参数
	args = append(args, "--", text)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "say", args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, 0, fmt.Errorf("[tts] say 执行失败: %w, stderr: %s", err, stderr.String())
	}

	stderr.Reset()
	convertCmd := exec.CommandContext(ctx, "afconvert",
		"-f", "WAVE",
		"-d", fmt.Sprintf("LEI16@%d", saySampleRate),
		"-c", "1",
		aiffPath, wavPath,
	)
	convertCmd.Stderr = &stderr
	if err := convertCmd.Run(); err != nil {
		return nil, 0, fmt.Errorf("[tts] afconvert 执行失败: %w, stderr: %s", err, stderr.String())
	}

	// afconvert 会在 fmt 与 data 之间插入 FLLR 填充块，需要按块解析
	samples, sampleRate, err := audio.ReadWAVFile(wavPath)
	if err != nil {
		return nil, 0, fmt.Errorf("[tts] say: 读取输出文件失败: %w", err)
	}
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("[tts] say: 未收到音频数据")
	}

	logger.Debugf("[tts] say: 生成 %d 个单声道 float32 样本", len(samples))

	return samples, sampleRate, nil
}
