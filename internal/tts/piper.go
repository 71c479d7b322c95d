package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/iabetor/pisay/internal/audio"
	"github.com/iabetor/pisay/internal/logger"
)

// piperSampleRate 是 piper 输出的固定采样率。
const piperSampleRate = 22050

// PiperEngine 使用 piper CLI 子进程实现离线语音合成。
type PiperEngine struct {
	modelPath string
	binary    string
}

// NewPiperEngine 创建指定模型的 Piper TTS 引擎。binary 为空时从 PATH 查找 piper。
func NewPiperEngine(modelPath, binary string) *PiperEngine {
	if binary == "" {
		binary = "piper"
	}
	return &PiperEngine{modelPath: modelPath, binary: binary}
}

// Synthesize 使用 piper CLI 将文本转换为单声道 float32 音频样本。
// piper 输出 signed 16-bit LE 单声道 PCM，采样率 22050 Hz。
func (p *PiperEngine) Synthesize(ctx context.Context, text string) ([]float32, int, error) {
	logger.Debugf("[tts] piper: 正在合成 %d 个字符，模型=%s", len([]rune(text)), p.modelPath)

	cmd := exec.CommandContext(ctx, p.binary, "--model", p.modelPath, "--output-raw")
	cmd.Stdin = bytes.NewReader([]byte(text))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if s := stderr.String(); s != "" {
			logger.Warnf("[tts] piper stderr: %s", s)
		}
		return nil, 0, fmt.Errorf("[tts] piper 执行失败: %w", err)
	}

	pcmData := stdout.Bytes()
	if len(pcmData) == 0 {
		return nil, 0, fmt.Errorf("[tts] piper: 未收到音频数据")
	}

	samples := audio.BytesToFloat32(pcmData)
	logger.Debugf("[tts] piper: 收到 %d 字节 PCM，生成 %d 个样本", len(pcmData), len(samples))

	return samples, piperSampleRate, nil
}
