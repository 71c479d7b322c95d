package tts

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pp-group/edge-tts-go/biz/service/tts/edge"

	"github.com/iabetor/pisay/internal/audio"
	"github.com/iabetor/pisay/internal/logger"
)

// defaultEdgeVoice 是英文默认语音。
const defaultEdgeVoice = "en-US-AriaNeural"

// EdgeEngine 使用微软 Edge TTS 实现语音合成，
// 通过 edge-tts-go 获取 MP3 音频，再解码为 PCM。
type EdgeEngine struct {
	voice string
}

// NewEdgeEngine 创建指定语音的 Edge TTS 引擎。
func NewEdgeEngine(voice string) *EdgeEngine {
	if voice == "" {
		voice = defaultEdgeVoice
	}
	return &EdgeEngine{voice: voice}
}

// Synthesize 将文本合成为单声道 float32 音频样本。
func (e *EdgeEngine) Synthesize(ctx context.Context, text string) ([]float32, int, error) {
	logger.Debugf("[tts] edge-tts: 正在合成 %d 个字符，语音=%s", len([]rune(text)), e.voice)

	comm, err := edge.NewCommunicate(text, edge.WithVoice(e.voice))
	if err != nil {
		return nil, 0, fmt.Errorf("[tts] edge-tts 创建实例失败: %w", err)
	}

	ch, err := comm.Stream()
	if err != nil {
		return nil, 0, fmt.Errorf("[tts] edge-tts 开始流式合成失败: %w", err)
	}

	mp3Data, err := collectEdgeAudio(ctx, ch)
	if err != nil {
		return nil, 0, err
	}

	if len(mp3Data) == 0 {
		return nil, 0, fmt.Errorf("[tts] edge-tts: 未收到音频数据")
	}
	logger.Debugf("[tts] edge-tts: 收到 %d 字节 MP3 数据", len(mp3Data))

	samples, sampleRate, err := audio.DecodeMP3(ctx, mp3Data)
	if err != nil {
		return nil, 0, fmt.Errorf("[tts] edge-tts: %w", err)
	}
	return samples, sampleRate, nil
}

// collectEdgeAudio 收集 Stream() 中 type=="audio" 条目的 MP3 数据。
// ctx 取消后仍会读完 ch，发送方不会阻塞在已无人接收的 channel 上。
func collectEdgeAudio(ctx context.Context, ch <-chan map[string]interface{}) ([]byte, error) {
	var mp3Buf bytes.Buffer
	for msg := range ch {
		if ctx.Err() != nil {
			continue
		}
		if msgType, ok := msg["type"].(string); ok && msgType == "audio" {
			if data, ok := msg["data"].([]byte); ok {
				mp3Buf.Write(data)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return mp3Buf.Bytes(), nil
}
