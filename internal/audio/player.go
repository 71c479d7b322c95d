package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/iabetor/pisay/internal/logger"
)

// Player 使用 malgo (miniaudio) 播放合成结果。
// 所有引擎输出单声道，播放设备固定为单声道 S16。
// Play 在整个播放期间持有读锁，Close 会等待正在进行的播放结束后再释放上下文。
type Player struct {
	ctx    *malgo.AllocatedContext
	mu     sync.RWMutex
	closed bool
}

// NewPlayer 初始化音频上下文。
func NewPlayer() (*Player, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("初始化播放上下文失败: %w", err)
	}
	return &Player{ctx: ctx}, nil
}

// PlayFile 播放 WriteWAVFile 生成的 WAV 文件。
func (p *Player) PlayFile(ctx context.Context, path string) error {
	samples, sampleRate, err := ReadWAVFile(path)
	if err != nil {
		return fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	return p.Play(ctx, samples, sampleRate)
}

// Play 通过默认扬声器播放单声道 float32 样本，阻塞直到播放完成或 ctx 被取消。
func (p *Player) Play(ctx context.Context, samples []float32, sampleRate int) error {
	if len(samples) == 0 {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || p.ctx == nil {
		return fmt.Errorf("播放器已关闭")
	}

	pcm := Float32ToBytes(samples)
	pos := 0
	done := make(chan struct{})

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = 1
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PeriodSizeInFrames = 512
	deviceConfig.Periods = 2

	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frameCount uint32) {
			need := int(frameCount) * 2
			n := 0
			if pos < len(pcm) {
				n = copy(out[:need], pcm[pos:])
				pos += n
			}
			// 数据不足的部分填充静音
			for i := n; i < need; i++ {
				out[i] = 0
			}
			if pos >= len(pcm) {
				select {
				case done <- struct{}{}:
				default:
				}
			}
		},
	}

	device, err := malgo.InitDevice(p.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("初始化播放设备失败: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("启动播放设备失败: %w", err)
	}
	defer device.Stop()

	select {
	case <-ctx.Done():
		logger.Debug("[audio] 播放被取消")
		return ctx.Err()
	case <-done:
		logger.Debug("[audio] 播放完成")
		return nil
	}
}

// Close 释放所有资源。
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	if p.ctx != nil {
		_ = p.ctx.Uninit()
		p.ctx.Free()
		p.ctx = nil
	}
}
