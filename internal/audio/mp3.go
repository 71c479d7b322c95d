package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 将 MP3 数据解码为单声道 float32 样本。
// go-mp3 总是输出 16-bit LE 立体声 PCM，这里左右声道取平均。
func DecodeMP3(ctx context.Context, data []byte) ([]float32, int, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("MP3 解码失败: %w", err)
	}

	var pcm bytes.Buffer
	buf := make([]byte, 4096)
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		n, err := decoder.Read(buf)
		pcm.Write(buf[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("读取 PCM 数据失败: %w", err)
		}
	}

	return StereoToMonoFloat32(pcm.Bytes()), decoder.SampleRate(), nil
}

// StereoToMonoFloat32 将立体声 signed 16-bit LE PCM 转换为单声道 float32。
// 每个立体声帧 4 字节，不完整的尾部帧被丢弃。
func StereoToMonoFloat32(data []byte) []float32 {
	numFrames := len(data) / 4
	if numFrames == 0 {
		return nil
	}
	samples := make([]float32, numFrames)

	for i := 0; i < numFrames; i++ {
		left := int16(data[i*4]) | int16(data[i*4+1])<<8
		right := int16(data[i*4+2]) | int16(data[i*4+3])<<8
		samples[i] = (float32(left) + float32(right)) / 65536.0
	}

	return samples
}
