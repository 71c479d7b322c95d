package audio

import (
	"encoding/binary"
	"math"
)

// 所有引擎输出都统一为单声道 float32，范围 [-1.0, 1.0]；
// 落盘和播放时再转换为 signed 16-bit LE PCM。

// BytesToFloat32 将单声道 16-bit LE PCM 字节转换为 float32 样本。
// 奇数长度时忽略最后一个字节。
func BytesToFloat32(b []byte) []float32 {
	n := len(b) / 2
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(b[2*i:]))
		out[i] = float32(s) / math.MaxInt16
	}
	return out
}

// Float32ToBytes 将 float32 样本转换为 16-bit LE PCM 字节，超出范围的样本被钳位。
func Float32ToBytes(in []float32) []byte {
	out := make([]byte, len(in)*2)
	for i, s := range in {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(clampToInt16(s)))
	}
	return out
}

func clampToInt16(s float32) int16 {
	if s > 1.0 {
		s = 1.0
	} else if s < -1.0 {
		s = -1.0
	}
	return int16(s * math.MaxInt16)
}

// Duration 返回样本在给定采样率下的时长（秒）。
func Duration(samples []float32, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(len(samples)) / float64(sampleRate)
}
