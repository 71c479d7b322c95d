package audio

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavFormatPCM = 1
)

// WriteWAV 将单声道 float32 样本编码为 16-bit PCM WAV 写入 w。
// 编码器写完数据后会回到文件头补写长度，因此 w 必须可 Seek。
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("无效的采样率: %d", sampleRate)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(clampToInt16(s))
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}

	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, 1, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("写入 PCM 数据失败: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("写入 WAV 文件头失败: %w", err)
	}
	return nil
}

// WriteWAVFile 将样本写入 path，必要时创建父目录。
// 先写临时文件再重命名，避免留下半截文件。
func WriteWAVFile(path string, samples []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ReadWAV 读取 16-bit PCM WAV 并转换为单声道 float32 样本。
// 按块解析文件，fmt 与 data 之间的 LIST、FLLR 等块会被跳过；多声道取平均。
func ReadWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("不是有效的 WAV 文件")
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, 0, fmt.Errorf("仅支持 PCM WAV，实际格式 %d", dec.WavAudioFormat)
	}
	if dec.BitDepth != wavBitDepth {
		return nil, 0, fmt.Errorf("仅支持 16-bit WAV，实际位深 %d", dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("读取 PCM 数据失败: %w", err)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		channels = 1
	}
	frames := len(buf.Data) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum int
		for c := 0; c < channels; c++ {
			sum += buf.Data[i*channels+c]
		}
		out[i] = float32(sum) / float32(channels) / math.MaxInt16
	}
	return out, int(dec.SampleRate), nil
}

// ReadWAVFile 打开 path 并调用 ReadWAV。
func ReadWAVFile(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("打开音频文件失败: %w", err)
	}
	defer f.Close()
	return ReadWAV(f)
}
