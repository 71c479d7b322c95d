package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iabetor/pisay/internal/audio"
	"github.com/iabetor/pisay/internal/config"
	"github.com/iabetor/pisay/internal/database"
	"github.com/iabetor/pisay/internal/history"
	"github.com/iabetor/pisay/internal/logger"
	"github.com/iabetor/pisay/internal/textfilter"
	"github.com/iabetor/pisay/internal/tts"
)

type options struct {
	configPath string
	text       string
	out        string
	noFilter   bool
	dryRun     bool
	history    int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "配置文件路径（为空则使用默认配置）")
	flag.StringVar(&opts.text, "text", "", "要合成的文本；为空则逐行读取标准输入")
	flag.StringVar(&opts.out, "out", "", "输出 WAV 文件路径（仅 -text 模式）")
	flag.BoolVar(&opts.noFilter, "no-filter", false, "不清洗输入文本")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "只打印清洗结果，不调用合成引擎")
	flag.IntVar(&opts.history, "history", 0, "打印最近 N 条合成历史后退出")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pisay: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := logger.Init(cfg.LoggerConfig()); err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.Sync()

	filter, err := cfg.TextFilter()
	if err != nil {
		return err
	}
	filterInput := cfg.FilterEnabled() && !opts.noFilter

	if opts.dryRun {
		return dryRun(os.Stdout, opts.text, filter, filterInput)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅关闭
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Infof("[main] 收到信号 %v，正在关闭...", sig)
		cancel()
	}()

	var store *history.Store
	if cfg.History.Enabled || opts.history > 0 {
		db, err := database.Open(cfg.History.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if store, err = history.NewStore(db); err != nil {
			return err
		}
	}

	if opts.history > 0 {
		return printHistory(ctx, os.Stdout, store, opts.history)
	}

	engine, err := tts.NewEngine(cfg.EngineConfig())
	if err != nil {
		return err
	}

	synthOpts := []tts.Option{tts.WithFilter(filter), tts.WithMaxChars(cfg.TTS.MaxChars)}
	if store != nil && cfg.History.Enabled {
		synthOpts = append(synthOpts, tts.WithRecorder(store))
	}
	synth := tts.NewSynthesizer(engine, cfg.TTS.Engine, synthOpts...)
	defer synth.Close()

	var player *audio.Player
	if cfg.Output.Play {
		if player, err = audio.NewPlayer(); err != nil {
			return err
		}
		defer player.Close()
	}

	logger.Infof("[main] PiSay 启动 (engine=%s, filter=%v, boundary=%s)", cfg.TTS.Engine, filterInput, filter.Boundary)

	if opts.text != "" {
		path := opts.out
		if path == "" {
			path = filepath.Join(cfg.Output.Dir, "pisay.wav")
		}
		_, err := speak(ctx, os.Stdout, synth, player, opts.text, path, filterInput)
		return err
	}

	n, err := speakLines(ctx, os.Stdin, os.Stdout, synth, player, cfg.Output.Dir, filterInput)
	logger.Infof("[main] 共生成 %d 个音频文件", n)
	return err
}

// speakLines 逐行合成 r 中的文本，输出依次编号为 dir/0001.wav、0002.wav……
// 只有真正写出文件的行才占用编号，跳过或失败的行不会留下空号。
func speakLines(ctx context.Context, r io.Reader, w io.Writer, synth *tts.Synthesizer, player *audio.Player, dir string, filterInput bool) (int, error) {
	scanner := bufio.NewScanner(r)
	written := 0
	for line := 1; scanner.Scan(); line++ {
		path := filepath.Join(dir, fmt.Sprintf("%04d.wav", written+1))
		res, err := speak(ctx, w, synth, player, scanner.Text(), path, filterInput)
		if res.WAVPath != "" {
			written++
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return written, nil
			}
			logger.Errorf("[main] 第 %d 行合成失败: %v", line, err)
		}
	}
	return written, scanner.Err()
}

// speak 合成一条文本并打印输出路径；跳过时返回的 Result.WAVPath 为空。
func speak(ctx context.Context, w io.Writer, synth *tts.Synthesizer, player *audio.Player, text, path string, filterInput bool) (tts.Result, error) {
	res, err := synth.Generate(ctx, text, path, filterInput)
	if err != nil || res.Skipped {
		return res, err
	}
	fmt.Fprintln(w, res.WAVPath)
	if player != nil {
		return res, player.PlayFile(ctx, res.WAVPath)
	}
	return res, nil
}

// dryRun 打印清洗结果；text 为空时逐行处理标准输入。被跳过的输入打印为空行。
func dryRun(w io.Writer, text string, filter textfilter.Filter, filterInput bool) error {
	prepare := func(s string) string {
		if !filterInput {
			return s
		}
		return filter.Apply(s)
	}

	if text != "" {
		_, err := fmt.Fprintln(w, prepare(text))
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, prepare(scanner.Text())); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printHistory(ctx context.Context, w io.Writer, store *history.Store, limit int) error {
	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	for _, e := range entries {
		status := e.WAVPath
		if e.Skipped {
			status = "(skipped)"
		}
		fmt.Fprintf(w, "%s  %-8s %q -> %q  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Engine, e.Input, e.Filtered, status)
	}

	st, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "total=%d skipped=%d\n", st.Total, st.Skipped)
	return nil
}
