// Package config 命令行配置：搜索参数、键表路径、服务地址和日志
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chesscore/internal/engine"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultDepth   = 4
	DefaultKeyPath = "internal/zobrist.bin"
	DefaultAddr    = ":2888"
)

type Config struct {
	Depth    int    // 搜索深度（ply）
	Threads  int    // 0 = CPU 数
	Eval     string // material | positional
	UseTT    bool
	KeyPath  string // 键表文件，空串表示只用内存键表
	Addr     string
	LogLevel string
	Console  bool // 人类可读的日志输出
}

func Default() *Config {
	return &Config{
		Depth:    DefaultDepth,
		Eval:     engine.EvalMaterial.String(),
		UseTT:    true,
		KeyPath:  DefaultKeyPath,
		Addr:     DefaultAddr,
		LogLevel: "info",
		Console:  true,
	}
}

// RegisterFlags 把字段绑到 fs 上，默认值取自 c 当前值
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Depth, "depth", c.Depth, "search depth in plies")
	fs.IntVar(&c.Threads, "threads", c.Threads, "root search lanes (0 = number of CPUs)")
	fs.StringVar(&c.Eval, "eval", c.Eval, "evaluator: material or positional")
	fs.BoolVar(&c.UseTT, "tt", c.UseTT, "use a transposition table for move ordering")
	fs.StringVar(&c.KeyPath, "keys", c.KeyPath, "position key file (empty = in-memory keys)")
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&c.Console, "console", c.Console, "human readable log output")
}

func (c *Config) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("%w: depth must be >= 1, got %d", ErrInvalidConfig, c.Depth)
	}
	if c.Threads < 0 {
		return fmt.Errorf("%w: threads must be >= 0, got %d", ErrInvalidConfig, c.Threads)
	}
	if _, err := engine.ParseEvalMode(c.Eval); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// EngineOptions 需要先 Validate
func (c *Config) EngineOptions() engine.Options {
	mode, _ := engine.ParseEvalMode(c.Eval)
	return engine.Options{
		Threads: c.Threads,
		Eval:    mode,
		UseTT:   c.UseTT,
	}
}

// SetupLogging 设置全局日志级别和输出
func (c *Config) SetupLogging(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
