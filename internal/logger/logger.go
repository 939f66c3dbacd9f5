package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// The TTY belongs to the renderer, so all diagnostics go to a file.
var (
	log     *zap.SugaredLogger
	logFile *os.File
)

// Init opens the log file and installs the global logger.
// The path resolves from QUILL_LOG_FILE, then XDG_CONFIG_HOME,
// then ~/.config/quill/quill.log.
func Init(debug bool) error {
	path, err := logPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(logFile), level)
	log = zap.New(core, zap.AddCaller()).Sugar()
	log.Infow("logger initialized", "path", path, "debug", debug)
	return nil
}

// Close flushes and closes the log file.
func Close() {
	if log != nil {
		_ = log.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
	}
}

func logPath() (string, error) {
	if v := os.Getenv("QUILL_LOG_FILE"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "quill", "quill.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quill", "quill.log"), nil
}

func Debug(msg string, kv ...interface{}) {
	if log != nil {
		log.Debugw(msg, kv...)
	}
}

func Info(msg string, kv ...interface{}) {
	if log != nil {
		log.Infow(msg, kv...)
	}
}

func Warn(msg string, kv ...interface{}) {
	if log != nil {
		log.Warnw(msg, kv...)
	}
}

func Error(msg string, kv ...interface{}) {
	if log != nil {
		log.Errorw(msg, kv...)
	}
}
