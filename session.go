// (c) Copyright 2016 Hewlett Packard Enterprise Development LP
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package toolwarn

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/staticbugs/toolwarn/record"
	"github.com/staticbugs/toolwarn/report"
)

// LogTimeLayout names the log file of a session
const LogTimeLayout = "2006-01-02-15:04:05"

// Session is the handle returned by Initialize. It owns the diagnostic log
// file until Close.
type Session struct {
	Logger    *zap.Logger
	LogPath   string
	OutputDir string

	sink *lumberjack.Logger
}

// Initialize creates the log and output directories, opens an append-only
// log file named after the current clock reading and returns the session
// logging to it.
func Initialize(cfg *Config) (*Session, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	for _, dir := range []string{cfg.LogDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level.SetLevel(zap.DebugLevel)
	}

	logPath := filepath.Join(cfg.LogDir, cfg.now().Format(LogTimeLayout)+".log")
	// lumberjack opens lazily; the file exists from the start of the session
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	sink := &lumberjack.Logger{Filename: logPath}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(sink), level)

	return &Session{
		Logger:    zap.New(core, zap.AddStacktrace(zap.ErrorLevel)),
		LogPath:   logPath,
		OutputDir: cfg.OutputDir,
		sink:      sink,
	}, nil
}

// OutputPath returns the path of name inside the output directory
func (s *Session) OutputPath(name string) string {
	return filepath.Join(s.OutputDir, name)
}

// SaveReport writes data in format to name inside the output directory.
func (s *Session) SaveReport(name, format string, data []record.Record) (err error) {
	path := s.OutputPath(name)
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err = report.CreateReport(f, format, false, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.Logger.Info("Report saved",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("records", len(data)))
	return nil
}

// Close flushes the logger and releases the log file.
func (s *Session) Close() error {
	_ = s.Logger.Sync()
	return s.sink.Close()
}
