/*
 * Copyright © 2025 Kaleido, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package log

import (
	"context"
	"io"
	"math"
	"os"
	"sync/atomic"
	"time"

	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/confutil"
	"github.com/hiero-ledger/heka-identity-platform-sub002/config/pkg/vdrconf"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// maxFieldLen bounds context fields, so a full DID or schema id is truncated
const maxFieldLen = 61

var (
	rootLogger = logrus.NewEntry(logrus.StandardLogger())

	// L returns the logger carried by the context, or the root logger
	L = fromContext

	configured atomic.Bool
)

type ctxLogKey struct{}

// InitConfig applies the log section of the VDR config to the process-wide logrus logger
func InitConfig(conf *vdrconf.LogConfig) {
	defs := vdrconf.LogDefaults
	configured.Store(true)

	SetLevel(confutil.StringNotEmpty(conf.Level, *defs.Level))
	logrus.SetOutput(outputFor(conf, defs))

	var formatter logrus.Formatter
	timeFormat := confutil.StringNotEmpty(conf.TimeFormat, *defs.TimeFormat)
	disableColor := confutil.Bool(conf.DisableColor, *defs.DisableColor)
	forceColor := confutil.Bool(conf.ForceColor, *defs.ForceColor)
	switch confutil.StringNotEmpty(conf.Format, *defs.Format) {
	case "json":
		formatter = &logrus.JSONFormatter{
			TimestampFormat: timeFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  confutil.StringNotEmpty(conf.JSON.TimestampField, *defs.JSON.TimestampField),
				logrus.FieldKeyLevel: confutil.StringNotEmpty(conf.JSON.LevelField, *defs.JSON.LevelField),
				logrus.FieldKeyMsg:   confutil.StringNotEmpty(conf.JSON.MessageField, *defs.JSON.MessageField),
				logrus.FieldKeyFunc:  confutil.StringNotEmpty(conf.JSON.FuncField, *defs.JSON.FuncField),
				logrus.FieldKeyFile:  confutil.StringNotEmpty(conf.JSON.FileField, *defs.JSON.FileField),
			},
		}
	case "detailed":
		logrus.SetReportCaller(true)
		formatter = &logrus.TextFormatter{
			DisableColors:   disableColor,
			ForceColors:     forceColor,
			TimestampFormat: timeFormat,
			FullTimestamp:   true,
		}
	default:
		formatter = &prefixed.TextFormatter{
			DisableColors:   disableColor,
			ForceColors:     forceColor,
			TimestampFormat: timeFormat,
			ForceFormatting: true,
			FullTimestamp:   true,
		}
	}
	if confutil.Bool(conf.UTC, *defs.UTC) {
		formatter = utcFormatter{formatter}
	}
	logrus.SetFormatter(formatter)
}

func outputFor(conf, defs *vdrconf.LogConfig) io.Writer {
	switch confutil.StringNotEmpty(conf.Output, *defs.Output) {
	case "stdout":
		return os.Stdout
	case "file":
		filename := confutil.StringNotEmpty(conf.File.Filename, *defs.File.Filename)
		rootLogger.Infof("Logs diverted to %s", filename)
		sizeMB := float64(confutil.ByteSize(conf.File.MaxSize, 0, *defs.File.MaxSize)) / (1024 * 1024)
		ageDays := float64(confutil.DurationMin(conf.File.MaxAge, 0, *defs.File.MaxAge)) / float64(24*time.Hour)
		return &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    int(math.Ceil(sizeMB)),
			MaxAge:     int(math.Ceil(ageDays)),
			MaxBackups: confutil.IntMin(conf.File.MaxBackups, 0, *defs.File.MaxBackups),
			Compress:   confutil.Bool(conf.File.Compress, *defs.File.Compress),
		}
	default:
		return os.Stderr
	}
}

type utcFormatter struct {
	logrus.Formatter
}

func (u utcFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return u.Formatter.Format(e)
}

// SetLevel accepts any logrus level name, and falls back to info
func SetLevel(level string) {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		l = logrus.InfoLevel
	}
	logrus.SetLevel(l)
}

func IsDebugEnabled() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

func ensureConfigured() {
	if !configured.Load() {
		InitConfig(&vdrconf.LogConfig{})
	}
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	ensureConfigured()
	return context.WithValue(ctx, ctxLogKey{}, logger)
}

// WithLogField returns a context whose logger carries the field on every line
func WithLogField(ctx context.Context, key, value string) context.Context {
	if len(value) > maxFieldLen {
		value = value[:maxFieldLen] + "..."
	}
	return WithLogger(ctx, fromContext(ctx).WithField(key, value))
}

func fromContext(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(ctxLogKey{}).(*logrus.Entry); ok {
		return logger
	}
	return rootLogger
}
