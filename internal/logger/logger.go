package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log глобальный логгер приложения. До вызова Init пишет текстом с уровнем info,
// поэтому пакеты и тесты логируют без явной инициализации.
var Log = logrus.New()

// Options параметры логгера.
type Options struct {
	Level string
	// JSON включает JSON формат, иначе текст с полными метками времени.
	JSON   bool
	Output io.Writer
}

// ForEnv возвращает настройки по окружению: debug и текст в development, info и JSON в остальных.
func ForEnv(env string) Options {
	if env == "development" {
		return Options{Level: "debug"}
	}
	return Options{Level: "info", JSON: true}
}

// Init пересоздаёт глобальный логгер.
func Init(opts Options) {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	Log = l
}
