package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func Logger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetOutput(os.Stdout)
	logg.SetLevel(logrus.InfoLevel)
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logg.SetLevel(lvl)
	}
}

// LogError records a structured error with the module/function that hit it.
func LogError(module, funcName string, err error, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["module"] = module
	fields["funcName"] = funcName
	logg.WithFields(fields).Error(err.Error())
}
