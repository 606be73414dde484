package main

import (
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
	"github.com/spf13/pflag"
)

// bind привязывает флаг к ключу viper. Незаданный флаг не перекрывает файл и окружение.
func (a *app) bind(flag *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		logger.Log.WithError(err).WithField("key", key).Fatal("failed to bind flag")
	}
}
