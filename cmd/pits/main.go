package main

import (
	"os"

	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
