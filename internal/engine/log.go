package engine

import (
	"fmt"
	"time"

	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/api"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AddLog добавляет сообщение в буфер, который уйдет клиентам со следующим UPDATE
func (s *GameService) AddLog(text, logType string) {
	s.logs = append(s.logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", s.tick, time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"tick":      s.tick,
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)
}

func (s *GameService) drainLogs() []api.LogEntry {
	logs := s.logs
	s.logs = nil
	return logs
}
