package handlers

import (
	"encoding/json"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
)

// Game описывает операции мира, доступные хендлерам.
// engine.World неявно реализует этот интерфейс.
type Game interface {
	Step(di, dj int) bool
	MoveTo(lat, lng float64) bool
	Collect(i, j int) (domain.Token, bool, error)
	Deposit(i, j int) (domain.Token, bool, error)
	Teleport(i, j int) (bool, error)
	Reset()
	Points() int
}

// Context передает хендлеру состояние мира.
type Context struct {
	Game      Game
	SessionID string // Кто прислал команду
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, ERROR)
}

// HandlerFunc - это контракт для любой команды (MOVE, COLLECT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Info и Fail - короткие конструкторы результата
func Info(msg string) Result {
	return Result{Msg: msg, MsgType: "INFO"}
}

func Fail(msg string) Result {
	return Result{Msg: msg, MsgType: "ERROR"}
}
