package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove    // шаг на одну клетку (кнопки N/S/E/W)
	ActionLocate  // замер геолокации
	ActionCollect // забрать монету из ямы
	ActionDeposit // положить монету в яму
	ActionReset
	ActionTeleport // debug: прыжок в центр клетки
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":     ActionInit,
	"MOVE":     ActionMove,
	"LOCATE":   ActionLocate,
	"COLLECT":  ActionCollect,
	"DEPOSIT":  ActionDeposit,
	"RESET":    ActionReset,
	"TELEPORT": ActionTeleport,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:     "INIT",
	ActionMove:     "MOVE",
	ActionLocate:   "LOCATE",
	ActionCollect:  "COLLECT",
	ActionDeposit:  "DEPOSIT",
	ActionReset:    "RESET",
	ActionTeleport: "TELEPORT",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
