package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Это полный "снимок" того, что видит игрок: позиция, видимые клетки, ямы и инвентарь.
// Отправляется после каждой обработанной команды.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// Tick порядковый номер обработанной команды. Растет монотонно.
	Tick int `json:"tick"`

	// SessionID ID соединения, которому адресован ответ.
	SessionID string `json:"sessionId,omitempty"`

	// Grid параметры сетки, чтобы клиент мог сам считать прямоугольники.
	Grid *GridMeta `json:"grid,omitempty"`

	// Player состояние игрока.
	Player *PlayerView `json:"player,omitempty"`

	// Cells видимая окрестность, построчно (di снаружи, dj внутри).
	Cells []CellRef `json:"cells,omitempty"`

	// Pits ямы внутри видимой окрестности, в том же порядке.
	Pits []PitView `json:"pits,omitempty"`

	// Logs новые сообщения, сгенерированные командой.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит параметры сетки.
type GridMeta struct {
	CellSize float64 `json:"cellSize"`
	Radius   int     `json:"radius"`
}

// LatLng - точка на карте.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CellRef - адрес клетки.
type CellRef struct {
	I int `json:"i"`
	J int `json:"j"`
}

// BoundsView - прямоугольник клетки для отрисовки.
type BoundsView struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// TokenView - монета. Label готов для кнопки: "i:j#serial".
type TokenView struct {
	I      int    `json:"i"`
	J      int    `json:"j"`
	Serial int    `json:"serial"`
	Label  string `json:"label"`
}

// PitView - одна яма.
type PitView struct {
	Cell   CellRef     `json:"cell"`
	Bounds BoundsView  `json:"bounds"`
	Tokens []TokenView `json:"tokens"`
}

// PlayerView - игрок.
type PlayerView struct {
	Position  LatLng      `json:"position"`
	Cell      CellRef     `json:"cell"`
	Inventory []TokenView `json:"inventory"`
	Points    int         `json:"points"`
	Status    string      `json:"status"` // "No points yet..." / "N points accumulated"
	Trail     []LatLng    `json:"trail"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сессии. Сервер проставляет его сам, клиентское значение игнорируется.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, MOVE, LOCATE, COLLECT, DEPOSIT, RESET.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// StepPayload используется для MOVE: шаг на одну клетку (кнопки ⬆️⬇️⬅️➡️).
type StepPayload struct {
	Di int `json:"di"` // по широте (-1, 0, 1)
	Dj int `json:"dj"` // по долготе (-1, 0, 1)
}

// LocatePayload используется для LOCATE: очередной замер геолокации браузера.
type LocatePayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CellPayload используется для COLLECT и DEPOSIT: в какой яме действуем.
type CellPayload struct {
	I int `json:"i"`
	J int `json:"j"`
}
