package domain

// SessionState - всё, что переживает перезапуск: три блоба сессии в разобранном виде.
type SessionState struct {
	Mementos  []Memento
	Inventory []Token
	Trail     []LatLng
}
