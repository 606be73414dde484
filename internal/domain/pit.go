package domain

// PitState - текущее содержимое ямы в клетке.
type PitState struct {
	CellKey string
	Tokens  *Inventory
}

// PitSnapshot - копия ямы только для чтения (для UI и debug).
type PitSnapshot struct {
	CellKey string  `json:"cellKey"`
	Tokens  []Token `json:"tokens"`
}

// Snapshot снимает копию, которую можно отдавать наружу.
func (p *PitState) Snapshot() PitSnapshot {
	return PitSnapshot{CellKey: p.CellKey, Tokens: p.Tokens.Tokens()}
}

// Memento - сериализованный снимок ямы.
// SerializedTokens непрозрачен для всех, кроме cache.FromMemento.
type Memento struct {
	CellKey          string `json:"cellKey"`
	SerializedTokens string `json:"serializedTokens"`
}
