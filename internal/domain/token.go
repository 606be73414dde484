package domain

import "fmt"

// Token - коллекционная монета.
// (OwnerI, OwnerJ) - клетка, где монета была отчеканена, Serial - номер внутри клетки.
// Тройка уникальна и никогда не меняется: при переносе между ямой и игроком
// монета переезжает целиком, без перечеканки.
type Token struct {
	OwnerI int `json:"i"`
	OwnerJ int `json:"j"`
	Serial int `json:"serial"`
}

// String для логов и кнопок клиента: "i:j#serial"
func (t Token) String() string {
	return fmt.Sprintf("%d:%d#%d", t.OwnerI, t.OwnerJ, t.Serial)
}

// Inventory - стек монет (LIFO). Используется и для ямы, и для игрока.
type Inventory struct {
	items []Token
}

// NewInventory создает инвентарь из готовой последовательности (копирует её).
func NewInventory(tokens []Token) *Inventory {
	inv := &Inventory{}
	inv.items = append(inv.items, tokens...)
	return inv
}

// Push кладет монету наверх стека.
func (inv *Inventory) Push(t Token) {
	inv.items = append(inv.items, t)
}

// Pop снимает верхнюю монету. false - если стек пуст.
func (inv *Inventory) Pop() (Token, bool) {
	if inv == nil || len(inv.items) == 0 {
		return Token{}, false
	}
	last := len(inv.items) - 1
	t := inv.items[last]
	inv.items = inv.items[:last]
	return t, true
}

// Peek возвращает верхнюю монету, не снимая её.
func (inv *Inventory) Peek() (Token, bool) {
	if inv == nil || len(inv.items) == 0 {
		return Token{}, false
	}
	return inv.items[len(inv.items)-1], true
}

// Remove удаляет конкретную монету. Ищем с вершины: обычно это она и есть.
func (inv *Inventory) Remove(t Token) bool {
	if inv == nil {
		return false
	}
	for i := len(inv.items) - 1; i >= 0; i-- {
		if inv.items[i] == t {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains проверяет наличие монеты.
func (inv *Inventory) Contains(t Token) bool {
	if inv == nil {
		return false
	}
	for _, item := range inv.items {
		if item == t {
			return true
		}
	}
	return false
}

func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.items)
}

// Tokens возвращает копию содержимого (снизу вверх).
func (inv *Inventory) Tokens() []Token {
	if inv == nil {
		return nil
	}
	out := make([]Token, len(inv.items))
	copy(out, inv.items)
	return out
}

// Clear очищает инвентарь.
func (inv *Inventory) Clear() {
	inv.items = inv.items[:0]
}
