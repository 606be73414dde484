package cache

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
)

// fixedGenerator всегда отдает n и считает вызовы
func fixedGenerator(n int, calls *int) Generator {
	return func(domain.Cell) int {
		if calls != nil {
			*calls++
		}
		return n
	}
}

func TestLuckGenerator_Deterministic(t *testing.T) {
	gen := LuckGenerator(domain.DefaultMaxInitialTokens)

	for i := -10; i < 10; i++ {
		for j := -10; j < 10; j++ {
			c := domain.Cell{I: i, J: j}
			a, b := gen(c), gen(c)
			if a != b {
				t.Fatalf("generator not deterministic for %v: %d vs %d", c, a, b)
			}
			if a < 0 || a >= domain.DefaultMaxInitialTokens {
				t.Fatalf("generator out of range for %v: %d", c, a)
			}
		}
	}
}

func TestProceduralFill_Deterministic(t *testing.T) {
	cell := domain.Cell{I: 12, J: -7}

	first := NewStore(LuckGenerator(4)).Materialize(cell)
	second := NewStore(LuckGenerator(4)).Materialize(cell)

	if !slices.Equal(first.Tokens, second.Tokens) {
		t.Errorf("same cell produced different pits: %v vs %v", first.Tokens, second.Tokens)
	}
	for serial, tok := range first.Tokens {
		want := domain.Token{OwnerI: 12, OwnerJ: -7, Serial: serial}
		if tok != want {
			t.Errorf("token %d = %v, want %v", serial, tok, want)
		}
	}
}

func TestStore_WithdrawLIFOScenario(t *testing.T) {
	cell := domain.Cell{I: 5, J: 5}
	store := NewStore(fixedGenerator(3, nil), WithStrict(true))
	player := domain.NewInventory(nil)

	pit := store.Materialize(cell)
	want := []domain.Token{{OwnerI: 5, OwnerJ: 5, Serial: 0}, {OwnerI: 5, OwnerJ: 5, Serial: 1}, {OwnerI: 5, OwnerJ: 5, Serial: 2}}
	if !slices.Equal(pit.Tokens, want) {
		t.Fatalf("initial pit = %v, want %v", pit.Tokens, want)
	}

	got, ok := store.Withdraw(cell, player)
	if !ok || got != (domain.Token{OwnerI: 5, OwnerJ: 5, Serial: 2}) {
		t.Fatalf("Withdraw = %v, %v; want 5:5#2", got, ok)
	}

	// Экспорт -> новый стор -> импорт
	exported := store.SnapshotAll()
	var calls int
	restoredStore := NewStore(fixedGenerator(3, &calls), WithStrict(true))
	restored, dropped := restoredStore.RestoreAll(exported)
	if restored != 1 || dropped != 0 {
		t.Fatalf("RestoreAll = (%d, %d), want (1, 0)", restored, dropped)
	}

	again := restoredStore.Materialize(cell)
	if !slices.Equal(again.Tokens, want[:2]) {
		t.Errorf("restored pit = %v, want %v", again.Tokens, want[:2])
	}
	if calls != 0 {
		t.Errorf("generator called %d times after restore", calls)
	}
}

func TestStore_RestoreBeforeAccess(t *testing.T) {
	var calls int
	store := NewStore(fixedGenerator(3, &calls), WithStrict(true))

	memento, _ := ToMemento([]domain.Token{{OwnerI: 9, OwnerJ: 9, Serial: 4}})
	store.RestoreAll([]domain.Memento{{CellKey: "2,3", SerializedTokens: memento}})

	pit := store.Materialize(domain.Cell{I: 2, J: 3})
	if calls != 0 {
		t.Errorf("generator must not run for a restored cell, ran %d times", calls)
	}
	if len(pit.Tokens) != 1 || pit.Tokens[0] != (domain.Token{OwnerI: 9, OwnerJ: 9, Serial: 4}) {
		t.Errorf("restored contents changed: %v", pit.Tokens)
	}
}

func TestStore_WithdrawEmptyPit(t *testing.T) {
	store := NewStore(fixedGenerator(0, nil), WithStrict(true))
	player := domain.NewInventory([]domain.Token{{OwnerI: 1, OwnerJ: 1, Serial: 0}})
	cell := domain.Cell{I: 0, J: 0}

	if _, ok := store.Withdraw(cell, player); ok {
		t.Error("Withdraw from an empty pit must report false")
	}
	if player.Len() != 1 {
		t.Errorf("player inventory changed: %v", player.Tokens())
	}
	if !store.Has(cell) {
		t.Error("empty pit is still a materialized pit")
	}
}

func TestStore_DepositKeepsIdentity(t *testing.T) {
	store := NewStore(fixedGenerator(1, nil), WithStrict(true))
	foreign := domain.Token{OwnerI: 40, OwnerJ: 41, Serial: 7}
	player := domain.NewInventory([]domain.Token{foreign})
	cell := domain.Cell{I: 1, J: 2}

	if !store.Deposit(cell, foreign, player) {
		t.Fatal("Deposit returned false")
	}
	if player.Len() != 0 {
		t.Error("token must leave the player inventory")
	}

	pit := store.Materialize(cell)
	want := []domain.Token{{OwnerI: 1, OwnerJ: 2, Serial: 0}, foreign}
	if !slices.Equal(pit.Tokens, want) {
		t.Errorf("pit = %v, want %v (generator baseline + deposit)", pit.Tokens, want)
	}

	// Memento тоже содержит baseline + deposit
	tokens, err := FromMemento(store.SnapshotAll()[0].SerializedTokens)
	if err != nil || !slices.Equal(tokens, want) {
		t.Errorf("memento = %v (%v), want %v", tokens, err, want)
	}
}

func TestStore_DepositWithoutToken(t *testing.T) {
	var calls int
	store := NewStore(fixedGenerator(2, &calls), WithStrict(true))
	player := domain.NewInventory(nil)
	cell := domain.Cell{I: 3, J: 3}

	if store.Deposit(cell, domain.Token{OwnerI: 1, OwnerJ: 1, Serial: 0}, player) {
		t.Error("Deposit without the token in hand must fail")
	}
	if store.Has(cell) || calls != 0 {
		t.Error("failed deposit must not touch the pit")
	}
}

func TestStore_EvictionKeepsHistory(t *testing.T) {
	store := NewStore(fixedGenerator(3, nil), WithStrict(true))
	player := domain.NewInventory(nil)
	a := domain.Cell{I: 0, J: 0}
	b := domain.Cell{I: 0, J: 1}

	store.Withdraw(a, player)
	store.Materialize(b)

	if n := store.EvictExcept([]domain.Cell{b}); n != 1 {
		t.Errorf("EvictExcept evicted %d pits, want 1", n)
	}
	if store.IsLive(a) || !store.IsLive(b) {
		t.Error("only cell a must be evicted")
	}
	if !store.Has(a) {
		t.Error("memento must survive eviction")
	}

	// Peek не поднимает яму в память
	peeked, ok := store.Peek(a)
	if !ok || len(peeked.Tokens) != 2 || store.IsLive(a) {
		t.Errorf("Peek = %v, %v; live=%v", peeked, ok, store.IsLive(a))
	}

	pit := store.Materialize(a)
	if len(pit.Tokens) != 2 {
		t.Errorf("rehydrated pit has %d tokens, want 2", len(pit.Tokens))
	}
}

func TestStore_RestoreDropsCorrupt(t *testing.T) {
	var calls int
	store := NewStore(fixedGenerator(2, &calls), WithStrict(true))
	good, _ := ToMemento([]domain.Token{{OwnerI: 0, OwnerJ: 0, Serial: 0}})
	five, _ := ToMemento([]domain.Token{{OwnerI: 5, OwnerJ: 5, Serial: 0}})

	restored, dropped := store.RestoreAll([]domain.Memento{
		{CellKey: "0,0", SerializedTokens: good},
		{CellKey: "1,1", SerializedTokens: "{broken"},
		{CellKey: "bad-key", SerializedTokens: good},
		{CellKey: "05,+5", SerializedTokens: five},
	})
	if restored != 1 || dropped != 3 {
		t.Fatalf("RestoreAll = (%d, %d), want (1, 3)", restored, dropped)
	}

	// Битая клетка снова Unknown -> генератор
	pit := store.Materialize(domain.Cell{I: 1, J: 1})
	if calls != 1 || len(pit.Tokens) != 2 {
		t.Errorf("corrupt cell must be regenerated: calls=%d tokens=%v", calls, pit.Tokens)
	}

	// Запись под неканоническим ключом не должна дублировать монеты клетки
	pit = store.Materialize(domain.Cell{I: 5, J: 5})
	if calls != 2 || len(pit.Tokens) != 2 {
		t.Errorf("cell 5,5: calls=%d tokens=%v", calls, pit.Tokens)
	}
	for _, m := range store.SnapshotAll() {
		if m.CellKey == "05,+5" {
			t.Errorf("non-canonical key exported: %+v", m)
		}
	}
}

func TestStore_SnapshotAllSorted(t *testing.T) {
	store := NewStore(fixedGenerator(1, nil))
	for _, c := range []domain.Cell{{I: 2, J: 0}, {I: -1, J: 5}, {I: 0, J: 0}} {
		store.Materialize(c)
	}

	snap := store.SnapshotAll()
	if len(snap) != 3 {
		t.Fatalf("SnapshotAll returned %d mementos", len(snap))
	}
	for i := 1; i < len(snap); i++ {
		if snap[i-1].CellKey >= snap[i].CellKey {
			t.Errorf("mementos not sorted: %q before %q", snap[i-1].CellKey, snap[i].CellKey)
		}
	}
}

func TestStore_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(121))
	store := NewStore(LuckGenerator(4), WithStrict(true))
	player := domain.NewInventory(nil)
	cells := []domain.Cell{{I: 0, J: 0}, {I: 1, J: 0}, {I: 0, J: 1}, {I: 7, J: -3}}

	// Ямы создаются заранее: дальше монеты только перекладываются
	for _, c := range cells {
		store.Materialize(c)
	}
	before := census(store, cells, player)

	for step := 0; step < 500; step++ {
		c := cells[rng.Intn(len(cells))]
		if rng.Intn(2) == 0 {
			store.Withdraw(c, player)
		} else if top, ok := player.Peek(); ok {
			store.Deposit(c, top, player)
		}
		if step%50 == 0 {
			store.EvictExcept(cells[:rng.Intn(len(cells))])
		}
	}

	after := census(store, cells, player)
	if len(before) != len(after) {
		t.Fatalf("token count changed: %d -> %d", len(before), len(after))
	}
	for tok, n := range before {
		if after[tok] != n {
			t.Errorf("token %v count changed: %d -> %d", tok, n, after[tok])
		}
	}
}

func census(store *Store, cells []domain.Cell, player *domain.Inventory) map[domain.Token]int {
	out := make(map[domain.Token]int)
	for _, c := range cells {
		pit, _ := store.Peek(c)
		for _, tok := range pit.Tokens {
			out[tok]++
		}
	}
	for _, tok := range player.Tokens() {
		out[tok]++
	}
	return out
}

func TestStore_Reset(t *testing.T) {
	store := NewStore(fixedGenerator(1, nil))
	store.Materialize(domain.Cell{I: 0, J: 0})
	store.Reset()

	if store.Len() != 0 || store.LiveCount() != 0 {
		t.Errorf("Reset left %d mementos and %d live pits", store.Len(), store.LiveCount())
	}
}
