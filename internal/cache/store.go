package cache

import (
	"fmt"
	"math"
	"sort"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Generator решает, сколько монет лежит в яме при первом посещении клетки.
// Должен быть детерминированным: одна клетка -> одно число.
type Generator func(cell domain.Cell) int

// LuckGenerator - генератор по умолчанию: floor(luck("i,j,initialValue") * maxInitial).
func LuckGenerator(maxInitial int) Generator {
	return func(cell domain.Cell) int {
		key := utils.LuckKey(cell.I, cell.J, domain.LuckInitialValue)
		return int(math.Floor(utils.Luck(key) * float64(maxInitial)))
	}
}

// Store - разреженное хранилище ям.
//
// Для каждой клетки:
//   - нет memento -> Unknown, первое обращение заполняет яму генератором;
//   - есть memento -> Materialized, яма поднимается из memento (генератор больше не участвует);
//   - live-копия может быть выгружена (Evict), memento при этом остается.
//
// Store не потокобезопасен: всё вызывается из одной горутины движка.
type Store struct {
	generate Generator
	strict   bool

	mementos map[string]domain.Memento
	live     map[string]*domain.PitState
}

// Option настраивает Store.
type Option func(*Store)

// WithStrict: нарушение инварианта -> panic (тесты, debug-сборки). Иначе только лог.
func WithStrict(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

func NewStore(gen Generator, opts ...Option) *Store {
	s := &Store{
		generate: gen,
		mementos: make(map[string]domain.Memento),
		live:     make(map[string]*domain.PitState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Materialize возвращает содержимое ямы, создавая её при первом обращении.
func (s *Store) Materialize(cell domain.Cell) domain.PitSnapshot {
	return s.materialize(cell).Snapshot()
}

// Withdraw снимает верхнюю монету ямы и кладет игроку.
// Пустая яма - нормальное состояние: (Token{}, false), ничего не меняется.
func (s *Store) Withdraw(cell domain.Cell, player *domain.Inventory) (domain.Token, bool) {
	pit := s.materialize(cell)

	token, ok := pit.Tokens.Pop()
	if !ok {
		return domain.Token{}, false
	}
	player.Push(token)
	s.save(pit)

	logger.Log.WithFields(logrus.Fields{
		"cell":  pit.CellKey,
		"token": token.String(),
	}).Debug("token withdrawn")
	return token, true
}

// Deposit переносит token из инвентаря игрока в яму без перечеканки.
// Если у игрока такой монеты нет - false, ничего не меняется.
// Неизвестная клетка сначала заполняется генератором, и только потом принимает монету.
func (s *Store) Deposit(cell domain.Cell, token domain.Token, player *domain.Inventory) bool {
	if !player.Contains(token) {
		return false
	}

	pit := s.materialize(cell)
	if !player.Remove(token) {
		s.invariant("token vanished from player inventory", logrus.Fields{"token": token.String()})
		return false
	}
	pit.Tokens.Push(token)
	s.save(pit)

	logger.Log.WithFields(logrus.Fields{
		"cell":  pit.CellKey,
		"token": token.String(),
	}).Debug("token deposited")
	return true
}

// Peek отдает содержимое ямы, ничего не создавая. false - клетка еще Unknown.
func (s *Store) Peek(cell domain.Cell) (domain.PitSnapshot, bool) {
	key := cell.Key()
	if pit, ok := s.live[key]; ok {
		return pit.Snapshot(), true
	}
	m, ok := s.mementos[key]
	if !ok {
		return domain.PitSnapshot{}, false
	}
	tokens, err := FromMemento(m.SerializedTokens)
	if err != nil {
		return domain.PitSnapshot{}, false
	}
	return domain.PitSnapshot{CellKey: key, Tokens: tokens}, true
}

// Has - есть ли memento для клетки (Materialized).
func (s *Store) Has(cell domain.Cell) bool {
	_, ok := s.mementos[cell.Key()]
	return ok
}

// IsLive - загружена ли яма в память.
func (s *Store) IsLive(cell domain.Cell) bool {
	_, ok := s.live[cell.Key()]
	return ok
}

// EvictExcept выгружает из памяти все ямы, кроме visible. Memento остаются.
func (s *Store) EvictExcept(visible []domain.Cell) int {
	keep := make(map[string]bool, len(visible))
	for _, c := range visible {
		keep[c.Key()] = true
	}

	evicted := 0
	for key := range s.live {
		if keep[key] {
			continue
		}
		if _, ok := s.mementos[key]; !ok {
			s.invariant("live pit without memento", logrus.Fields{"cell": key})
			continue
		}
		delete(s.live, key)
		evicted++
	}
	return evicted
}

// SnapshotAll выгружает все memento, отсортированные по ключу клетки.
func (s *Store) SnapshotAll() []domain.Memento {
	keys := make([]string, 0, len(s.mementos))
	for key := range s.mementos {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]domain.Memento, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.mementos[key])
	}
	return out
}

// RestoreAll загружает memento из прошлой сессии.
// Битые записи пишутся в лог и отбрасываются: такая клетка снова станет Unknown.
func (s *Store) RestoreAll(mementos []domain.Memento) (restored, dropped int) {
	for _, m := range mementos {
		if _, err := FromMemento(m.SerializedTokens); err != nil {
			logger.Log.WithError(err).WithField("cell", m.CellKey).Warn("dropping corrupt memento")
			dropped++
			continue
		}
		cell, err := domain.ParseCellKey(m.CellKey)
		if err != nil {
			logger.Log.WithError(err).WithField("cell", m.CellKey).Warn("dropping memento with bad cell key")
			dropped++
			continue
		}
		// Поиск идет по cell.Key(), иначе запись станет недостижимой
		if cell.Key() != m.CellKey {
			logger.Log.WithField("cell", m.CellKey).Warn("dropping memento with non-canonical cell key")
			dropped++
			continue
		}

		s.mementos[m.CellKey] = m
		// Живая копия устарела - следующее обращение поднимет яму из memento
		delete(s.live, m.CellKey)
		restored++
	}
	return restored, dropped
}

// Reset забывает все ямы.
func (s *Store) Reset() {
	s.mementos = make(map[string]domain.Memento)
	s.live = make(map[string]*domain.PitState)
}

// Len - количество ям с memento.
func (s *Store) Len() int {
	return len(s.mementos)
}

// LiveCount - количество ям в памяти.
func (s *Store) LiveCount() int {
	return len(s.live)
}

func (s *Store) materialize(cell domain.Cell) *domain.PitState {
	key := cell.Key()

	// 1. Уже в памяти
	if pit, ok := s.live[key]; ok {
		return pit
	}

	// 2. Есть memento - поднимаем из него
	if m, ok := s.mementos[key]; ok {
		tokens, err := FromMemento(m.SerializedTokens)
		if err == nil {
			pit := &domain.PitState{CellKey: key, Tokens: domain.NewInventory(tokens)}
			s.live[key] = pit
			return pit
		}
		logger.Log.WithError(err).WithField("cell", key).Warn("corrupt memento, regenerating pit")
		delete(s.mementos, key)
	}

	// 3. Первое посещение - генератор
	pit := s.fill(cell)
	s.live[key] = pit
	s.save(pit)
	return pit
}

func (s *Store) fill(cell domain.Cell) *domain.PitState {
	n := 0
	if s.generate != nil {
		n = s.generate(cell)
	}
	if n < 0 {
		n = 0
	}

	tokens := make([]domain.Token, n)
	for serial := range tokens {
		tokens[serial] = domain.Token{OwnerI: cell.I, OwnerJ: cell.J, Serial: serial}
	}

	logger.Log.WithFields(logrus.Fields{
		"cell":   cell.Key(),
		"tokens": n,
	}).Debug("pit generated")

	return &domain.PitState{CellKey: cell.Key(), Tokens: domain.NewInventory(tokens)}
}

func (s *Store) save(pit *domain.PitState) {
	serialized, err := ToMemento(pit.Tokens.Tokens())
	if err != nil {
		s.invariant(fmt.Sprintf("memento encode failed: %v", err), logrus.Fields{"cell": pit.CellKey})
		return
	}
	s.mementos[pit.CellKey] = domain.Memento{CellKey: pit.CellKey, SerializedTokens: serialized}
}

func (s *Store) invariant(msg string, fields logrus.Fields) {
	if s.strict {
		panic("cache: invariant violated: " + msg)
	}
	logger.Log.WithFields(fields).Error("invariant violated: " + msg)
}
