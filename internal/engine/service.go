package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine/handlers"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine/handlers/actions"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine/handlers/admin"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/network"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/api"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ErrStopped возвращается, если цикл уже остановлен.
var ErrStopped = errors.New("game service stopped")

// SessionStore - куда сохраняется сессия между запусками.
// storage.SessionRepository реализует этот интерфейс.
type SessionStore interface {
	Save(ctx context.Context, state domain.SessionState) error
	Load(ctx context.Context) (domain.SessionState, error)
	Clear(ctx context.Context) error
}

type inspectRequest struct {
	fn   func(*World)
	done chan struct{}
}

// GameService крутит единственную горутину, которая владеет World.
// Команды от клиентов приходят через CommandChan, ответы уходят через Hub.
type GameService struct {
	World *World
	Hub   *network.Broadcaster

	CommandChan chan domain.InternalCommand

	store    SessionStore
	handlers map[domain.ActionType]handlers.HandlerFunc
	inspect  chan inspectRequest

	tick int
	logs []api.LogEntry

	autosave time.Duration
	dirty    bool

	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewService создает сервис. store может быть nil - тогда сессия не сохраняется.
func NewService(cfg Config, store SessionStore) (*GameService, error) {
	world, err := NewWorld(cfg)
	if err != nil {
		return nil, err
	}

	s := &GameService{
		World:       world,
		Hub:         network.NewBroadcaster(),
		CommandChan: make(chan domain.InternalCommand, 100),
		store:       store,
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		inspect:     make(chan inspectRequest),
		autosave:    cfg.AutosaveInterval,
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}

	s.registerHandlers()
	return s, nil
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionLocate] = handlers.WithPayload(actions.HandleLocate)
	s.handlers[domain.ActionCollect] = handlers.WithPayload(actions.HandleCollect)
	s.handlers[domain.ActionDeposit] = handlers.WithPayload(actions.HandleDeposit)
	s.handlers[domain.ActionReset] = handlers.WithEmptyPayload(actions.HandleReset)
	s.handlers[domain.ActionTeleport] = handlers.WithPayload(admin.HandleTeleport)
}

// Load поднимает сохраненную сессию. Вызывать до Start.
func (s *GameService) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	state, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	return s.World.Restore(state)
}

// Start ставит игрока на карту и запускает игровой цикл.
func (s *GameService) Start(ctx context.Context) {
	s.World.Start()
	ctx, s.cancel = context.WithCancel(ctx)
	go s.RunGameLoop(ctx)
}

// Stop останавливает цикл и ждет финального сохранения.
func (s *GameService) Stop() {
	if s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
	<-s.stopped
}

// Done закрывается, когда цикл завершился.
func (s *GameService) Done() <-chan struct{} {
	return s.stopped
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Token уже проставлен сервером - это ID соединения.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		logger.Log.WithField("action", externalCmd.Action).Warn("Unknown action")
		s.Hub.SendTo(externalCmd.Token, api.ServerResponse{
			Type:      "ERROR",
			SessionID: externalCmd.Token,
			Logs: []api.LogEntry{{
				ID:        "unknown_action",
				Text:      "Unknown action: " + externalCmd.Action,
				Type:      "ERROR",
				Timestamp: time.Now().UnixMilli(),
			}},
		})
		return
	}

	select {
	case s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}:
	case <-s.done:
	}
}

// Inspect выполняет fn внутри игрового цикла. Так отладочные ручки читают World без гонок.
func (s *GameService) Inspect(ctx context.Context, fn func(*World)) error {
	req := inspectRequest{fn: fn, done: make(chan struct{})}
	select {
	case s.inspect <- req:
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// --- GAME LOOP ---

func (s *GameService) RunGameLoop(ctx context.Context) {
	logger.Log.Info("Game Loop started")
	defer close(s.stopped)

	var autosave <-chan time.Time
	if s.autosave > 0 && s.store != nil {
		ticker := time.NewTicker(s.autosave)
		defer ticker.Stop()
		autosave = ticker.C
	}

	for {
		select {
		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)

		case req := <-s.inspect:
			req.fn(s.World)
			close(req.done)

		case <-autosave:
			if s.dirty {
				s.save(ctx)
			}

		case <-ctx.Done():
			close(s.done)
			// Контекст цикла уже отменен, сохраняем на свежем
			s.save(context.Background())
			logger.Log.Info("Game Loop stopped")
			return
		}
	}
}

// executeCommand выполняет хендлер, пишет логи и рассылает обновление
func (s *GameService) executeCommand(cmd domain.InternalCommand) {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}
	s.tick++

	ctx := handlers.Context{
		Game:      s.World,
		SessionID: cmd.Token,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"action":  cmd.Action.String(),
			"session": cmd.Token,
		}).WithError(err).Warn("command rejected")
		s.sendError(cmd.Token, err.Error())
		return
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		s.AddLog(result.Msg, msgType)
	}

	if cmd.Action != domain.ActionInit {
		s.dirty = true
	}
	if cmd.Action == domain.ActionReset {
		s.clearStore()
	}

	s.publishUpdate()
}

// publishUpdate рассылает состояние всем подключенным клиентам.
// Игрок один, поэтому снимок общий, отличается только SessionID.
func (s *GameService) publishUpdate() {
	state := s.World.BuildState()
	state.Tick = s.tick
	state.Logs = s.drainLogs()

	for _, id := range s.Hub.Subscribers() {
		msg := *state
		msg.SessionID = id
		s.Hub.SendTo(id, msg)
	}
}

func (s *GameService) sendError(sessionID, text string) {
	s.AddLog(text, "ERROR")
	s.Hub.SendTo(sessionID, api.ServerResponse{
		Type:      "ERROR",
		Tick:      s.tick,
		SessionID: sessionID,
		Logs:      s.drainLogs(),
	})
}

func (s *GameService) save(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.World.Snapshot()); err != nil {
		logger.Log.WithError(err).Error("failed to save session")
		return
	}
	s.dirty = false
	logger.Log.WithField("tick", s.tick).Debug("session saved")
}

func (s *GameService) clearStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Clear(context.Background()); err != nil {
		logger.Log.WithError(err).Error("failed to clear saved session")
	}
}
