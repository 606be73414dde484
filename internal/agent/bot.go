package agent

import (
	"context"
	"encoding/json"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/api"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
	"github.com/sirupsen/logrus"
)

// PocketSize - сколько монет бот носит, прежде чем начать их раскладывать.
const PocketSize = 10

// Bot - "игрок-компьютер" (Headless Agent).
// Подключается к хабу как обычный клиент, получает UPDATE и отвечает одной командой на каждый.
//
// Стратегия простая:
//  1. Есть место в карманах и видна яма с монетами - COLLECT.
//  2. Карманы полны и видна пустая яма - DEPOSIT.
//  3. Иначе шаг на восток.
type Bot struct {
	SessionID string
	Service   *engine.GameService
	Inbox     chan api.ServerResponse
	MaxSteps  int

	Steps     int
	Collected int
	Deposited int
	Errors    int
}

func NewBot(sessionID string, service *engine.GameService, maxSteps int) *Bot {
	logger.Log.WithField("session", sessionID).Info("[BOT] Creating agent")
	return &Bot{
		SessionID: sessionID,
		Service:   service,
		Inbox:     service.Hub.Register(sessionID),
		MaxSteps:  maxSteps,
	}
}

// Run крутит бота до MaxSteps команд или отмены ctx. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Service.Hub.Unregister(b.SessionID)

	b.sendCommand(domain.ActionInit, nil)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-b.Inbox:
			if !ok {
				return
			}
			if event.SessionID != b.SessionID {
				continue
			}
			if b.Steps >= b.MaxSteps {
				logger.Log.WithFields(logrus.Fields{
					"session":   b.SessionID,
					"collected": b.Collected,
					"deposited": b.Deposited,
				}).Info("[BOT] Agent finished")
				return
			}
			b.makeMove(event)
		}
	}
}

// makeMove - мозг бота.
func (b *Bot) makeMove(state api.ServerResponse) {
	b.Steps++

	if state.Type == "ERROR" || state.Player == nil {
		b.Errors++
		b.sendMove(0, 1)
		return
	}

	points := state.Player.Points
	if points < PocketSize {
		if pit, ok := findPit(state.Pits, true); ok {
			b.Collected++
			b.sendCommand(domain.ActionCollect, api.CellPayload{I: pit.Cell.I, J: pit.Cell.J})
			return
		}
	}
	if points >= PocketSize {
		if pit, ok := findPit(state.Pits, false); ok {
			b.Deposited++
			b.sendCommand(domain.ActionDeposit, api.CellPayload{I: pit.Cell.I, J: pit.Cell.J})
			return
		}
	}

	b.sendMove(0, 1)
}

// findPit ищет первую яму с монетами (full) или без них
func findPit(pits []api.PitView, full bool) (api.PitView, bool) {
	for _, p := range pits {
		if (len(p.Tokens) > 0) == full {
			return p, true
		}
	}
	return api.PitView{}, false
}

// --- Хелперы для отправки команд на сервер ---

func (b *Bot) sendCommand(action domain.ActionType, payload interface{}) {
	var raw json.RawMessage
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			logger.Log.WithError(err).WithField("session", b.SessionID).Error("[BOT] Error marshalling payload")
			return
		}
		raw = payloadBytes
	}

	b.Service.ProcessCommand(api.ClientCommand{
		Action:  action.String(),
		Payload: raw,
		Token:   b.SessionID,
	})
}

func (b *Bot) sendMove(di, dj int) {
	b.sendCommand(domain.ActionMove, api.StepPayload{Di: di, Dj: dj})
}
