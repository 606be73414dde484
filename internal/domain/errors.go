package domain

import "errors"

var (
	// ErrConfiguration - неверные параметры при создании (cellSize <= 0 и т.п.). Не восстанавливается.
	ErrConfiguration = errors.New("configuration error")

	// ErrMalformedMemento - сохраненный blob не разбирается в последовательность монет.
	ErrMalformedMemento = errors.New("malformed memento")
)

// ErrNotVisible - в клетке нет ямы, видимой игроку. Команда отклоняется, но это не сбой.
var ErrNotVisible = errors.New("no visible pit at this cell")

// ErrOutOfRange - клетка лежит за пределами широты [-90, 90] или долготы [-180, 180].
var ErrOutOfRange = errors.New("cell out of lat/lng range")
