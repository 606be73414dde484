package domain

// Параметры мира по умолчанию
const (
	DefaultCellSize         = 1e-4 // градусы на клетку
	DefaultVisibilityRadius = 8    // полуширина видимой окрестности
	DefaultMaxInitialTokens = 4    // генератор дает [0, 4) монет
	DefaultSpawnProbability = 0.1  // доля клеток с ямами
)

// Стартовая точка игрока (Merrill College classroom)
const (
	OriginLat = 36.9995
	OriginLng = -122.0533
)

// Ключи генератора удачи
const (
	LuckInitialValue = "initialValue"
)

// Ключи блобов сессии во внешнем хранилище
const (
	BlobMementos        = "mementos"
	BlobPlayerInventory = "playerInventory"
	BlobTrail           = "trail"
)
