package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
)

const (
	MagicHeader string = `PITM` // 4 байта
	Version1    uint32 = 1

	maxKeyLen  = math.MaxUint16
	maxDataLen = 1 << 20 // 1 МБ на одну яму - с запасом
)

// MementoFileHeader - заголовок блоба mementos.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type MementoFileHeader struct {
	Magic   [4]byte // 4 байта
	Version uint32  // 4 байта
	Count   uint32  // 4 байта
}

// EntryHeader - заголовок каждой записи memento.
type EntryHeader struct {
	KeyLen  uint16 // 2
	DataLen uint32 // 4
}

// EncodeMementos упаковывает mementos в бинарный блоб.
func EncodeMementos(mementos []domain.Memento) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, mementos); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBinary(w io.Writer, mementos []domain.Memento) error {
	// 1. Глобальный заголовок
	header := MementoFileHeader{
		Version: Version1,
		Count:   uint32(len(mementos)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Записи
	for _, m := range mementos {
		keyBytes := []byte(m.CellKey)
		if len(keyBytes) > maxKeyLen {
			return fmt.Errorf("cell key too long: %d", len(keyBytes))
		}
		dataBytes := []byte(m.SerializedTokens)
		if len(dataBytes) > maxDataLen {
			return fmt.Errorf("memento %s too long: %d", m.CellKey, len(dataBytes))
		}

		entry := EntryHeader{
			KeyLen:  uint16(len(keyBytes)),
			DataLen: uint32(len(dataBytes)),
		}
		if err := binary.Write(w, binary.LittleEndian, &entry); err != nil {
			return err
		}

		// Тело записи
		if _, err := w.Write(keyBytes); err != nil {
			return err
		}
		if _, err := w.Write(dataBytes); err != nil {
			return err
		}
	}

	return nil
}
