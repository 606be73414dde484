package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
)

// DecodeMementos разбирает блоб mementos.
// Проверяется только контейнер; содержимое каждой записи валидирует cache.RestoreAll.
func DecodeMementos(blob []byte) ([]domain.Memento, error) {
	r := bytes.NewReader(blob)
	mementos, err := readBinary(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("trailing %d bytes after mementos", r.Len())
	}
	return mementos, nil
}

func readBinary(r io.Reader) ([]domain.Memento, error) {
	// 1. Читаем заголовок целиком
	var header MementoFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	// Count из файла не используем как capacity: битый заголовок не должен съесть память
	var mementos []domain.Memento

	// 2. Читаем записи
	for i := 0; i < int(header.Count); i++ {
		var eh EntryHeader
		if err := binary.Read(r, binary.LittleEndian, &eh); err != nil {
			return nil, fmt.Errorf("entry %d header: %w", i, err)
		}
		if eh.DataLen > maxDataLen {
			return nil, fmt.Errorf("entry %d too long: %d", i, eh.DataLen)
		}

		keyBuf := make([]byte, eh.KeyLen)
		if _, err := io.ReadFull(r, keyBuf); err != nil {
			return nil, fmt.Errorf("entry %d key: %w", i, err)
		}
		dataBuf := make([]byte, eh.DataLen)
		if _, err := io.ReadFull(r, dataBuf); err != nil {
			return nil, fmt.Errorf("entry %d data: %w", i, err)
		}

		mementos = append(mementos, domain.Memento{
			CellKey:          string(keyBuf),
			SerializedTokens: string(dataBuf),
		})
	}

	return mementos, nil
}
