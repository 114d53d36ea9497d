package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
)

func (s *JournalService) Load(path string) (*domain.JournalSession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*domain.JournalSession, error) {
	// 1. Читаем несжатый заголовок целиком
	var header JournalFileHeader
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

	session := &domain.JournalSession{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		MapSize:   float64(header.MapSize),
		Actions:   make([]domain.JournalAction, header.ActionCount),
	}

	// 2. Читаем команды из zstd-потока
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(dec, binary.LittleEndian, &ah); err != nil {
			return nil, err
		}

		act := domain.JournalAction{
			Tick:     ah.Tick,
			PlayerID: domain.ObjectID(ah.PlayerID),
			Action:   domain.ActionType(ah.ActionType),
		}

		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(dec, act.Payload); err != nil {
				return nil, err
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		session.Actions[i] = act
	}

	return session, nil
}
