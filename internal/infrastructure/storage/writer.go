package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
)

const (
	MagicHeader string = `SVRJ` // 4 байта
	Version1    uint32 = 1
)

// JournalFileHeader - точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком: тут нет слайсов и строк,
// только массивы и числа. Заголовок лежит ДО zstd-потока.
type JournalFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	MapSize     uint32  // 4 байта (целые юниты)
	ActionCount uint32  // 4 байта
}

// ActionHeader - заголовок каждой записи команды внутри zstd-потока.
type ActionHeader struct {
	Tick       uint64 // 8
	PlayerID   uint32 // 4
	ActionType uint8  // 1
	PayloadLen uint16 // 2
}

// JournalService пишет и читает журналы матчей. Команды сжимаются
// zstd: JSON-payload'ы повторяются почти дословно и жмутся в разы.
type JournalService struct {
	SaveDir string
}

func NewJournalService(dir string) *JournalService {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &JournalService{SaveDir: dir}
}

func (s *JournalService) Save(session *domain.JournalSession) error {
	filename := fmt.Sprintf("match_%d_%d.svrj", session.Seed, session.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeBinary(f, session)
}

func writeBinary(w io.Writer, s *domain.JournalSession) error {
	// 1. Глобальный заголовок - без сжатия, чтобы инструменты могли
	// прочитать сид и число записей не распаковывая поток.
	header := JournalFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		MapSize:     uint32(s.MapSize),
		ActionCount: uint32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Команды - одним zstd-потоком.
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}

	for _, act := range s.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			enc.Close()
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Tick:       act.Tick,
			PlayerID:   uint32(act.PlayerID),
			ActionType: uint8(act.Action),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(enc, binary.LittleEndian, &actHeader); err != nil {
			enc.Close()
			return err
		}
		if payloadLen > 0 {
			if _, err := enc.Write(act.Payload); err != nil {
				enc.Close()
				return err
			}
		}
	}

	return enc.Close()
}
