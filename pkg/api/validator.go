package api

import (
	"errors"
	"math"
)

// Validator - интерфейс, который могут реализовать DTO.
// Невалидный ввод игнорируется целиком: это invalid-intent, не ошибка сервера.
type Validator interface {
	Validate() error
}

func (p MovePayload) Validate() error {
	if p.Touch {
		if math.IsNaN(p.TouchX) || math.IsNaN(p.TouchY) ||
			math.IsInf(p.TouchX, 0) || math.IsInf(p.TouchY, 0) {
			return errors.New("touch vector is not finite")
		}
		return nil
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step out of range")
	}
	return nil
}

func (p FirePayload) Validate() error {
	if math.IsNaN(p.DirX) || math.IsNaN(p.DirY) ||
		math.IsInf(p.DirX, 0) || math.IsInf(p.DirY, 0) {
		return errors.New("fire direction is not finite")
	}
	return nil
}

func (p SwitchSlotPayload) Validate() error {
	if p.Slot < 0 || p.Slot > 2 {
		return errors.New("slot out of range")
	}
	return nil
}

func (p UseItemPayload) Validate() error {
	if p.Item == "" {
		return errors.New("item is required")
	}
	return nil
}

func (p DropPayload) Validate() error {
	if p.Item == "" {
		return errors.New("item is required")
	}
	if p.Count < 0 {
		return errors.New("count cannot be negative")
	}
	return nil
}

func (p JoinPayload) Validate() error {
	if len(p.Name) > 24 {
		return errors.New("name too long")
	}
	return nil
}
