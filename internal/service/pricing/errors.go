package pricing

import "errors"

var (
	// ErrUnknownPackage возвращается для пакета, которого нет в прайсе
	ErrUnknownPackage = errors.New("pricing: unknown package")

	// ErrUnknownAddon возвращается для опции, которой нет в прайсе
	ErrUnknownAddon = errors.New("pricing: unknown addon")

	// ErrInvalidDuration возвращается для длительности меньше часа
	ErrInvalidDuration = errors.New("pricing: invalid duration")
)
