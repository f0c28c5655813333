package service

import "fergetid/internal/domain/entity"

// TerminalRegistry resolves ferry quays by identifier or proximity.
type TerminalRegistry interface {
	// Get returns the terminal with the given quay ID.
	Get(id string) (entity.Terminal, bool)

	// Nearest returns the terminal closest to the coordinate.
	Nearest(coord entity.Coordinate) (entity.Terminal, bool)

	// All lists every known terminal.
	All() []entity.Terminal
}
