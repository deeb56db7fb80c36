package builder

import "github.com/google/uuid"

// Move is a position change of one element, zero-based
type Move struct {
	ID   uuid.UUID
	From int
	To   int
}

// Moves returns the elements whose position differs between before and after
func Moves(before, after []uuid.UUID) []Move {
	pos := make(map[uuid.UUID]int, len(before))
	for i, id := range before {
		pos[id] = i
	}
	var moves []Move
	for i, id := range after {
		if from, ok := pos[id]; ok && from != i {
			moves = append(moves, Move{ID: id, From: from, To: i})
		}
	}
	return moves
}
