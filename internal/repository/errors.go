package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrGroupNotFound is returned when a group is not found
	ErrGroupNotFound = errors.New("group not found")

	// ErrSubItemNotFound is returned when a sub-item is not found
	ErrSubItemNotFound = errors.New("sub-item not found")

	// ErrTeamNotFound is returned when a team is not found
	ErrTeamNotFound = errors.New("team not found")
)
