package poker

import "errors"

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidBet    = errors.New("invalid bet")
)
