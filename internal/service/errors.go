package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyText          = errors.New("word text is empty")
	ErrDuplicateWord      = errors.New("word already exists")
	ErrWordNotFound       = errors.New("word not found")
	ErrNoWords            = errors.New("no words in dictionary")
	ErrNoTranslation      = errors.New("no translation available for this word")
	ErrBatchTooLarge      = errors.New("too many words in batch")
	ErrInvalidStatus      = errors.New("invalid progress status")
	ErrInsufficientPool   = errors.New("not enough learned words for decoys")
	ErrSessionNotFound    = errors.New("no pending quiz question for this word")
	ErrInvalidChoiceIndex = errors.New("chosen index is out of range")
)

// InsufficientProgressError reports how many more learned words the user
// needs before the quiz unlocks.
type InsufficientProgressError struct {
	Needed int
}

func (e *InsufficientProgressError) Error() string {
	return fmt.Sprintf("learn %d more words to unlock the quiz", e.Needed)
}
