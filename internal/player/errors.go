package player

import "errors"

var (
	ErrSendQueueFull = errors.New("send queue full")
	ErrSessionClosed = errors.New("session closed")
	ErrServerFull    = errors.New("server full")
)
