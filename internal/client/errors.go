package client

import "errors"

var (
	ErrNoWelcome = errors.New("server did not send a welcome")
	ErrRejected  = errors.New("server rejected the connection")
)
