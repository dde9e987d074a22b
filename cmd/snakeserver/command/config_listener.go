package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-service"
	"github.com/pixil98/go-snake/internal/listener"
)

const DefaultPort = 5555

type ListenerType int

const (
	ListenerTypeTcp ListenerType = iota
	ListenerTypeWebsocket
)

func (lt *ListenerType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "tcp", "":
		*lt = ListenerTypeTcp
	case "websocket", "ws":
		*lt = ListenerTypeWebsocket
	default:
		return fmt.Errorf("unknown listener type: %s", text)
	}
	return nil
}

type ListenerConfig struct {
	Protocol ListenerType `json:"protocol"`
	Host     string       `json:"host"`
	Port     uint16       `json:"port"`
	Path     string       `json:"path,omitempty"`
}

// defaultListeners is used when no listener is configured.
var defaultListeners = []ListenerConfig{
	{Protocol: ListenerTypeTcp, Host: "0.0.0.0", Port: DefaultPort},
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}

	if cl.Path != "" && cl.Protocol != ListenerTypeWebsocket {
		el.Add(fmt.Errorf("path only applies to websocket listeners"))
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch cl.Protocol {
	case ListenerTypeTcp:
		return listener.NewTcpListener(cl.Host, cl.Port, cm), nil
	case ListenerTypeWebsocket:
		return listener.NewWebsocketListener(cl.Host, cl.Port, cl.Path, cm), nil
	default:
		return nil, fmt.Errorf("unknown listener type: %v", cl.Protocol)
	}
}
