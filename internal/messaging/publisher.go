package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-snake/internal/game"
)

const DefaultSubjectPrefix = "snake"

type publisher interface {
	Publish(subject string, data []byte) error
}

// EventPublisher mirrors the game onto NATS subjects:
//
//	<prefix>.<match>.state   every state payload
//	<prefix>.<match>.events  one JSON object per game event
type EventPublisher struct {
	server publisher
	prefix string
}

func NewEventPublisher(server *NatsServer, prefix string) *EventPublisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &EventPublisher{server: server, prefix: prefix}
}

func (p *EventPublisher) StateSubject(matchId string) string {
	return fmt.Sprintf("%s.%s.state", p.prefix, matchId)
}

func (p *EventPublisher) EventSubject(matchId string) string {
	return fmt.Sprintf("%s.%s.events", p.prefix, matchId)
}

func (p *EventPublisher) PublishState(matchId string, payload []byte) error {
	return p.server.Publish(p.StateSubject(matchId), payload)
}

func (p *EventPublisher) PublishEvents(matchId string, events []game.Event) error {
	el := errors.NewErrorList()
	subject := p.EventSubject(matchId)
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			el.Add(fmt.Errorf("encoding %s event: %w", e.Kind, err))
			continue
		}
		el.Add(p.server.Publish(subject, data))
	}
	return el.Err()
}
