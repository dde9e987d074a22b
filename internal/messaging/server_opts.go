package messaging

import "time"

type NatsServerOpt func(*NatsServer)

// WithListen sets where spectators connect. A port of -1 picks a free one.
func WithListen(host string, port int) NatsServerOpt {
	return func(n *NatsServer) {
		if host != "" {
			n.host = host
		}
		if port != 0 {
			n.port = port
		}
	}
}

func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.startupTimeout = d
	}
}

// WithMaxPayload bounds a single published message. State payloads larger
// than this are refused by the broker.
func WithMaxPayload(bytes int32) NatsServerOpt {
	return func(n *NatsServer) {
		n.maxPayload = bytes
	}
}

// WithServerName names the broker in its monitoring output, usually after the
// match it carries.
func WithServerName(name string) NatsServerOpt {
	return func(n *NatsServer) {
		n.name = name
	}
}
