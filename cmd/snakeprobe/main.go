package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-snake/internal/client"
	"github.com/pixil98/go-snake/internal/display"
)

// turns cycles clockwise: right, down, left, up.
var turns = [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

func main() {
	addr := flag.String("addr", "127.0.0.1:5555", "server address, host:port or ws:// url")
	name := flag.String("name", "Probe", "player name")
	states := flag.Int("states", 50, "stop after this many states, 0 runs until interrupted")
	every := flag.Int("every", 10, "print every nth state")
	turn := flag.Duration("turn", time.Second, "turn clockwise this often, 0 never turns")
	events := flag.String("events", "", "nats url to tail game events from instead of playing")
	subject := flag.String("subject", "snake.*.events", "nats subject for -events")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var err error
	if *events != "" {
		err = tail(ctx, *events, *subject)
	} else {
		err = play(ctx, *addr, *name, *states, *every, *turn)
	}
	if err != nil {
		slog.Error("probe failed", "error", err)
		os.Exit(1)
	}
}

func play(ctx context.Context, addr, name string, states, every int, turn time.Duration) error {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c, err := client.Dial(dialCtx, addr)
	if err != nil {
		return err
	}
	defer c.Close()

	go func() {
		<-ctx.Done()
		c.Close()
	}()

	fmt.Printf("connected as client %d\n", c.Id())
	if msg := c.Welcome().Message; msg != "" {
		fmt.Println(display.Wrap(msg))
	}

	err = c.Join(name)
	if err != nil {
		return fmt.Errorf("joining: %w", err)
	}

	if turn > 0 {
		go steer(ctx, c, turn)
	}

	key := fmt.Sprint(c.Id())
	for n := 1; states == 0 || n <= states; n++ {
		st, err := c.NextState()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading state: %w", err)
		}

		if every > 0 && n%every == 0 {
			fmt.Print(display.Board(st.GameState))
			fmt.Print(display.Scoreboard(st.GameState))
		}
		if p, ok := st.GameState.Players[key]; ok && !p.Alive {
			fmt.Printf("died at tick %d with %d points\n", st.GameState.Tick, p.Score)
			return nil
		}
	}
	return nil
}

func steer(ctx context.Context, c *client.Client, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for i := 1; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d := turns[i%len(turns)]
			if err := c.Steer(d[0], d[1]); err != nil {
				slog.Warn("steering", "error", err)
				return
			}
		}
	}
}

// tail prints game events published by a server running with nats enabled.
func tail(ctx context.Context, url, subject string) error {
	nc, err := nats.Connect(url)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", url, err)
	}
	defer nc.Close()

	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		fmt.Printf("%s %s\n", msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	<-ctx.Done()
	return nil
}
