package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-snake/internal/driver"
	"github.com/pixil98/go-snake/internal/listener"
	"github.com/pixil98/go-snake/internal/messaging"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	logger, err := cfg.Log.buildLogger()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	slog.SetDefault(logger)

	// Create the world
	world, err := cfg.World.buildWorld(cfg.obstacleCount())
	if err != nil {
		return nil, err
	}
	slog.Info("world created",
		"match", world.Id(),
		"grid_size", world.GridSize(),
		"mode", world.Mode().String(),
		"tick", cfg.tickLength(),
	)

	sessions, err := cfg.Sessions.buildSessionManager(world)
	if err != nil {
		return nil, fmt.Errorf("creating session manager: %w", err)
	}
	cm := listener.NewConnectionManager(sessions)

	// Create Listeners
	lcfgs := cfg.Listeners
	if len(lcfgs) == 0 {
		lcfgs = defaultListeners
	}
	listeners := make(service.WorkerList, len(lcfgs))
	for i, l := range lcfgs {
		worker, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = worker
	}

	workers := service.WorkerList{
		"sessions":  sessions,
		"listeners": &listeners,
	}

	// Setup the game driver
	driverOpts := []driver.GameDriverOpt{driver.WithTickLength(cfg.tickLength())}
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = ns
		driverOpts = append(driverOpts,
			driver.WithPublisher(messaging.NewEventPublisher(ns, cfg.Nats.SubjectPrefix)),
			driver.WithWaitFor(ns.Ready()),
		)
	}
	workers["driver"] = driver.NewGameDriver(world, sessions, driverOpts...)

	return workers, nil
}
