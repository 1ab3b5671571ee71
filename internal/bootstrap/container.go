package bootstrap

import (
	"context"
	"log"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/controller"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/internal/ticket"
	"notekeeper-be/internal/websocket"
	"notekeeper-be/pkg/events"
	pktNats "notekeeper-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	NoteController    controller.INoteController
	ChangeFeedHandler *websocket.ChangeFeedHandler

	// Background services (exposed for main.go to run)
	ChangeRelay  *service.ChangeRelay
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process change bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS: external change-notification leg. The service keeps
	// working without it; changes then only reach local websockets.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis: cross-instance websocket fanout
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket hub + connect tickets
	feedLogger := logger.NewIsolatedLogger("logs/changefeed.log")
	wsHub := websocket.NewHub(rdb, feedLogger)
	go wsHub.Run()

	tickets := ticket.NewStore()

	// Change publisher: in-process leg always, NATS leg when reachable
	localPublisher := service.NewPublisherService(cfg.App.ChangeTopic, pubSub)
	publisher := events.MultiPublisher{localPublisher}
	if natsPub != nil {
		publisher = append(publisher, natsPub)
	}

	noteService := service.NewNoteService(uowFactory, publisher, sysLogger)
	changeRelay := service.NewChangeRelay(pubSub, cfg.App.ChangeTopic, wsHub, feedLogger)

	return &Container{
		NoteController:    controller.NewNoteController(noteService),
		ChangeFeedHandler: websocket.NewChangeFeedHandler(wsHub, tickets, feedLogger),
		ChangeRelay:       changeRelay,
		WebSocketHub:      wsHub,
		Logger:            sysLogger,
	}
}
