package cmd

import (
	"fmt"

	"github.com/yeremiapane/table-booking/config"
	"github.com/yeremiapane/table-booking/database"
	"github.com/yeremiapane/table-booking/events"
	"github.com/yeremiapane/table-booking/hub"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/gorm"
)

// app is the wired service shared by the commands.
type app struct {
	cfg      config.Config
	db       *gorm.DB
	bus      *events.Bus
	board    *hub.Hub
	settings *services.SettingsService
	slots    *services.SlotGenerator
	bookings *services.BookingService

	kafka *events.KafkaPublisher
	relay *events.RedisRelay
}

// openApp loads config, opens and migrates the database and builds the booking services.
// Event sinks are attached only when withSinks is set.
func openApp(withSinks bool) (*app, error) {
	cfg := config.Load()
	utils.SetJWTSecret(cfg.JWTSecret)

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	settings := services.NewSettingsService(db)
	if err := settings.EnsureDefaults(); err != nil {
		return nil, fmt.Errorf("settings defaults: %w", err)
	}

	clock := services.SystemClock{}
	bus := events.NewBus()
	reserver := services.NewReserver(db, services.NewSlotLocks())
	a := &app{
		cfg:      cfg,
		db:       db,
		bus:      bus,
		board:    hub.New(),
		settings: settings,
		bookings: services.NewBookingService(db, clock, settings, reserver, bus),
		slots: services.NewSlotGenerator(clock, settings,
			services.NewShiftCalendar(db), services.NewAvailabilityEvaluator(db)),
	}

	if withSinks {
		bus.Subscribe(a.board.HandleEvent)
		if brokers := events.ParseBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
			a.kafka = events.NewKafkaPublisher(brokers, cfg.KafkaTopic)
			bus.Subscribe(a.kafka.Handle)
			utils.InfoLogger.Printf("Publishing booking events to kafka topic %s", cfg.KafkaTopic)
		}
		if cfg.RedisAddr != "" {
			a.relay = events.NewRedisRelay(cfg.RedisAddr, cfg.RedisChannel)
			bus.Subscribe(a.relay.Handle)
		}
	}
	return a, nil
}

func (a *app) Close() {
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			utils.ErrorLogger.Printf("close kafka writer: %v", err)
		}
	}
	if a.relay != nil {
		if err := a.relay.Close(); err != nil {
			utils.ErrorLogger.Printf("close redis relay: %v", err)
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}
