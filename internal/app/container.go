package app

import (
	"context"
	"log"
	"time"

	"skills-audit/internal/aggregate"
	"skills-audit/internal/blob"
	"skills-audit/internal/config"
	"skills-audit/internal/database"
	dbpostgres "skills-audit/internal/database/postgres"
	"skills-audit/internal/delivery/http/handler"
	"skills-audit/internal/delivery/http/middleware"
	"skills-audit/internal/delivery/http/routes"
	"skills-audit/internal/domain/employee"
	"skills-audit/internal/domain/qualification"
	"skills-audit/internal/domain/skill"
	"skills-audit/internal/domain/training"
	"skills-audit/internal/infrastructure/cache"
	"skills-audit/internal/notify"
	"skills-audit/internal/pkg/jwt"
	"skills-audit/internal/report"
	"skills-audit/internal/store"
	"skills-audit/internal/workflow"
	"skills-audit/internal/ws"
)

// Container wires every component once at startup and owns their
// lifecycles.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub

	Handlers routes.Handlers

	amqpTransport *notify.AMQPTransport
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	docStore := store.NewPostgres(db, cfg.Database.QueryTimeout)
	if err := docStore.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}
	c.build(docStore)
	return c, nil
}

func (c *Container) build(docStore store.Store) {
	cfg := c.Config
	logger := c.Logger

	c.Cache = cache.NewRedis(cfg.Redis, logger)

	c.Hub = ws.NewHub(logger)
	go c.Hub.Run()

	transports := []notify.Transport{ws.NewEventTransport(c.Hub)}
	if cfg.Notify.AMQPURL != "" {
		t, err := notify.NewAMQPTransport(cfg.Notify.AMQPURL, cfg.Notify.AMQPQueue)
		if err != nil {
			logger.Printf("amqp transport disabled | err=%v", err)
		} else {
			c.amqpTransport = t
			transports = append(transports, t)
		}
	}
	if cfg.Notify.SendGridKey != "" {
		transports = append(transports, notify.NewEmailTransport(
			cfg.Notify.SendGridKey, cfg.Notify.SenderName, cfg.Notify.SenderAddress,
		))
	}
	notifier := notify.NewNotifier(logger, transports...)

	var blobs blob.Storage = blob.Noop{}
	if cfg.Blob.BaseURL != "" {
		blobs = blob.NewHTTPStorage(cfg.Blob.BaseURL, cfg.Blob.Token)
	}

	employees := employee.NewRepository(docStore)
	qualifications := qualification.NewRepository(docStore)
	trainings := training.NewRepository(docStore)
	skills := skill.NewRepository(docStore)

	employeeSvc := workflow.NewEmployeeService(employees, notifier, c.Cache, logger)
	qualificationSvc := workflow.NewQualificationService(qualifications, employees, notifier, blobs, c.Cache, logger)
	trainingSvc := workflow.NewTrainingService(trainings, employees, notifier, c.Cache, logger)
	skillSvc := workflow.NewSkillService(skills, employees, c.Cache, logger)

	engine := aggregate.NewEngine(
		employees, qualifications, trainings, skills,
		c.Cache, cfg.Redis.TTL, cfg.Aggregate.FanOutWorkers, logger,
	)
	assembler := report.NewAssembler(engine)

	jwtSvc := jwt.NewHMACService(cfg.Auth.JWTSecret)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	c.Handlers = routes.Handlers{
		Health:        handler.NewHealthHandler(c.DB, c.Cache),
		Employee:      handler.NewEmployeeHandler(employeeSvc, engine),
		Qualification: handler.NewQualificationHandler(qualificationSvc, authMw),
		Training:      handler.NewTrainingHandler(trainingSvc, authMw),
		Skill:         handler.NewSkillHandler(skillSvc),
		Dashboard:     handler.NewDashboardHandler(engine),
		Report:        handler.NewReportHandler(assembler, employeeSvc),
		Events:        ws.NewHandler(c.Hub, logger),
		Auth:          authMw,
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.amqpTransport != nil {
		_ = c.amqpTransport.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
