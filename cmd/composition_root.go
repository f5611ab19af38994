package cmd

import (
	"log/slog"

	httpin "delivery-service/internal/adapters/in/http"
	nsqin "delivery-service/internal/adapters/in/nsq"
	"delivery-service/internal/adapters/out/authclient"
	"delivery-service/internal/adapters/out/discovery"
	"delivery-service/internal/adapters/out/memory"
	nsqout "delivery-service/internal/adapters/out/nsq"
	"delivery-service/internal/adapters/out/postgres"
	"delivery-service/internal/adapters/out/postgres/deliveryrepo"
	"delivery-service/internal/core/application/events"
	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/core/application/usecases/queries"
	"delivery-service/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  *nsqout.Publisher
	notifier   *events.Notifier
	keys       *memory.PublicKeyStore
	process    *jobs.DeliveryProcess
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, publisher *nsqout.Publisher, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		notifier:   events.NewNotifier(publisher, logger),
		keys:       memory.NewPublicKeyStore(),
		logger:     logger,
	}

	advancer := c.CreateAdvanceDeliveryCommandHandler()
	c.process = jobs.NewDeliveryProcess(&advancer, cfg.ProcessMinDelay, cfg.ProcessMaxDelay, logger)

	return c
}

func (c *CompositionRoot) Notifier() *events.Notifier {
	return c.notifier
}

func (c *CompositionRoot) DeliveryProcess() *jobs.DeliveryProcess {
	return c.process
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateChangeDeliveryStatusCommandHandler() commands.ChangeDeliveryStatusCommandHandler {
	return commands.NewChangeDeliveryStatusCommandHandler(c.deliveryUoWFactory(), c.notifier, c.process)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.deliveryUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateDeliveryCommandHandler() commands.UpdateDeliveryCommandHandler {
	return commands.NewUpdateDeliveryCommandHandler(c.deliveryUoWFactory(), c.notifier, c.process)
}

func (c *CompositionRoot) CreateDeleteDeliveryCommandHandler() commands.DeleteDeliveryCommandHandler {
	return commands.NewDeleteDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateSetDeliveryAddressCommandHandler() commands.SetDeliveryAddressCommandHandler {
	return commands.NewSetDeliveryAddressCommandHandler(c.deliveryUoWFactory(), c.process)
}

func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() commands.AdvanceDeliveryCommandHandler {
	return commands.NewAdvanceDeliveryCommandHandler(c.deliveryUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRefreshPublicKeyCommandHandler() commands.RefreshPublicKeyCommandHandler {
	services := discovery.NewStatic(map[string]string{commands.AuthServiceName: c.cfg.AuthServiceURL})
	return commands.NewRefreshPublicKeyCommandHandler(services, authclient.NewClient(c.cfg.AuthKeyTimeout), c.keys)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(deliveryrepo.NewGormDeliveryRepository(c.gormDB))
}

// CreateRouter wires the REST API.
func (c *CompositionRoot) CreateRouter(gatherer prometheus.Gatherer) (*echo.Echo, error) {
	create := c.CreateCreateDeliveryCommandHandler()
	update := c.CreateUpdateDeliveryCommandHandler()
	remove := c.CreateDeleteDeliveryCommandHandler()
	setAddress := c.CreateSetDeliveryAddressCommandHandler()
	get := c.CreateGetDeliveryQueryHandler()
	list := c.CreateListDeliveriesQueryHandler()

	return httpin.NewRouter(httpin.RouterConfig{
		Server:   httpin.NewServer(&create, &update, &remove, &setAddress, &get, &list),
		Verifier: httpin.NewTokenVerifier(c.keys),
		Gatherer: gatherer,
		Health:   postgres.NewPinger(c.gormDB),
		Logger:   c.logger,
	})
}

// CreateConsumers wires the message bus ingress.
func (c *CompositionRoot) CreateConsumers() *nsqin.Consumers {
	create := c.CreateCreateDeliveryCommandHandler()
	status := c.CreateChangeDeliveryStatusCommandHandler()
	cancel := c.CreateCancelDeliveryCommandHandler()
	refresh := c.CreateRefreshPublicKeyCommandHandler()

	handlers := nsqin.NewHandlers(&create, &status, &cancel, &refresh, c.notifier, c.logger)

	return nsqin.NewConsumers(nsqin.ConsumerConfig{
		NsqdTCPAddr:       c.cfg.NsqdTCPAddr,
		LookupdHTTPAddr:   c.cfg.NsqLookupdHTTP,
		Channel:           c.cfg.NsqChannel,
		MaxAttempts:       c.cfg.NsqMaxAttempts,
		MaxInFlight:       c.cfg.NsqMaxInFlight,
		LogLevel:          c.cfg.LogLevel,
		DeadLetterEnabled: c.cfg.NsqDeadLetter,
	}, handlers, c.publisher, c.logger)
}

// CreateJobManager returns the delivery process together with the resume
// job when it is enabled.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var resume *jobs.ResumeStalledJob
	if c.cfg.ResumeStalled {
		resume = jobs.NewResumeStalledJob(
			deliveryrepo.NewGormDeliveryRepository(c.gormDB),
			c.process,
			c.cfg.ResumeSchedule,
			c.cfg.ResumeStalledAfter,
			c.logger,
		)
	}
	return jobs.NewJobManager(c.process, resume, c.logger)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
