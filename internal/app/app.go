package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/pluscart/storefront/config"
	"github.com/pluscart/storefront/internal/adapter/catalogclient"
	"github.com/pluscart/storefront/internal/adapter/httphandler"
	"github.com/pluscart/storefront/internal/adapter/kafka"
	"github.com/pluscart/storefront/internal/core/service"
	"github.com/pluscart/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type services struct {
	catalog *service.CatalogService
	browser *service.BrowseService
	carts   *service.CartService
}

type App struct {
	ctx      context.Context
	cfg      config.Config
	services services

	fetcher    *catalogclient.CatalogClient
	consumer   *kafka.CatalogConsumer
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCoreServices()
	app.initCatalogFetcher()
	app.initCatalogFeed()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCoreServices() {
	catalog := service.NewCatalogService()
	app.services = services{
		catalog: catalog,
		browser: service.NewBrowseService(catalog, app.cfg.Shop.PageSize),
		carts:   service.NewCartService(),
	}
}

func (app *App) initCatalogFetcher() {
	if app.cfg.Shop.CatalogURL == "" {
		return
	}
	fetcher := catalogclient.New(
		app.cfg.Shop.CatalogURL,
		app.cfg.Shop.RefreshInterval,
		app.services.catalog,
	)
	app.fetcher = &fetcher
}

func (app *App) initCatalogFeed() {
	const op = "App.initCatalogFeed"

	if len(app.cfg.Broker.SeedBrokers) == 0 {
		return
	}

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.CatalogFeed + "-value"
	serde, err := schema.NewSerdeCatalogV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	consumer, err := kafka.NewCatalogConsumer(
		kafka.ConsumerClientOpt(
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.CatalogFeed,
			app.cfg.Broker.Consumers.CatalogFeedGroup,
		),
		kafka.ConsumerDecoderOpt(serde),
		kafka.ConsumerReplacerOpt(app.services.catalog),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.consumer = &consumer
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.services.browser, app.services.catalog)
	httphandler.RegisterFilters(mux, app.services.browser)
	httphandler.RegisterCart(mux, app.services.carts, app.services.catalog)

	handler := httphandler.WithSession(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	if app.fetcher != nil {
		go app.fetcher.Run(app.ctx)
	}
	if app.consumer != nil {
		go app.consumer.Run(app.ctx)
	}

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.consumer != nil {
		app.consumer.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
