// Feeder publishes a catalog JSON file to the catalog feed topic as a
// single wholesale-replacement record.
package main

import (
	"fmt"
	"os"

	"github.com/pluscart/storefront/config"
	"github.com/pluscart/storefront/internal/adapter/catalogclient"
	"github.com/pluscart/storefront/internal/adapter/kafka"
	"github.com/pluscart/storefront/pkg/schema"
	"github.com/pluscart/storefront/pkg/sigctx"
	"github.com/spf13/pflag"
	"github.com/twmb/franz-go/pkg/sr"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	file := getCatalogFilepath()
	cfg := config.Load()

	f, err := os.Open(file)
	if err != nil {
		fail(err)
	}
	defer f.Close()

	ps, err := catalogclient.DecodeCatalog(f)
	if err != nil {
		fail(err)
	}

	srClient, err := sr.NewClient(
		sr.URLs(cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		fail(err)
	}

	subject := cfg.Broker.Topics.CatalogFeed + "-value"
	serde, err := schema.NewSerdeCatalogV1(
		sigCtx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		fail(err)
	}

	producer, err := kafka.NewCatalogProducer(
		kafka.ProducerClientOpt(
			sigCtx, cfg.Broker.SeedBrokers, cfg.Broker.Topics.CatalogFeed,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		fail(err)
	}
	defer producer.Close()

	if err := producer.ProduceCatalog(sigCtx, ps); err != nil {
		fail(err)
	}

	fmt.Printf("published catalog with %d products from %q\n", len(ps), file)
}

func getCatalogFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("file", "catalog.json", "catalog JSON file")
	_ = cmdLine.Parse(os.Args[1:])
	return *arg
}

func fail(err error) {
	fmt.Printf("failed to publish catalog: %v\n", err)
	os.Exit(1)
}
