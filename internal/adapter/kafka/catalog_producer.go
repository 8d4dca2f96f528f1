package kafka

import (
	"context"
	"log/slog"

	"github.com/pluscart/storefront/internal/core/domain"
	"github.com/twmb/franz-go/pkg/kgo"
)

const catalogRecordKey = "catalog"

// A CatalogProducer publishes full catalog snapshots to the feed topic.
type CatalogProducer struct {
	cl       ProducerClient
	encoder  Encoder
	opPrefix string
}

func NewCatalogProducer(opts ...ProducerOpt) (CatalogProducer, error) {
	const op = "NewCatalogProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CatalogProducer{}, opErr(err, op)
		}
	}

	return CatalogProducer{
		cl:       options.cl,
		encoder:  options.encoder,
		opPrefix: "CatalogProducer",
	}, nil
}

func (p CatalogProducer) Close() {
	const op = "Close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

// ProduceCatalog publishes the product list as a single feed record.
func (p CatalogProducer) ProduceCatalog(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "ProduceCatalog"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	b, err := p.encoder.Encode(catalogToSchemaV1(ps))
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := &kgo.Record{Key: []byte(catalogRecordKey), Value: b}
	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}
