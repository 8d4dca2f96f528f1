package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pluscart/storefront/internal/core/port"
	"github.com/pluscart/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

const slowDownDelay = 5 * time.Second

type ConsumerOpt func(*consumerOpts) error

type consumerOpts struct {
	cl       ConsumerClient
	decoder  Decoder
	replacer port.CatalogReplacer
}

func ConsumerClientOpt(
	seedBrokers []string, topic, group string,
) ConsumerOpt {
	return func(opts *consumerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.ConsumeTopics(topic),
			kgo.ConsumerGroup(group),
			kgo.DisableAutoCommit(),
		)
		if err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ConsumerDecoderOpt(decoder Decoder) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if decoder == nil {
			return errors.New("decoder is nil")
		}
		opts.decoder = decoder
		return nil
	}
}

func ConsumerReplacerOpt(replacer port.CatalogReplacer) ConsumerOpt {
	return func(opts *consumerOpts) error {
		if replacer == nil {
			return errors.New("catalog replacer is nil")
		}
		opts.replacer = replacer
		return nil
	}
}

// CatalogConsumer consumes the catalog feed topic. Every record carries
// a complete catalog; applying one replaces the catalog wholesale, so
// the latest record always wins.
type CatalogConsumer struct {
	cl       ConsumerClient
	decoder  Decoder
	replacer port.CatalogReplacer
	errTimer *time.Timer
}

func NewCatalogConsumer(opts ...ConsumerOpt) (CatalogConsumer, error) {
	const op = "NewCatalogConsumer"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options consumerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CatalogConsumer{}, opErr(err, op)
		}
	}

	return CatalogConsumer{
		cl:       options.cl,
		decoder:  options.decoder,
		replacer: options.replacer,
		errTimer: time.NewTimer(0),
	}, nil
}

func (c CatalogConsumer) Run(ctx context.Context) {
	const op = "CatalogConsumer.Run"
	log := slog.With("op", op)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				err = fmt.Errorf("%s: %w", op, err)
				log.Error("failed to consume catalog feed", "err", err)
				c.slowDown(ctx)
				continue
			}
			if err := c.commit(ctx); err != nil {
				log.Error("failed to commit offset", "err", err)
			}
		}
	}
}

func (c CatalogConsumer) Close() {
	const op = "CatalogConsumer.Close"
	log := slog.With("op", op)

	log.Info("closing catalog consumer...")
	c.errTimer.Stop()
	c.cl.Close()
	log.Info("catalog consumer is closed")
}

func (c CatalogConsumer) consume(ctx context.Context) error {
	const op = "consume"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return opErr(err, op)
	}

	// Only the newest record matters: each one is a full catalog.
	var last *kgo.Record
	fetches.EachRecord(func(r *kgo.Record) {
		last = r
	})
	if last == nil {
		return nil
	}

	var catalog schema.CatalogV1
	if err := c.decoder.Decode(last.Value, &catalog); err != nil {
		return opErr(err, op)
	}

	if err := c.replacer.ReplaceCatalog(ctx, catalogToDomain(catalog)); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (c CatalogConsumer) commit(ctx context.Context) error {
	const op = "commit"
	if err := c.cl.CommitUncommittedOffsets(ctx); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (c CatalogConsumer) slowDown(ctx context.Context) {
	c.errTimer.Reset(slowDownDelay)
	select {
	case <-ctx.Done():
	case <-c.errTimer.C:
	}
}
