package internal

import (
	"context"
	"fmt"
	"io"

	"hyperstat/internal/codec"
	"hyperstat/internal/providers"
	"hyperstat/internal/services"
)

// Fetcher runs a single hyper-stat lookup outside the HTTP server.
type Fetcher struct {
	service services.HyperStatServiceInterface
	decoder *codec.HyperStatDecoder
	logger  providers.Logger
}

func NewFetcher(service services.HyperStatServiceInterface, decoder *codec.HyperStatDecoder, logger providers.Logger) *Fetcher {
	return &Fetcher{
		service: service,
		decoder: decoder,
		logger:  logger,
	}
}

// Run fetches q and writes the snapshot to out in the wire convention.
func (f *Fetcher) Run(ctx context.Context, q services.Query, out io.Writer) error {
	snapshot, err := f.service.Fetch(ctx, q)
	if err != nil {
		return err
	}
	body, err := f.decoder.Encode(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err = out.Write(append(body, '\n')); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (f *Fetcher) Close() {
	f.logger.Close()
}
