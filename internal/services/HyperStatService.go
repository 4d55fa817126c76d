package services

import (
	"context"
	"hyperstat/internal/clients"
	"hyperstat/internal/models"
	"hyperstat/internal/providers"
	"hyperstat/internal/structures"
)

// Query selects a character and a reference date. Empty fields fall back to
// the configured defaults.
type Query struct {
	OCID string
	Date string
}

type HyperStatServiceInterface interface {
	Resolve(q Query) Query
	Fetch(ctx context.Context, q Query) (*models.StatSnapshot, error)
}

type HyperStatService struct {
	conf   *structures.Config
	client clients.NexonClientInterface
	logger providers.Logger
}

func NewHyperStatService(conf *structures.Config, client clients.NexonClientInterface, logger providers.Logger) HyperStatServiceInterface {
	return &HyperStatService{
		conf:   conf,
		client: client,
		logger: logger,
	}
}

func (hs *HyperStatService) Resolve(q Query) Query {
	if q.OCID == "" {
		q.OCID = hs.conf.Character.OCID
	}
	if q.Date == "" {
		q.Date = hs.conf.Character.Date
	}
	return q
}

func (hs *HyperStatService) Fetch(ctx context.Context, q Query) (*models.StatSnapshot, error) {
	q = hs.Resolve(q)

	snapshot, err := hs.client.GetCharacterHyperStat(ctx, q.OCID, q.Date, hs.conf.Nexon.APIKey)
	if err != nil {
		hs.logger.Errorf(providers.TypeApp, "Hyper stat fetch for %s failed: %s", q.OCID, err)
		return nil, err
	}

	hs.logger.Infof(providers.TypeApp, "CharacterClass is %s", snapshot.CharacterClass)
	return snapshot, nil
}
