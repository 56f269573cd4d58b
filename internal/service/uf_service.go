package service

import (
	"condominio/internal/entities"
	"condominio/internal/repository"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const DefaultUFCacheTTL = 24 * time.Hour

type UFFetcher interface {
	FetchCurrent(ctx context.Context) (*entities.UFValue, error)
}

type UFProvider interface {
	Current(ctx context.Context) (*entities.UFValue, error)
}

// UFService serves the UF from cache, fetching from CMF on a miss.
type UFService struct {
	fetcher UFFetcher
	cache   repository.UFCache
	ttl     time.Duration
	logger  *zap.Logger
}

func NewUFService(fetcher UFFetcher, cache repository.UFCache, logger *zap.Logger) *UFService {
	return &UFService{fetcher: fetcher, cache: cache, ttl: DefaultUFCacheTTL, logger: logger}
}

func (s *UFService) Current(ctx context.Context) (*entities.UFValue, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("UF cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh always asks CMF and stores the answer.
func (s *UFService) Refresh(ctx context.Context) (*entities.UFValue, error) {
	uf, err := s.fetcher.FetchCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("obteniendo UF: %w", err)
	}
	if err := s.cache.Set(ctx, *uf, s.ttl); err != nil {
		s.logger.Warn("UF cache write failed", zap.Error(err))
	}
	return uf, nil
}
