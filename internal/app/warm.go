package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/lvapl/StayFinder/internal/domain"
)

// WarmHotelCache primes the detail and first review page caches for every
// hotel, with at most workers lookups in flight.
func WarmHotelCache(ctx context.Context, q *QueryService, repo domain.HotelRepository, workers int) {
	if workers <= 0 {
		workers = 4
	}
	hotels, err := repo.ListHotels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cache warm skipped")
		return
	}

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	for _, h := range hotels {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("cache warm aborted")
			break
		}
		wg.Add(1)
		go func(code int64) {
			defer wg.Done()
			defer sem.Release(1)
			if _, err := q.GetHotel(ctx, code); err != nil {
				log.Warn().Int64("code", code).Err(err).Msg("warm hotel failed")
			}
			if _, err := q.GetReviews(ctx, code, 1); err != nil {
				log.Warn().Int64("code", code).Err(err).Msg("warm reviews failed")
			}
		}(h.Code)
	}
	wg.Wait()
	log.Info().Int("hotels", len(hotels)).Msg("cache warm completed")
}
