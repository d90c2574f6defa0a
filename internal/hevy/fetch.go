package hevy

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/daybyday/internal/gymstats/workouts"
	"github.com/2beens/daybyday/internal/telemetry/tracing"
)

const (
	WorkoutsPerPage = 50
	MaxWorkoutPages = 500
)

// FetchSnapshot fetches the user and every workout. Paging continues until a
// short page is seen, but never before the declared page count is reached,
// since the API sometimes returns a short page in the middle of the history.
// Workouts listed without set data are refetched one by one; a failed
// refetch keeps the listed version.
func (c *Client) FetchSnapshot(ctx context.Context) (_ *workouts.RawSnapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "hevy.fetchSnapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, userResp, err := c.UserInfo(ctx)
	if err != nil {
		return nil, err
	}

	var (
		all       []workouts.Record
		pageCount int
		pages     int
	)
	for page := 1; page <= MaxWorkoutPages; page++ {
		resp, err := c.WorkoutsPage(ctx, page, WorkoutsPerPage)
		if err != nil {
			return nil, err
		}
		pages++

		items := c.resolver.Items(resp.Body)
		all = append(all, items...)

		if page == 1 {
			if rec, ok := resp.Body.(map[string]any); ok {
				pageCount, _ = c.resolver.Int(rec, workouts.FieldPageCount)
			}
		}

		if len(items) < WorkoutsPerPage && page >= pageCount {
			break
		}
	}

	enriched := 0
	for i, w := range all {
		id, ok := c.resolver.String(w, workouts.FieldWorkoutID)
		if !ok || id == "" || c.resolver.HasSetData(w) {
			continue
		}
		full, err := c.Workout(ctx, id)
		if err != nil {
			log.Warnf("hevy: enrich workout %s: %s", id, err)
			continue
		}
		all[i] = full
		enriched++
	}

	span.SetAttributes(
		attribute.Int("pages", pages),
		attribute.Int("page_count", pageCount),
		attribute.Int("workouts", len(all)),
		attribute.Int("enriched", enriched),
	)
	log.Debugf("hevy: fetched %d workouts in %d pages, %d enriched", len(all), pages, enriched)

	if all == nil {
		all = []workouts.Record{}
	}
	return &workouts.RawSnapshot{
		User:      user,
		Workouts:  all,
		AuthMode:  userResp.AuthMode,
		FetchedAt: time.Now().UTC(),
	}, nil
}
