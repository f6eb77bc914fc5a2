package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle caps how many suggestion calls reach the provider. When the local budget
// is spent it fails fast with a RateLimitError instead of queueing.
// Guide calls are not counted.
type Throttle struct {
	next    Suggester
	limiter *rate.Limiter
	now     func() time.Time
}

// NewThrottle allows perMinute suggestion calls per minute with the given burst.
func NewThrottle(next Suggester, perMinute float64, burst int) *Throttle {
	if burst < 1 {
		burst = 1
	}
	return &Throttle{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perMinute/60), burst),
		now:     time.Now,
	}
}

func (t *Throttle) Name() string { return t.next.Name() }

func (t *Throttle) SuggestPokemon(ctx context.Context, req SuggestRequest) (*Suggestion, error) {
	now := t.now()
	r := t.limiter.ReserveN(now, 1)
	if !r.OK() {
		return nil, &RateLimitError{Provider: "local", RetryAfter: DefaultRetryAfter}
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return nil, &RateLimitError{Provider: "local", RetryAfter: delay}
	}
	return t.next.SuggestPokemon(ctx, req)
}

func (t *Throttle) WriteGuide(ctx context.Context, req GuideRequest) (string, error) {
	return t.next.WriteGuide(ctx, req)
}
