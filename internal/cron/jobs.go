package cron

import (
	"context"
	"fmt"
	"time"
)

const (
	StaleCartsJobName       = "stale-carts"
	InquiryRetentionJobName = "inquiry-retention"
	defaultCartTTL          = 7 * 24 * time.Hour
	defaultInquiryRetention = 90 * 24 * time.Hour
)

// CartSweeper removes carts last written before a cutoff.
type CartSweeper interface {
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
}

// InquiryPruner removes inquiries received before a cutoff.
type InquiryPruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

type retentionJob struct {
	name   string
	window time.Duration
	remove func(ctx context.Context, cutoff time.Time) (int, error)
	now    func() time.Time
}

func (j *retentionJob) Name() string { return j.name }

func (j *retentionJob) Run(ctx context.Context) (int, error) {
	cutoff := j.now().UTC().Add(-j.window)
	n, err := j.remove(ctx, cutoff)
	if err != nil {
		return n, fmt.Errorf("%s: %w", j.name, err)
	}
	return n, nil
}

// NewStaleCartJob drops abandoned file-backed carts untouched for ttl.
func NewStaleCartJob(sweeper CartSweeper, ttl time.Duration) (Job, error) {
	if sweeper == nil {
		return nil, fmt.Errorf("cart sweeper required")
	}
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &retentionJob{name: StaleCartsJobName, window: ttl, remove: sweeper.Sweep, now: time.Now}, nil
}

func NewInquiryRetentionJob(pruner InquiryPruner, retention time.Duration) (Job, error) {
	if pruner == nil {
		return nil, fmt.Errorf("inquiry pruner required")
	}
	if retention <= 0 {
		retention = defaultInquiryRetention
	}
	return &retentionJob{name: InquiryRetentionJobName, window: retention, remove: pruner.Prune, now: time.Now}, nil
}
