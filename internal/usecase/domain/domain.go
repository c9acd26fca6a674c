// Package domain contains application services orchestrating the
// request tracking logic.
package domain

import (
	"context"
	"time"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/blobstore"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/realtime"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/repository"

	"go.uber.org/zap"
)

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx     context.Context
	log     *zap.SugaredLogger
	repo    repository.Repository
	blobs   blobstore.Store
	hub     realtime.Publisher
	timeout time.Duration
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	blobs blobstore.Store,
	hub realtime.Publisher,
	timeout time.Duration,
) *Usecase {
	return &Usecase{
		ctx:     ctx,
		log:     log,
		repo:    repo,
		blobs:   blobs,
		hub:     hub,
		timeout: timeout,
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
