package usecase

import (
	"context"
	"time"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/blobstore"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/realtime"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/repository"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	UserUsecaseInterface
	BoardUsecaseInterface
	RequestUsecaseInterface
	LoadUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	blobs blobstore.Store,
	hub realtime.Publisher,
	timeout time.Duration,
) InterfaceUsecase {
	return domain.New(log, ctx, repo, blobs, hub, timeout)
}
