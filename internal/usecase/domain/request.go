package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/realtime"

	"github.com/google/uuid"
)

type statusChangedPayload struct {
	ID     string          `json:"id"`
	Status entities.Status `json:"status"`
}

// CreateRequest uploads the attachments, persists the request and
// announces it on the board group. Attachments are uploaded one by one
// before the insert; if any upload or the insert itself fails, the
// blobs stored so far are deleted best effort and the request is never
// persisted.
func (u *Usecase) CreateRequest(
	ctx context.Context,
	actor entities.Identity,
	boardRef string,
	input entities.NewRequestInput,
	files, referenceFiles []entities.Upload,
	autoAssign bool,
) (*entities.Request, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !entities.CanCreateRequests(actor.Role) {
		return nil, fmt.Errorf("%w: role %s cannot create requests", entities.ErrUnauthorized, actor.Role)
	}

	author, err := u.repo.GetUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !author.Active || author.Deleted {
		return nil, fmt.Errorf("%w: account disabled", entities.ErrUnauthorized)
	}

	if err := normalizeNewRequest(&input); err != nil {
		return nil, err
	}

	board, err := u.resolveBoard(ctx, boardRef)
	if err != nil {
		return nil, err
	}

	uploaded := make([]entities.FileRef, 0, len(files)+len(referenceFiles))
	fileRefs, err := u.uploadAll(ctx, files, &uploaded)
	if err != nil {
		u.cleanupBlobs(uploaded)
		return nil, err
	}
	referenceRefs, err := u.uploadAll(ctx, referenceFiles, &uploaded)
	if err != nil {
		u.cleanupBlobs(uploaded)
		return nil, err
	}

	request := entities.Request{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Priority:    input.Priority,
		Status:      entities.StatusAwaiting,
		Size:        input.Size,
		Legals:      input.Legals,
		Author: entities.UserRef{
			ID:     author.ID,
			Name:   author.Name,
			Avatar: author.Avatar,
		},
		Board: entities.BoardRef{
			ID:    board.ID,
			Slug:  board.Slug,
			Name:  board.Name,
			Color: board.Color,
		},
		Files:          fileRefs,
		ReferenceFiles: referenceRefs,
		FinishDate:     input.FinishDate,
	}
	if autoAssign {
		request.AssignedTo = &entities.UserRef{
			ID:     author.ID,
			Name:   author.Name,
			Avatar: author.Avatar,
		}
		request.IsAutoAssigned = true
	}

	created, err := u.repo.InsertRequest(ctx, request)
	if err != nil {
		u.cleanupBlobs(uploaded)
		return nil, err
	}

	u.hub.PublishBoard(board.Slug, realtime.Event{Name: realtime.EventRequestCreated})
	u.log.Infow("request created", "request_id", created.ID, "board", board.Slug, "auto_assigned", autoAssign)
	return created, nil
}

// Request fetches a single request by id. No visibility filter applies
// here: an existing request is returned to any authenticated caller.
func (u *Usecase) Request(ctx context.Context, requestID string) (*entities.Request, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if requestID == "" {
		return nil, fmt.Errorf("%w: request id is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetRequest(ctx, requestID)
}

// SetStatus moves a request to the given status and pushes the change
// to the board group and the caller's user group. The transition policy
// only requires both endpoints to be valid statuses.
func (u *Usecase) SetStatus(ctx context.Context, actor entities.Identity, requestID string, status entities.Status) (*entities.Request, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if requestID == "" {
		return nil, fmt.Errorf("%w: request id is required", entities.ErrInvalidArgument)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, status)
	}

	current, err := u.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !entities.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: cannot move %s to %s", entities.ErrInvalidArgument, current.Status, status)
	}

	updated, err := u.repo.UpdateRequestStatus(ctx, requestID, status)
	if err != nil {
		return nil, err
	}

	event := realtime.Event{
		Name:    realtime.EventStatusChanged,
		Payload: statusChangedPayload{ID: updated.ID, Status: updated.Status},
	}
	u.hub.PublishBoard(updated.Board.Slug, event)
	u.hub.PublishUser(actor.ID, event)

	return updated, nil
}

// resolveBoard accepts either a slug or a board id, slug first.
func (u *Usecase) resolveBoard(ctx context.Context, ref string) (*entities.Board, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: board reference is required", entities.ErrInvalidArgument)
	}
	board, err := u.repo.GetBoardBySlug(ctx, ref)
	if errors.Is(err, entities.ErrBoardNotFound) {
		return u.repo.GetBoardByID(ctx, ref)
	}
	return board, err
}

// uploadAll stores the uploads in order, appending every stored ref to
// seen so the caller can compensate on a later failure.
func (u *Usecase) uploadAll(ctx context.Context, uploads []entities.Upload, seen *[]entities.FileRef) ([]entities.FileRef, error) {
	refs := make([]entities.FileRef, 0, len(uploads))
	for _, up := range uploads {
		ref, err := u.blobs.Upload(ctx, up.Data, up.Name)
		if err != nil {
			return nil, err
		}
		*seen = append(*seen, ref)
		refs = append(refs, ref)
	}
	return refs, nil
}

// cleanupBlobs deletes orphaned uploads best effort. Failures are
// logged and swallowed: the caller's error is the one that matters.
// The base context is used so a cancelled request does not abort the
// compensation.
func (u *Usecase) cleanupBlobs(refs []entities.FileRef) {
	if len(refs) == 0 {
		return
	}
	ctx, cancel := withTimeout(u.ctx, u.timeout)
	defer cancel()

	for _, ref := range refs {
		if err := u.blobs.Delete(ctx, ref.ID); err != nil {
			u.log.Errorw("failed to delete orphaned file", "file_id", ref.ID, "error", err)
		}
	}
}

func normalizeNewRequest(input *entities.NewRequestInput) error {
	if input.Title == "" || input.Description == "" {
		return fmt.Errorf("%w: title and description are required", entities.ErrInvalidArgument)
	}
	if input.FinishDate.IsZero() {
		return fmt.Errorf("%w: finish date is required", entities.ErrInvalidArgument)
	}
	if input.Type == "" {
		input.Type = entities.TypeSpecial
	}
	if input.Priority == "" {
		input.Priority = entities.PriorityLow
	}
	if !input.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", entities.ErrInvalidArgument, input.Type)
	}
	if !input.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", entities.ErrInvalidArgument, input.Priority)
	}
	return nil
}
