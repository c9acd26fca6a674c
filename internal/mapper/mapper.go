// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"github.com/AlexRizo/flowee-bodesa-backend/internal/api"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"
)

// ToAPIRequest maps entities.Request to transport model.
func ToAPIRequest(r entities.Request) api.Request {
	out := api.Request{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Type:           string(r.Type),
		Priority:       string(r.Priority),
		Status:         string(r.Status),
		Size:           r.Size,
		Legals:         r.Legals,
		Author:         toAPIUserRef(r.Author),
		Board:          toAPIBoardRef(r.Board),
		IsAutoAssigned: r.IsAutoAssigned,
		Files:          toAPIFileRefs(r.Files),
		ReferenceFiles: toAPIFileRefs(r.ReferenceFiles),
		FinishDate:     r.FinishDate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.AssignedTo != nil {
		assigned := toAPIUserRef(*r.AssignedTo)
		out.AssignedTo = &assigned
	}
	return out
}

// ToAPIRequestList maps a slice of requests to transport slice.
func ToAPIRequestList(list []entities.Request) []api.Request {
	res := make([]api.Request, 0, len(list))
	for _, r := range list {
		res = append(res, ToAPIRequest(r))
	}
	return res
}

// ToAPIUser maps entities.User to transport model. The deleted flag is
// internal and never serialized.
func ToAPIUser(u entities.User) api.User {
	return api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// ToAPIUserList maps a slice of users to transport slice.
func ToAPIUserList(list []entities.User) []api.User {
	res := make([]api.User, 0, len(list))
	for _, u := range list {
		res = append(res, ToAPIUser(u))
	}
	return res
}

// ToAPIBoard maps entities.Board to transport model.
func ToAPIBoard(b entities.Board) api.Board {
	return api.Board{
		ID:        b.ID,
		Name:      b.Name,
		Slug:      b.Slug,
		Color:     b.Color,
		Initials:  b.Initials,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
	}
}

// ToAPIBoardList maps a slice of boards to transport slice.
func ToAPIBoardList(list []entities.Board) []api.Board {
	res := make([]api.Board, 0, len(list))
	for _, b := range list {
		res = append(res, ToAPIBoard(b))
	}
	return res
}

// ToAPILoadList maps the designer workload report to transport slice.
func ToAPILoadList(list []entities.DesignerLoad) []api.DesignerLoad {
	res := make([]api.DesignerLoad, 0, len(list))
	for _, l := range list {
		res = append(res, api.DesignerLoad{
			Designer:   toAPIUserRef(l.Designer),
			Pending:    l.Pending,
			Awaiting:   l.Awaiting,
			InProgress: l.InProgress,
			Total:      l.Total,
		})
	}
	return res
}

// FromAPIBoard builds an entities.Board from the create payload.
func FromAPIBoard(src api.CreateBoardRequest) entities.Board {
	return entities.Board{
		Name:     src.Name,
		Slug:     src.Slug,
		Color:    src.Color,
		Initials: src.Initials,
	}
}

// FromAPIUser builds an entities.User from the create payload.
func FromAPIUser(src api.CreateUserRequest) entities.User {
	return entities.User{
		Name:   src.Name,
		Email:  src.Email,
		Avatar: src.Avatar,
		Role:   entities.Role(src.Role),
		Active: true,
	}
}

func toAPIUserRef(u entities.UserRef) api.UserRef {
	return api.UserRef{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

func toAPIBoardRef(b entities.BoardRef) api.BoardRef {
	return api.BoardRef{ID: b.ID, Slug: b.Slug, Name: b.Name, Color: b.Color}
}

func toAPIFileRefs(files []entities.FileRef) []api.FileRef {
	res := make([]api.FileRef, 0, len(files))
	for _, f := range files {
		res = append(res, api.FileRef{ID: f.ID, URL: f.URL})
	}
	return res
}
