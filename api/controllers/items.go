package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/api/middleware"
	"github.com/svaldeco/atelierq-backend/api/responses"
	"github.com/svaldeco/atelierq-backend/api/validators"
	"github.com/svaldeco/atelierq-backend/internal/items"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
	"github.com/svaldeco/atelierq-backend/pkg/pagination"
)

// CreateItemBody is the request payload for adding an item to a board.
type CreateItemBody struct {
	BoardID     string   `json:"board_id" validate:"required,uuid"`
	Title       string   `json:"title" validate:"required,min=1,max=500"`
	Description *string  `json:"description,omitempty"`
	ItemType    string   `json:"item_type" validate:"required"`
	Status      string   `json:"status,omitempty"`
	Quantity    int      `json:"quantity" validate:"omitempty,min=1"`
	Tags        []string `json:"tags,omitempty"`
}

// CreateItem adds a new item to one of the caller's boards.
func CreateItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "items service unavailable"))
			return
		}

		editor, err := editorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body CreateItemBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		boardID, err := uuid.Parse(body.BoardID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid board id"))
			return
		}

		item, err := svc.CreateItem(r.Context(), editor, items.CreateItemInput{
			BoardID:     boardID,
			Title:       body.Title,
			Description: body.Description,
			ItemType:    body.ItemType,
			Status:      body.Status,
			Quantity:    body.Quantity,
			Tags:        body.Tags,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// GetItem returns a single item visible to the caller.
func GetItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "items service unavailable"))
			return
		}

		editor, err := editorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		item, err := svc.GetItemForUser(r.Context(), itemID, editor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// UpdateItem applies a partial field update to an item. The body is a flat
// object of field name to new value; unknown fields reject the whole request.
func UpdateItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "items service unavailable"))
			return
		}

		editor, err := editorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		payload, err := validators.DecodeJSONMap(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateItem(r.Context(), itemID, editor, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListItemEdits returns the audit trail for an item, newest first.
func ListItemEdits(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "items service unavailable"))
			return
		}

		editor, err := editorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		limit := 0
		if limitStr := strings.TrimSpace(r.URL.Query().Get("limit")); limitStr != "" {
			value, err := strconv.Atoi(limitStr)
			if err != nil || value <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
				return
			}
			limit = value
		}

		records, err := svc.ListItemEdits(r.Context(), itemID, editor, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"edits": records})
	}
}

// ListBoardItems returns a cursor-paginated page of items on a board.
func ListBoardItems(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "items service unavailable"))
			return
		}

		editor, err := editorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		boardID, err := uuid.Parse(chi.URLParam(r, "boardId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid board id"))
			return
		}

		limit := 0
		if limitStr := strings.TrimSpace(r.URL.Query().Get("limit")); limitStr != "" {
			value, err := strconv.Atoi(limitStr)
			if err != nil || value <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
				return
			}
			limit = value
		}

		var cursor *pagination.Cursor
		if raw := strings.TrimSpace(r.URL.Query().Get("cursor")); raw != "" {
			parsed, err := pagination.ParseCursor(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
				return
			}
			cursor = parsed
		}

		page, next, err := svc.ListBoardItems(r.Context(), boardID, editor, limit, cursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := map[string]any{"items": page}
		if next != nil {
			resp["cursor"] = pagination.EncodeCursor(*next)
		}
		responses.WriteSuccess(w, resp)
	}
}

func editorFromRequest(r *http.Request) (items.Editor, error) {
	userID, err := requireUserID(r)
	if err != nil {
		return items.Editor{}, err
	}
	editor := items.Editor{UserID: userID, Role: enums.EditorRoleUser}
	if middleware.IsAdminFromContext(r.Context()) {
		editor.Role = enums.EditorRoleAdmin
		editor.IsAdmin = true
	}
	return editor, nil
}
