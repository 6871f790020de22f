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
	"github.com/svaldeco/atelierq-backend/internal/boards"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
)

// CreateBoardBody is the request payload for creating a sourcing board.
type CreateBoardBody struct {
	Name             string  `json:"name" validate:"required,min=1,max=120"`
	SourcingCategory *string `json:"sourcing_category,omitempty"`
	DeliveryCity     *string `json:"delivery_city,omitempty"`
	DeliveryCountry  *string `json:"delivery_country,omitempty"`
}

// UpdateBoardDeliveryBody updates the delivery destination of a board.
type UpdateBoardDeliveryBody struct {
	DeliveryCity    *string `json:"delivery_city,omitempty"`
	DeliveryCountry *string `json:"delivery_country,omitempty"`
}

// CreateBoard creates a sourcing board owned by the caller.
func CreateBoard(svc boards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "boards service unavailable"))
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body CreateBoardBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		board, err := svc.CreateBoard(r.Context(), userID, boards.CreateBoardInput{
			Name:             body.Name,
			SourcingCategory: body.SourcingCategory,
			DeliveryCity:     body.DeliveryCity,
			DeliveryCountry:  body.DeliveryCountry,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, board)
	}
}

// GetBoard returns a board visible to the caller.
func GetBoard(svc boards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "boards service unavailable"))
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		boardID, err := uuid.Parse(chi.URLParam(r, "boardId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid board id"))
			return
		}

		board, err := svc.GetBoard(r.Context(), boardID, userID, middleware.IsAdminFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, board)
	}
}

// ListBoards returns the caller's boards.
func ListBoards(svc boards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "boards service unavailable"))
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
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

		list, err := svc.ListBoards(r.Context(), userID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"boards": list})
	}
}

// UpdateBoardDelivery sets the delivery destination used for timeline
// estimates on the board's items.
func UpdateBoardDelivery(svc boards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "boards service unavailable"))
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		boardID, err := uuid.Parse(chi.URLParam(r, "boardId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid board id"))
			return
		}

		var body UpdateBoardDeliveryBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		board, err := svc.UpdateDelivery(r.Context(), boardID, userID, middleware.IsAdminFromContext(r.Context()), boards.DeliveryInput{
			DeliveryCity:    body.DeliveryCity,
			DeliveryCountry: body.DeliveryCountry,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, board)
	}
}
