package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/api/responses"
	"github.com/svaldeco/atelierq-backend/api/validators"
	"github.com/svaldeco/atelierq-backend/internal/rfq"
	pkgerrors "github.com/svaldeco/atelierq-backend/pkg/errors"
	"github.com/svaldeco/atelierq-backend/pkg/logger"
)

// RouteItemBody selects the suppliers an item is sent to for quotes.
type RouteItemBody struct {
	BoardID     *string  `json:"board_id,omitempty"`
	SupplierIDs []string `json:"supplier_ids" validate:"required,min=1,dive,uuid"`
}

// SubmitBidBody carries a supplier's quote for a routed item.
type SubmitBidBody struct {
	AmountCents int64  `json:"amount_cents" validate:"required,min=1"`
	Currency    string `json:"currency" validate:"required,len=3"`
}

// RouteItem fans an item out to the selected suppliers.
func RouteItem(svc rfq.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rfq service unavailable"))
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		var body RouteItemBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var boardID *uuid.UUID
		if body.BoardID != nil {
			parsed, err := uuid.Parse(*body.BoardID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid board id"))
				return
			}
			boardID = &parsed
		}

		supplierIDs := make([]uuid.UUID, 0, len(body.SupplierIDs))
		for _, raw := range body.SupplierIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier id"))
				return
			}
			supplierIDs = append(supplierIDs, id)
		}

		routes, err := svc.RouteItem(r.Context(), itemID, boardID, supplierIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"routes": routes})
	}
}

// ListItemRoutes returns all routes for an item.
func ListItemRoutes(svc rfq.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rfq service unavailable"))
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		routes, err := svc.ListRoutes(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"routes": routes})
	}
}

// MarkRouteSent transitions a route from pending to sent.
func MarkRouteSent(svc rfq.Service, logg *logger.Logger) http.HandlerFunc {
	return routeTransition(svc, logg, func(r *http.Request, routeID uuid.UUID) error {
		return svc.MarkRouteSent(r.Context(), routeID)
	}, "sent")
}

// MarkRouteViewed records that the supplier opened the request.
func MarkRouteViewed(svc rfq.Service, logg *logger.Logger) http.HandlerFunc {
	return routeTransition(svc, logg, func(r *http.Request, routeID uuid.UUID) error {
		return svc.MarkRouteViewed(r.Context(), routeID)
	}, "viewed")
}

// DeclineRoute records that the supplier passed on the request.
func DeclineRoute(svc rfq.Service, logg *logger.Logger) http.HandlerFunc {
	return routeTransition(svc, logg, func(r *http.Request, routeID uuid.UUID) error {
		return svc.DeclineRoute(r.Context(), routeID)
	}, "declined")
}

// SubmitBid records a supplier quote against a route.
func SubmitBid(svc rfq.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rfq service unavailable"))
			return
		}

		routeID, err := uuid.Parse(chi.URLParam(r, "routeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid route id"))
			return
		}

		var body SubmitBidBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bid, err := svc.SubmitBid(r.Context(), routeID, rfq.SubmitBidInput{
			AmountCents: body.AmountCents,
			Currency:    body.Currency,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bid)
	}
}

func routeTransition(svc rfq.Service, logg *logger.Logger, apply func(*http.Request, uuid.UUID) error, status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rfq service unavailable"))
			return
		}

		routeID, err := uuid.Parse(chi.URLParam(r, "routeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid route id"))
			return
		}

		if err := apply(r, routeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": status})
	}
}
