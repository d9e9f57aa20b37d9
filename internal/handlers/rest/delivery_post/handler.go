package delivery_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"delivery/internal/entities"
	"delivery/internal/handlers/rest/dto"
	"delivery/internal/service/delivery"
	"delivery/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.DeliveryCreate
	err := json.NewDecoder(r.Body).Decode(&createDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	createEntity := entities.CreateDelivery{
		OrderID:         createDTO.OrderID,
		PickupLocation:  createDTO.PickupLocation.ToEntity(),
		DropoffLocation: createDTO.DropoffLocation.ToEntity(),
		Notes:           createDTO.Notes,
	}

	res, err := h.service.CreateAndAssign(r.Context(), createEntity)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidOrderID),
			errors.Is(err, delivery.ErrMissingRequiredFields),
			errors.Is(err, entities.ErrInvalidCoordinates):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, delivery.ErrOrderAlreadyHasDelivery):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.FromDeliveryEntity(res)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
