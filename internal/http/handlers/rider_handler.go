// README: Rider handlers: registration upsert and listing.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpools/internal/modules/rider"
)

type RiderHandler struct {
	riders *rider.Service
}

func NewRiderHandler(riders *rider.Service) *RiderHandler {
	return &RiderHandler{riders: riders}
}

type riderSlotReq struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

type registerRiderReq struct {
	Name         string                    `json:"name" validate:"required"`
	Email        string                    `json:"email" validate:"required,email"`
	Availability map[string][]riderSlotReq `json:"availability" validate:"required"`
	Divisions    map[string]bool           `json:"divisions" validate:"required"`
}

func (h *RiderHandler) Register(c *gin.Context) {
	var req registerRiderReq
	if !bindAndValidate(c, &req) {
		return
	}

	availability := make(map[string][]rider.Slot, len(req.Availability))
	for date, slots := range req.Availability {
		converted := make([]rider.Slot, 0, len(slots))
		for _, s := range slots {
			converted = append(converted, rider.Slot{Start: s.Start, End: s.End})
		}
		availability[date] = converted
	}

	id, created, err := h.riders.Register(c.Request.Context(), rider.RegisterCommand{
		Name:         req.Name,
		Email:        req.Email,
		Availability: availability,
		Divisions:    req.Divisions,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	message := "Rider updated successfully!"
	if created {
		message = "Rider added successfully!"
	}
	c.JSON(http.StatusCreated, gin.H{"message": message, "rider_id": id})
}

func (h *RiderHandler) List(c *gin.Context) {
	riders, err := h.riders.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, riders)
}
