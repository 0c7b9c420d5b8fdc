// README: Drive handlers: creation with immediate matching, listing, signup.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carpools/internal/modules/drive"
	"carpools/internal/modules/matching"
	"carpools/internal/types"
)

type DriveHandler struct {
	drives  *drive.Service
	matcher *matching.Service
	log     *zap.Logger
}

func NewDriveHandler(drives *drive.Service, matcher *matching.Service, log *zap.Logger) *DriveHandler {
	return &DriveHandler{drives: drives, matcher: matcher, log: log}
}

type slotSpecReq struct {
	Start    string `json:"start" validate:"required"`
	End      string `json:"end" validate:"required"`
	Capacity int    `json:"capacity" validate:"omitempty,min=1"`
}

type dateSlotsReq struct {
	Date  string        `json:"date" validate:"required"`
	Slots []slotSpecReq `json:"slots" validate:"required,min=1,dive"`
}

type createDriveReq struct {
	DriverName    string         `json:"driverName" validate:"required"`
	DriverEmail   string         `json:"driverEmail" validate:"required,email"`
	DriverPhone   string         `json:"driverPhone"`
	PickupAddress string         `json:"pickupAddress" validate:"required"`
	PerDateSlots  []dateSlotsReq `json:"perDateSlots" validate:"required,min=1,dive"`
}

type createdDriveResp struct {
	Drive        drive.Drive `json:"drive"`
	PairedRiders []types.ID  `json:"paired_riders"`
}

// Create geocodes the pickup, fans the payload out into drives, and runs
// the fairness matcher over each one before responding.
func (h *DriveHandler) Create(c *gin.Context) {
	var req createDriveReq
	if !bindAndValidate(c, &req) {
		return
	}

	cmd := drive.CreateCommand{
		DriverName:    req.DriverName,
		DriverEmail:   req.DriverEmail,
		DriverPhone:   req.DriverPhone,
		PickupAddress: req.PickupAddress,
	}
	for _, day := range req.PerDateSlots {
		ds := drive.DateSlots{Date: day.Date}
		for _, s := range day.Slots {
			ds.Slots = append(ds.Slots, drive.SlotSpec{Start: s.Start, End: s.End, Capacity: s.Capacity})
		}
		cmd.PerDateSlots = append(cmd.PerDateSlots, ds)
	}

	created, err := h.drives.Create(c.Request.Context(), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp := make([]createdDriveResp, 0, len(created))
	for _, d := range created {
		if _, err := h.matcher.MatchDrive(c.Request.Context(), d); err != nil {
			// The drive exists; a matching failure degrades it to unmatched
			// rather than failing the creation.
			h.log.Warn("matching failed for new drive",
				zap.String("drive_id", string(d.ID)), zap.Error(err))
		}
		resp = append(resp, createdDriveResp{Drive: *d, PairedRiders: d.PairedRiders})
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Driver added successfully!",
		"drives":  resp,
	})
}

func (h *DriveHandler) List(c *gin.Context) {
	drives, err := h.drives.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, drives)
}

func (h *DriveHandler) Get(c *gin.Context) {
	d, err := h.drives.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DriveHandler) Delete(c *gin.Context) {
	if err := h.drives.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Drive deleted"})
}

type signupReq struct {
	Name      string          `json:"name" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	Date      string          `json:"date" validate:"required"`
	Start     string          `json:"start" validate:"required"`
	End       string          `json:"end" validate:"required"`
	Divisions map[string]bool `json:"divisions"`
}

// Signup is the self-service path: the rider opts into a specific drive,
// so capacity bookkeeping runs without the fairness filter.
func (h *DriveHandler) Signup(c *gin.Context) {
	var req signupReq
	if !bindAndValidate(c, &req) {
		return
	}
	d, riderID, err := h.drives.Signup(c.Request.Context(), types.ID(c.Param("id")), drive.SignupCommand{
		Name:      req.Name,
		Email:     req.Email,
		Date:      req.Date,
		Start:     req.Start,
		End:       req.End,
		Divisions: req.Divisions,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Signed up successfully!",
		"rider_id": riderID,
		"drive":    d,
	})
}
