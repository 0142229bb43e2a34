package api

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/engine/mock_engine.go -package=enginemock

import (
	"context"
	"net/http"

	"room-reservation/internal/domain/reservation"
	reqdto "room-reservation/internal/handler/dto/request"
	resdto "room-reservation/internal/handler/dto/response"
	"room-reservation/internal/handler/httperr"
	"room-reservation/internal/pkg/errs"
	"room-reservation/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReservationEngine is the command side the routes talk to.
type ReservationEngine interface {
	CreateReservation(ctx context.Context, client reservation.ClientInfo, period reservation.StayPeriod) (commands.ReservationResponse, error)
	UpdateReservation(ctx context.Context, id uuid.UUID, upd reservation.Update) (commands.ReservationResponse, error)
	GetReservation(ctx context.Context, id uuid.UUID) (commands.ReservationResponse, error)
	CancelReservation(ctx context.Context, id uuid.UUID) (commands.ReservationResponse, error)
	ListAvailabilities(ctx context.Context, from, to *reservation.Date) (commands.AvailabilitiesResponse, error)
}

type ReservationHandler struct {
	engine ReservationEngine
}

func NewReservationHandler(engine ReservationEngine) *ReservationHandler {
	return &ReservationHandler{engine: engine}
}

// @Summary Create reservation
// @Description Book the room for 1 to 3 nights, starting tomorrow at the earliest and within a month
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", httperr.BindingDetail(err))
		return
	}
	client, period, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	resp, err := h.engine.CreateReservation(c.Request.Context(), client, period)
	if !h.checkReply(c, resp.Outcome, err) {
		return
	}
	c.Header("Location", "/api/reservations/"+resp.Reservation.ID().String())
	c.JSON(resp.Status, resdto.FromReservation(resp.Reservation))
}

// @Summary List availabilities
// @Description Free windows between from and to (defaults: tomorrow, one month later)
// @Tags reservations
// @Produce json
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day (exclusive), YYYY-MM-DD"
// @Success 200 {object} resdto.AvailabilitiesResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListAvailabilities(c *gin.Context) {
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", httperr.BindingDetail(err))
		return
	}
	from, to, err := q.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	resp, err := h.engine.ListAvailabilities(c.Request.Context(), from, to)
	if !h.checkReply(c, resp.Outcome, err) {
		return
	}
	c.JSON(resp.Status, resdto.FromAvailabilities(resp.From, resp.To, resp.Availabilities))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.engine.GetReservation(c.Request.Context(), id)
	h.renderReservation(c, resp, err)
}

// @Summary Update reservation
// @Description Change the period and/or status. Reactivating requires both dates.
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Fields to change"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [put]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", httperr.BindingDetail(err))
		return
	}
	upd, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	resp, err := h.engine.UpdateReservation(c.Request.Context(), id, upd)
	h.renderReservation(c, resp, err)
}

// @Summary Cancel reservation
// @Description Canceling twice is not an error
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.engine.CancelReservation(c.Request.Context(), id)
	h.renderReservation(c, resp, err)
}

func (h *ReservationHandler) renderReservation(c *gin.Context, resp commands.ReservationResponse, err error) {
	if !h.checkReply(c, resp.Outcome, err) {
		return
	}
	c.JSON(resp.Status, resdto.FromReservation(resp.Reservation))
}

// checkReply aborts with the error body for a failed ask or a non-2xx outcome.
func (h *ReservationHandler) checkReply(c *gin.Context, out commands.Outcome, err error) bool {
	if err != nil {
		status := commands.StatusOf(err)
		msg := "Reservation engine unavailable"
		if status != http.StatusServiceUnavailable {
			msg = "Internal server error"
		}
		httperr.AbortWithError(c, status, err, msg, nil)
		return false
	}
	if out.OK() {
		return true
	}

	switch out.Status {
	case http.StatusNotFound:
		httperr.AbortWithError(c, out.Status, errs.ErrReservationNotFound, "Reservation not found", nil)
	default:
		cause := out.Err
		if cause == nil {
			cause = errs.New(http.StatusText(out.Status))
		}
		httperr.AbortWithError(c, out.Status, cause, cause.Error(), nil)
	}
	return false
}

func (h *ReservationHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
