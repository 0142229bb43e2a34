//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/handler/api"
	resdto "room-reservation/internal/handler/dto/response"
	"room-reservation/internal/handler/middleware"
	"room-reservation/internal/pkg/errs"
	"room-reservation/internal/usecase/commands"
	"room-reservation/tests/common/builder"
	"room-reservation/tests/common/httptest"
	"room-reservation/tests/common/testutil"
	enginemock "room-reservation/tests/mock/engine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockCtrl   *gomock.Controller
	mockEngine *enginemock.MockReservationEngine
	handler    *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockEngine = enginemock.NewMockReservationEngine(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockEngine)

	s.router.POST("/reservations", s.handler.CreateReservation)
	s.router.GET("/reservations", s.handler.ListAvailabilities)
	s.router.GET("/reservations/:id", s.handler.GetReservation)
	s.router.PUT("/reservations/:id", s.handler.UpdateReservation)
	s.router.DELETE("/reservations/:id", s.handler.CancelReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

func reply(status int, r *reservation.Reservation) commands.ReservationResponse {
	return commands.ReservationResponse{Outcome: commands.Success(status), Reservation: r}
}

func failed(err error) commands.ReservationResponse {
	return commands.ReservationResponse{Outcome: commands.Failure(err)}
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequestDTO()
	created := b.BuildDomain()

	validation := []testCaseReservation{
		{name: "missing field: clientEmail", mutate: testutil.Field("clientEmail", nil), expectCode: http.StatusBadRequest, expectInBody: "Invalid request format"},
		{name: "missing field: clientName", mutate: testutil.Field("clientName", nil), expectCode: http.StatusBadRequest, expectInBody: "Invalid request format"},
		{name: "missing field: arrivalDate", mutate: testutil.Field("arrivalDate", nil), expectCode: http.StatusBadRequest, expectInBody: "Invalid request format"},
		{name: "missing field: departureDate", mutate: testutil.Field("departureDate", nil), expectCode: http.StatusBadRequest, expectInBody: "Invalid request format"},
		{name: "malformed email", mutate: testutil.Field("clientEmail", "not-an-email"), expectCode: http.StatusBadRequest, expectInBody: "Invalid request format"},
		{name: "malformed arrival date", mutate: testutil.Field("arrivalDate", "06/03/2024"), expectCode: http.StatusBadRequest, expectInBody: "invalid date"},
		{name: "impossible departure date", mutate: testutil.Field("departureDate", "2024-02-30"), expectCode: http.StatusBadRequest, expectInBody: "invalid date"},
	}

	s.Run("success: returns 201 Created with Location", func() {
		s.mockEngine.EXPECT().
			CreateReservation(gomock.Any(), b.BuildClient(), b.BuildPeriod()).
			Return(reply(http.StatusCreated, created), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID(), body.ID)
		s.Equal(b.Arrival.String(), body.ArrivalDate)
		s.Equal(b.Departure.String(), body.DepartureDate)
		s.Equal("ACTIVE", body.Status)
		s.Equal(2, body.NbDays)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/reservations/" + created.ID().String()})
	})

	s.Run("error: 400 Bad Request on malformed bodies", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectInBody)
			})
		}
	})

	s.Run("error: validation detail names the rejected field", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("clientEmail", "not-an-email"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
		resp := httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		s.Equal([]any{map[string]any{"field": "clientEmail", "rule": "email"}}, resp.Detail)
	})

	s.Run("error: 400 Bad Request on invalid JSON", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, "{not json")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps engine outcomes to proper statuses", func() {
		testCases := []struct {
			name           string
			resp           commands.ReservationResponse
			askErr         error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking rule violation",
				resp:           failed(reservation.ErrTooLong),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "You can not reserve for more than three days.",
			},
			{
				name:           "period taken",
				resp:           failed(reservation.ErrNotAvailable),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "This reservation period is not available.",
			},
			{
				name:           "store failure",
				resp:           failed(errs.Mark(errors.New("disk full"), errs.ErrStoreOperationFailed)),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "disk full",
			},
			{
				name:           "engine did not reply in time",
				askErr:         errs.ErrAskTimeout,
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "Reservation engine unavailable",
			},
			{
				name:           "engine stopped",
				askErr:         errs.ErrEngineStopped,
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "Reservation engine unavailable",
			},
			{
				name:           "unexpected ask error",
				askErr:         errors.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockEngine.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tc.resp, tc.askErr).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestListAvailabilities
// ================================================================================

func (s *ReservationHandlerTestSuite) TestListAvailabilities() {
	from := builder.Today.AddDays(1)
	to := builder.Today.AddDays(10)
	windows := []reservation.Availability{
		reservation.NewAvailability(from, builder.Today.AddDays(3)),
		reservation.NewAvailability(builder.Today.AddDays(5), to),
	}

	s.Run("success: defaults are left to the engine", func() {
		s.mockEngine.EXPECT().ListAvailabilities(gomock.Any(), gomock.Nil(), gomock.Nil()).
			Return(commands.AvailabilitiesResponse{
				Outcome:        commands.Success(http.StatusOK),
				From:           from,
				To:             to,
				Availabilities: windows,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil)

		var body resdto.AvailabilitiesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(from.String(), body.From)
		s.Equal(to.String(), body.To)
		s.Equal([]resdto.AvailabilityResponse{
			{From: "2024-06-02", To: "2024-06-04", NbDays: 2},
			{From: "2024-06-06", To: "2024-06-11", NbDays: 5},
		}, body.Availabilities)
	})

	s.Run("success: explicit bounds are passed through", func() {
		s.mockEngine.EXPECT().ListAvailabilities(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f, t *reservation.Date) (commands.AvailabilitiesResponse, error) {
				s.Require().NotNil(f)
				s.Require().NotNil(t)
				s.True(f.Equal(from))
				s.True(t.Equal(to))
				return commands.AvailabilitiesResponse{Outcome: commands.Success(http.StatusOK), From: *f, To: *t}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reservations?from="+from.String()+"&to="+to.String(), nil)

		var body resdto.AvailabilitiesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Availabilities)
		s.NotNil(body.Availabilities)
	})

	s.Run("error: 400 Bad Request on malformed bound", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?from=tomorrow", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid date")
	})

	s.Run("error: window rule violation", func() {
		s.mockEngine.EXPECT().ListAvailabilities(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(commands.AvailabilitiesResponse{Outcome: commands.Failure(reservation.ErrAlreadyPast)}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?to=2024-05-01", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Period already past.")
	})
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	existing := builder.NewReservationBuilder().BuildDomain()

	s.Run("success: returns 200 OK", func() {
		s.mockEngine.EXPECT().GetReservation(gomock.Any(), existing.ID()).
			Return(reply(http.StatusOK, existing), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+existing.ID().String(), nil)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(existing.ID(), body.ID)
		s.Equal(existing.ClientEmail(), body.ClientEmail)
	})

	s.Run("error: 400 Bad Request on invalid ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID format")
	})

	s.Run("error: 404 Not Found", func() {
		s.mockEngine.EXPECT().GetReservation(gomock.Any(), gomock.Any()).
			Return(failed(errs.ErrReservationNotFound), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+uuid.NewString(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestUpdateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdateReservation() {
	b := builder.NewReservationBuilder().Days(3, 5)
	updated := b.BuildDomain()
	url := "/reservations/" + updated.ID().String()

	s.Run("success: full body reaches the engine as a patch", func() {
		s.mockEngine.EXPECT().UpdateReservation(gomock.Any(), updated.ID(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, upd reservation.Update) (commands.ReservationResponse, error) {
				arrival, _ := upd.Arrival.Get()
				departure, _ := upd.Departure.Get()
				status, ok := upd.Status.Get()
				s.True(upd.HasFullPeriod())
				s.True(arrival.Equal(b.Arrival))
				s.True(departure.Equal(b.Departure))
				s.True(ok)
				s.Equal(reservation.StatusActive, status)
				return reply(http.StatusOK, updated), nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildUpdateRequestDTO())

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.Arrival.String(), body.ArrivalDate)
	})

	s.Run("success: absent fields stay unset", func() {
		s.mockEngine.EXPECT().UpdateReservation(gomock.Any(), updated.ID(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, upd reservation.Update) (commands.ReservationResponse, error) {
				status, ok := upd.Status.Get()
				s.False(upd.Arrival.IsSet())
				s.False(upd.Departure.IsSet())
				s.True(ok)
				s.Equal(reservation.StatusCanceled, status)
				return reply(http.StatusOK, updated), nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"status": "canceled"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	validation := []testCaseReservation{
		{name: "unknown status", mutate: testutil.Field("status", "PENDING"), expectCode: http.StatusBadRequest, expectInBody: "invalid reservation status"},
		{name: "malformed arrival", mutate: testutil.Field("arrivalDate", "soon"), expectCode: http.StatusBadRequest, expectInBody: "invalid date"},
	}
	s.Run("error: 400 Bad Request on malformed fields", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), b.BuildUpdateRequestDTO(), tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectInBody)
			})
		}
	})

	s.Run("error: reactivation without the period", func() {
		s.mockEngine.EXPECT().UpdateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failed(reservation.ErrNotReactivableWithoutPeriod), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"status": "ACTIVE"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, reservation.ErrNotReactivableWithoutPeriod.Error())
	})

	s.Run("error: 404 Not Found", func() {
		s.mockEngine.EXPECT().UpdateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failed(errs.ErrReservationNotFound), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+uuid.NewString(), map[string]any{})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestCancelReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	canceled := builder.NewReservationBuilder().Canceled().BuildDomain()

	s.Run("success: returns the canceled reservation", func() {
		s.mockEngine.EXPECT().CancelReservation(gomock.Any(), canceled.ID()).
			Return(reply(http.StatusOK, canceled), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+canceled.ID().String(), nil)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("CANCELED", body.Status)
	})

	s.Run("error: 400 Bad Request on invalid ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/123", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID format")
	})

	s.Run("error: 503 when the engine is gone", func() {
		s.mockEngine.EXPECT().CancelReservation(gomock.Any(), gomock.Any()).
			Return(commands.ReservationResponse{}, errs.ErrEngineStopped).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+uuid.NewString(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Reservation engine unavailable")
	})
}
