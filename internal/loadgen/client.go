package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	reqdto "room-reservation/internal/handler/dto/request"
	resdto "room-reservation/internal/handler/dto/response"
	"room-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

// Client talks to the reservation API over HTTP. A non-2xx status is not an error.
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) Create(ctx context.Context, req reqdto.CreateReservationRequest) (*resdto.ReservationResponse, int, error) {
	var out resdto.ReservationResponse
	status, err := c.do(ctx, http.MethodPost, "/api/reservations", req, &out)
	return orNil(&out, status, http.StatusCreated), status, err
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (*resdto.ReservationResponse, int, error) {
	var out resdto.ReservationResponse
	status, err := c.do(ctx, http.MethodGet, "/api/reservations/"+id.String(), nil, &out)
	return orNil(&out, status, http.StatusOK), status, err
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest) (*resdto.ReservationResponse, int, error) {
	var out resdto.ReservationResponse
	status, err := c.do(ctx, http.MethodPut, "/api/reservations/"+id.String(), req, &out)
	return orNil(&out, status, http.StatusOK), status, err
}

func (c *Client) Cancel(ctx context.Context, id uuid.UUID) (*resdto.ReservationResponse, int, error) {
	var out resdto.ReservationResponse
	status, err := c.do(ctx, http.MethodDelete, "/api/reservations/"+id.String(), nil, &out)
	return orNil(&out, status, http.StatusOK), status, err
}

func (c *Client) Availabilities(ctx context.Context, from, to string) (*resdto.AvailabilitiesResponse, int, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	path := "/api/reservations"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out resdto.AvailabilitiesResponse
	status, err := c.do(ctx, http.MethodGet, path, nil, &out)
	return orNil(&out, status, http.StatusOK), status, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, errs.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return 0, errs.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errs.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, errs.Wrap(err, "failed to decode response")
	}
	return resp.StatusCode, nil
}

func orNil[T any](v *T, status, want int) *T {
	if status != want {
		return nil
	}
	return v
}
