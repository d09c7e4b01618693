package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/common"
	"github.com/wheelsapp/wheels-cli/internal/logging"
)

// TokenSource supplies the current bearer token, or "" when no session is
// active. The session manager satisfies this.
type TokenSource interface {
	Token() string
}

// HTTPClient implements Client against the backend's REST endpoints.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// do issues one JSON request/response exchange. Transport failures wrap
// common.ErrUnavailable; non-2xx responses become *Error with the backend's
// message envelope when present.
func (h *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	h.setCommonHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	h.log.Debug(ctx, "backend call", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, extractMessage(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (h *HTTPClient) setCommonHeaders(req *http.Request) {
	req.Header.Set("X-Request-Id", uuid.NewString())
	if t := h.tokens.Token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
}

// extractMessage pulls the backend's {message} envelope out of an error body.
func extractMessage(data []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &env); err == nil {
		return env.Message
	}
	return ""
}

type authResponse struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

func (h *HTTPClient) Login(ctx context.Context, email, password string) (models.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := h.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return models.User{}, "", err
	}
	return resp.User.canonical(), resp.Token, nil
}

func (h *HTTPClient) Register(ctx context.Context, req RegisterRequest) (models.User, string, error) {
	var resp authResponse
	if err := h.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return models.User{}, "", err
	}
	return resp.User.canonical(), resp.Token, nil
}

func (h *HTTPClient) Me(ctx context.Context) (models.User, error) {
	var w wireUser
	if err := h.do(ctx, http.MethodGet, "/user/me", nil, &w); err != nil {
		return models.User{}, err
	}
	return w.canonical(), nil
}

func (h *HTTPClient) UpdateProfile(ctx context.Context, req ProfileUpdate) (models.User, error) {
	var w wireUser
	if err := h.do(ctx, http.MethodPut, "/user/me", req, &w); err != nil {
		return models.User{}, err
	}
	return w.canonical(), nil
}

func (h *HTTPClient) GetCar(ctx context.Context) (models.Car, error) {
	var w wireCar
	if err := h.do(ctx, http.MethodGet, "/car", nil, &w); err != nil {
		return models.Car{}, err
	}
	return w.canonical(), nil
}

func (h *HTTPClient) SaveCar(ctx context.Context, car models.Car) error {
	return h.do(ctx, http.MethodPut, "/car", car, nil)
}

func (h *HTTPClient) CreateTrip(ctx context.Context, req TripRequest) (models.Trip, error) {
	var w wireTrip
	if err := h.do(ctx, http.MethodPost, "/trips", req, &w); err != nil {
		return models.Trip{}, err
	}
	return w.canonical(), nil
}

func (h *HTTPClient) GetTrip(ctx context.Context, id string) (models.Trip, error) {
	var w wireTrip
	if err := h.do(ctx, http.MethodGet, "/trips/"+url.PathEscape(id), nil, &w); err != nil {
		return models.Trip{}, err
	}
	return w.canonical(), nil
}

func (h *HTTPClient) SearchTrips(ctx context.Context, q TripSearch) ([]models.Trip, error) {
	params := url.Values{}
	if q.Destination != "" {
		params.Set("destination", q.Destination)
	}
	if q.Date != "" {
		params.Set("date", q.Date)
	}
	if q.Seats > 0 {
		params.Set("seats", strconv.Itoa(q.Seats))
	}
	path := "/trips"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var list []wireTrip
	if err := h.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	out := make([]models.Trip, 0, len(list))
	for _, w := range list {
		out = append(out, w.canonical())
	}
	return out, nil
}

func (h *HTTPClient) ListReservations(ctx context.Context, userID string) (ReservationList, error) {
	var raw json.RawMessage
	if err := h.do(ctx, http.MethodGet, "/reservations/"+url.PathEscape(userID), nil, &raw); err != nil {
		return ReservationList{}, err
	}

	flat, buckets, err := normalizeReservationList(raw)
	if err != nil {
		return ReservationList{}, fmt.Errorf("decoding reservations: %w", err)
	}
	return ReservationList{Flat: flat, Bucketed: buckets}, nil
}

func (h *HTTPClient) CreateReservation(ctx context.Context, req ReservationRequest) (models.Reservation, error) {
	var w wireReservation
	if err := h.do(ctx, http.MethodPost, "/reservations", req, &w); err != nil {
		return models.Reservation{}, err
	}
	return w.canonical(), nil
}

func (h *HTTPClient) UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	body := map[string]string{"status": denormalizeStatus(status)}
	return h.do(ctx, http.MethodPut, "/reservations/"+url.PathEscape(id), body, nil)
}

func (h *HTTPClient) UploadFile(ctx context.Context, field, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return "", fmt.Errorf("creating multipart field: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("writing multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	h.setCommonHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newError(resp.StatusCode, extractMessage(data))
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return out.URL, nil
}

func (h *HTTPClient) Ping(ctx context.Context) error {
	return h.do(ctx, http.MethodGet, "/health", nil, nil)
}
