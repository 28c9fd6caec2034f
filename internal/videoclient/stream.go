package videoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/lib/logger/sl"
)

// APIError is a non-2xx answer from the platform.
type APIError struct {
	StatusCode int    `json:"StatusCode"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("video platform: status %d code %d: %s", e.StatusCode, e.Code, e.Message)
}

type StreamConfig struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// StreamClient talks to a Stream-compatible video REST API using a server
// token signed with the API secret.
type StreamClient struct {
	baseURL string
	apiKey  string
	secret  []byte
	http    *http.Client
	log     *slog.Logger
	now     func() time.Time
}

func NewStreamClient(cfg StreamConfig, log *slog.Logger) (*StreamClient, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("video api key and secret are required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil || cfg.BaseURL == "" {
		return nil, errors.New("video base url is invalid")
	}
	if log == nil {
		log = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &StreamClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		secret:  []byte(cfg.APISecret),
		http:    httpClient,
		log:     log,
		now:     time.Now,
	}, nil
}

type streamUser struct {
	ID string `json:"id"`
}

type streamCall struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	CID       string         `json:"cid,omitempty"`
	CreatedBy *streamUser    `json:"created_by,omitempty"`
	StartsAt  *time.Time     `json:"starts_at,omitempty"`
	EndedAt   *time.Time     `json:"ended_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Custom    map[string]any `json:"custom,omitempty"`
}

type streamMember struct {
	UserID string `json:"user_id"`
}

type streamCallData struct {
	CreatedByID string         `json:"created_by_id,omitempty"`
	StartsAt    *time.Time     `json:"starts_at,omitempty"`
	Custom      map[string]any `json:"custom,omitempty"`
	Members     []streamMember `json:"members,omitempty"`
}

type getOrCreateRequest struct {
	Data streamCallData `json:"data"`
}

type callResponse struct {
	Call    streamCall `json:"call"`
	Created bool       `json:"created"`
}

type sortParam struct {
	Field     string `json:"field"`
	Direction int    `json:"direction"`
}

type queryCallsRequest struct {
	FilterConditions map[string]any `json:"filter_conditions"`
	Sort             []sortParam    `json:"sort"`
	Limit            int            `json:"limit"`
}

type queryCallsResponse struct {
	Calls []callResponse `json:"calls"`
}

type streamRecording struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type recordingsResponse struct {
	Recordings []streamRecording `json:"recordings"`
}

func (c *StreamClient) GetOrCreateCall(ctx context.Context, req CreateCallRequest) (*domain.Call, error) {
	const op = "videoclient.stream.getOrCreateCall"
	log := c.log.With(
		slog.String("op", op),
		slog.String("call_type", req.Type),
		slog.String("call_id", req.ID),
	)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := getOrCreateRequest{
		Data: streamCallData{
			CreatedByID: req.CreatedBy,
			Custom:      req.Custom,
		},
	}
	if !req.StartsAt.IsZero() {
		startsAt := req.StartsAt.UTC()
		body.Data.StartsAt = &startsAt
	}
	for _, member := range req.Members {
		body.Data.Members = append(body.Data.Members, streamMember{UserID: member})
	}

	var resp callResponse
	if err := c.do(ctx, http.MethodPost, callPath(req.Type, req.ID), body, &resp); err != nil {
		log.Error("get or create call failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("call ready", slog.Bool("created", resp.Created))
	return toDomainCall(&resp.Call), nil
}

func (c *StreamClient) GetCall(ctx context.Context, callType string, id string) (*domain.Call, error) {
	const op = "videoclient.stream.getCall"

	var resp callResponse
	if err := c.do(ctx, http.MethodGet, callPath(callType, id), nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toDomainCall(&resp.Call), nil
}

func (c *StreamClient) QueryCalls(ctx context.Context, query CallQuery) ([]*domain.Call, error) {
	const op = "videoclient.stream.queryCalls"

	if query.UserID == "" {
		return nil, errors.Join(ErrInvalidRequest, errors.New("user id is required"))
	}

	body := queryCallsRequest{
		FilterConditions: map[string]any{
			"starts_at": map[string]any{"$exists": true},
			"$or": []map[string]any{
				{"created_by_user_id": query.UserID},
				{"members": map[string]any{"$in": []string{query.UserID}}},
			},
		},
		Sort:  []sortParam{{Field: "starts_at", Direction: -1}},
		Limit: query.limit(),
	}

	var resp queryCallsResponse
	if err := c.do(ctx, http.MethodPost, "/video/calls", body, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	calls := make([]*domain.Call, 0, len(resp.Calls))
	for i := range resp.Calls {
		calls = append(calls, toDomainCall(&resp.Calls[i].Call))
	}
	return calls, nil
}

func (c *StreamClient) ListRecordings(ctx context.Context, callType string, id string) ([]*domain.Recording, error) {
	const op = "videoclient.stream.listRecordings"

	var resp recordingsResponse
	if err := c.do(ctx, http.MethodGet, callPath(callType, id)+"/recordings", nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recordings := make([]*domain.Recording, 0, len(resp.Recordings))
	for _, r := range resp.Recordings {
		recordings = append(recordings, &domain.Recording{
			CallType:  callType,
			CallID:    id,
			Filename:  r.Filename,
			URL:       r.URL,
			StartTime: r.StartTime.UTC(),
			EndTime:   r.EndTime.UTC(),
		})
	}
	return recordings, nil
}

func (c *StreamClient) UserToken(userID string, ttl time.Duration) (string, error) {
	return signUserToken(c.secret, userID, c.now(), ttl)
}

func (c *StreamClient) serverToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"server": true})
	return token.SignedString(c.secret)
}

func (c *StreamClient) do(ctx context.Context, method string, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path + "?api_key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	token, err := c.serverToken()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("stream-auth-type", "jwt")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if len(data) > 0 {
			_ = json.Unmarshal(data, apiErr)
		}
		apiErr.StatusCode = resp.StatusCode
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode == http.StatusNotFound {
			return errors.Join(ErrCallNotFound, apiErr)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func callPath(callType string, id string) string {
	return "/video/call/" + url.PathEscape(callType) + "/" + url.PathEscape(id)
}

func toDomainCall(c *streamCall) *domain.Call {
	call := &domain.Call{
		ID:        c.ID,
		Type:      c.Type,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
		Custom:    c.Custom,
	}
	if c.CreatedBy != nil {
		call.CreatedBy = c.CreatedBy.ID
	}
	if c.StartsAt != nil {
		call.StartsAt = c.StartsAt.UTC()
	}
	if c.EndedAt != nil {
		call.EndedAt = c.EndedAt.UTC()
	}
	if call.Type == "" {
		call.Type = domain.DefaultCallType
	}
	return call
}

func signUserToken(secret []byte, userID string, now time.Time, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
	}
	if ttl > 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
