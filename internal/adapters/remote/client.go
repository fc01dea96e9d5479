// Package remote implements ports.RemoteClient over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
	"go.trai.ch/nourish/internal/temporal"
	"go.trai.ch/zerr"
)

const (
	retryWaitTime    = 100 * time.Millisecond
	retryMaxWaitTime = 2 * time.Second
)

// Client talks to the nutrition backend with resty.
type Client struct {
	http  *resty.Client
	codec *temporal.Codec
	log   ports.Logger

	// seenUnits records unknown unit values already reported.
	seenUnits sync.Map
}

// New creates a Client from cfg. Times in outbound requests are rendered with codec.
func New(cfg domain.APIConfig, codec *temporal.Codec, log ports.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(retryCondition)

	if cfg.Token != "" {
		httpClient.SetAuthToken(cfg.Token)
	}

	httpClient.SetLogger(restyLogger{log: log})

	return &Client{
		http:  httpClient,
		codec: codec,
		log:   log,
	}
}

// retryCondition retries transport errors, throttling and server errors.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= http.StatusInternalServerError ||
		code == http.StatusTooManyRequests ||
		code == http.StatusRequestTimeout
}

// FetchDaily requests the summary of req.CurrentDate.
func (c *Client) FetchDaily(ctx context.Context, req domain.NutritionRequest) (*domain.Envelope[domain.DailySummary], error) {
	body := dailyRequest{
		CurrentDate:     c.codec.FormatInstantUTC(req.CurrentDate),
		UserInformation: req.User,
	}
	env, err := send[domain.DailySummary](ctx, c, http.MethodPost, pathDaily, body, false)
	if err != nil {
		return nil, err
	}
	if env.Data != nil {
		c.reportUnknownUnits(env.Data.Meals)
	}
	return env, nil
}

// FetchWeekly requests the summary of the week starting at req.StartDate.
func (c *Client) FetchWeekly(ctx context.Context, req domain.NutritionRequest) (*domain.Envelope[domain.WeeklySummary], error) {
	body := weeklyRequest{
		StartDate:       c.codec.FormatInstantUTC(req.StartDate),
		UserInformation: req.User,
	}
	env, err := send[domain.WeeklySummary](ctx, c, http.MethodPost, pathWeekly, body, false)
	if err != nil {
		return nil, err
	}
	if env.Data != nil {
		for _, day := range env.Data.Days {
			c.reportUnknownUnits(day.Meals)
		}
	}
	return env, nil
}

// CreateMeal adds a meal. The request carries an idempotency key derived from its body.
func (c *Client) CreateMeal(ctx context.Context, req domain.MealRequest) (*domain.Envelope[domain.Meal], error) {
	return c.sendMeal(ctx, http.MethodPost, req, true)
}

// UpdateMeal replaces an existing meal.
func (c *Client) UpdateMeal(ctx context.Context, req domain.MealRequest) (*domain.Envelope[domain.Meal], error) {
	return c.sendMeal(ctx, http.MethodPut, req, false)
}

func (c *Client) sendMeal(ctx context.Context, method string, req domain.MealRequest, idempotent bool) (*domain.Envelope[domain.Meal], error) {
	env, err := send[domain.Meal](ctx, c, method, pathFood, req, idempotent)
	if err != nil {
		return nil, err
	}
	if env.Data != nil {
		c.reportUnknownUnits([]domain.Meal{*env.Data})
	}
	return env, nil
}

// DeleteMeal removes a meal.
func (c *Client) DeleteMeal(ctx context.Context, id int) (*domain.Envelope[bool], error) {
	return send[bool](ctx, c, http.MethodDelete, pathFood, deleteRequest{ID: id}, false)
}

func send[T any](ctx context.Context, c *Client, method, path string, body any, idempotent bool) (*domain.Envelope[T], error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to encode request"), "path", path)
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader(headerRequestID, uuid.NewString()).
		SetBody(payload)
	if idempotent {
		req.SetHeader(headerIdempotency, IdempotencyKey(payload))
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "request failed"), "path", path)
	}
	return decode[T](resp, path)
}

// decode reads an envelope. Non-2xx bodies count as envelopes only when they
// carry a message or structured errors; such envelopes are always unsuccessful.
func decode[T any](resp *resty.Response, path string) (*domain.Envelope[T], error) {
	status := resp.StatusCode()
	raw := bytes.TrimSpace(resp.Body())

	var env domain.Envelope[T]
	decodeErr := json.Unmarshal(raw, &env)

	if !resp.IsSuccess() {
		_, hasErrors := env.FirstError()
		if decodeErr != nil || (env.Message == "" && !hasErrors) {
			return nil, zerr.With(
				zerr.With(zerr.Wrap(domain.ErrUnexpectedStatus, "request rejected"), "status", status),
				"path", path,
			)
		}
		env.Success = false
		return &env, nil
	}

	if len(raw) == 0 || decodeErr != nil {
		err := zerr.With(zerr.Wrap(domain.ErrMalformedResponse, "failed to decode response"), "path", path)
		if decodeErr != nil {
			err = zerr.With(err, "reason", decodeErr.Error())
		}
		return nil, err
	}
	return &env, nil
}

func (c *Client) reportUnknownUnits(meals []domain.Meal) {
	if c.log == nil {
		return
	}
	for _, m := range meals {
		for _, ing := range m.Ingredients {
			if ing.UnknownUnit == "" {
				continue
			}
			if _, seen := c.seenUnits.LoadOrStore(ing.UnknownUnit, struct{}{}); seen {
				continue
			}
			c.log.Warn(fmt.Sprintf("unknown unit %s mapped to %s", ing.UnknownUnit, domain.UnitOther))
		}
	}
}

// IdempotencyKey derives a stable key from an encoded request body.
func IdempotencyKey(payload []byte) string {
	return strconv.FormatUint(xxhash.Sum64(payload), 16)
}
