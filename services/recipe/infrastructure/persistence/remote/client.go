// Package remote implements the record store against a spreadsheet-backed
// HTTP service. Reads return a JSON envelope; write responses are often
// unobservable, so writes report a models.WriteResult instead of failing hard.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ghuser/recipelog/pkg/logger"
	"github.com/ghuser/recipelog/pkg/telemetry"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
	"github.com/ghuser/recipelog/services/recipe/infrastructure/persistence/fields"
)

const (
	statusSuccess = "success"
	maxBodyBytes  = 10 << 20
)

// Options configures a Client.
type Options struct {
	Endpoint string
	Timeout  time.Duration
	// OpaqueWrites discards write response bodies, so every delivered write
	// reports WriteUnknown. Matches services that cannot be read cross-origin.
	OpaqueWrites bool
	// HTTPClient overrides the traced client built from Timeout.
	HTTPClient *http.Client
}

// Client implements repositories.RecipeStore.
type Client struct {
	endpoint *url.URL
	http     *http.Client
	opaque   bool
	log      logger.Logger
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// NewClient validates the endpoint and builds a client.
func NewClient(opts Options, log logger.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(opts.Endpoint))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("remote store: invalid endpoint %q", opts.Endpoint)
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = telemetry.NewHTTPClient(timeout)
	}
	return &Client{endpoint: u, http: hc, opaque: opts.OpaqueWrites, log: log}, nil
}

func (c *Client) List(ctx context.Context) ([]*models.Recipe, error) {
	data, err := c.get(ctx, "list", nil)
	if err != nil {
		return nil, err
	}
	return c.decodeList(ctx, "list", data)
}

func (c *Client) Search(ctx context.Context, keyword string) ([]*models.Recipe, error) {
	kw := strings.TrimSpace(keyword)
	if kw == "" {
		return c.List(ctx)
	}
	data, err := c.get(ctx, "search", url.Values{"search": {kw}})
	if err != nil {
		return nil, err
	}
	return c.decodeList(ctx, "search", data)
}

func (c *Client) Get(ctx context.Context, id models.RecipeID) (*models.Recipe, error) {
	data, err := c.get(ctx, "get", url.Values{"action": {"getOne"}, "id": {id.String()}})
	if err != nil {
		var se *recipedomain.StoreError
		if errors.As(err, &se) && se.Err == nil && isNotFoundMessage(se.Message) {
			return nil, fmt.Errorf("get %s: %w", id, recipedomain.ErrRecipeNotFound)
		}
		return nil, err
	}
	if isNull(data) {
		return nil, fmt.Errorf("get %s: %w", id, recipedomain.ErrRecipeNotFound)
	}
	var o fields.Object
	if err := json.Unmarshal(data, &o); err != nil || o == nil {
		return nil, &recipedomain.StoreError{Op: "get", Message: "record service sent an unreadable record", Err: err}
	}
	if got, ok := o.ID(keyID); ok {
		id = got
	}
	return toRecipe(o, id), nil
}

func (c *Client) Create(ctx context.Context, d models.RecipeDraft) (models.WriteResult, error) {
	return c.post(ctx, writePayload(actionAdd, "", &d), nil), nil
}

// Update reads the current record, applies p and sends the full result.
func (c *Client) Update(ctx context.Context, id models.RecipeID, p models.RecipePatch) (models.WriteResult, error) {
	existing, err := c.Get(ctx, id)
	if err != nil {
		return models.WriteResult{}, err
	}
	merged := p.Apply(existing)
	d := merged.Draft()
	return c.post(ctx, writePayload(actionUpdate, id, &d), merged), nil
}

func (c *Client) Delete(ctx context.Context, id models.RecipeID) (models.WriteResult, error) {
	existing, err := c.Get(ctx, id)
	if err != nil {
		return models.WriteResult{}, err
	}
	return c.post(ctx, writePayload(actionDelete, id, nil), existing), nil
}

// Ping fetches the collection and discards it.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "ping", nil)
	return err
}

func (c *Client) get(ctx context.Context, op string, q url.Values) (json.RawMessage, error) {
	u := *c.endpoint
	if q != nil {
		merged := u.Query()
		for k, vs := range q {
			merged[k] = vs
		}
		u.RawQuery = merged.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, &recipedomain.StoreError{Op: op, Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &recipedomain.StoreError{Op: op, Message: "record service unreachable", Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &recipedomain.StoreError{Op: op, Message: fmt.Sprintf("record service returned HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &recipedomain.StoreError{Op: op, Message: "read response", Err: err}
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &recipedomain.StoreError{Op: op, Message: "record service sent an unreadable response", Err: err}
	}
	if env.Status != statusSuccess {
		msg := env.Message
		if msg == "" {
			msg = "record service reported an error"
		}
		return nil, &recipedomain.StoreError{Op: op, Message: msg}
	}
	return env.Data, nil
}

func (c *Client) decodeList(ctx context.Context, op string, data json.RawMessage) ([]*models.Recipe, error) {
	if isNull(data) {
		return []*models.Recipe{}, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, &recipedomain.StoreError{Op: op, Message: "record service sent an unreadable list", Err: err}
	}
	out := make([]*models.Recipe, 0, len(elems))
	for i, e := range elems {
		var o fields.Object
		if err := json.Unmarshal(e, &o); err != nil || o == nil {
			c.log.WarnContext(ctx, "remote store: skipping element that is not an object", "op", op, "index", i)
			continue
		}
		id, ok := o.ID(keyID)
		if !ok {
			c.log.WarnContext(ctx, "remote store: skipping record without ID", "op", op, "index", i)
			continue
		}
		out = append(out, toRecipe(o, id))
	}
	return out, nil
}

// post delivers a write. known is the record the caller expects to result,
// used when the response does not carry one.
func (c *Client) post(ctx context.Context, payload fields.Object, known *models.Recipe) models.WriteResult {
	op := payload.String(keyAction)
	body, err := json.Marshal(payload)
	if err != nil {
		return models.Failed("encode request: " + err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return models.Failed("build request: " + err.Error())
	}
	// text/plain keeps the request "simple" for script hosts that reject preflight.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "remote store: write not delivered", "action", op, "error", err)
		return models.Failed("record service unreachable: " + err.Error())
	}
	defer resp.Body.Close() //nolint:errcheck

	if c.opaque {
		_, _ = io.Copy(io.Discard, resp.Body)
		return c.unconfirmed(ctx, op, known, "opaque response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.Failed(fmt.Sprintf("record service returned HTTP %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return c.unconfirmed(ctx, op, known, "empty response")
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return c.unconfirmed(ctx, op, known, "unparseable response")
	}
	if env.Status != statusSuccess {
		msg := env.Message
		if msg == "" {
			msg = "record service rejected the " + op
		}
		return models.Failed(msg)
	}

	res := models.Succeeded(known)
	var o fields.Object
	if json.Unmarshal(env.Data, &o) == nil && o != nil {
		if id, ok := o.ID(keyID); ok {
			res.Recipe = toRecipe(o, id)
		}
	}
	return res
}

func (c *Client) unconfirmed(ctx context.Context, op string, known *models.Recipe, why string) models.WriteResult {
	c.log.InfoContext(ctx, "remote store: write outcome unknown, assuming success", "action", op, "reason", why)
	res := models.Unconfirmed(why)
	res.Recipe = known
	return res
}

func isNull(data json.RawMessage) bool {
	d := bytes.TrimSpace(data)
	return len(d) == 0 || bytes.Equal(d, []byte("null"))
}

func isNotFoundMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "not found") || strings.Contains(msg, "找不到") || strings.Contains(msg, "不存在")
}
