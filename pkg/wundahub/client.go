package wundahub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HubClientConfig carries the connection settings for one hub.
type HubClientConfig struct {
	// Host is the hub's network address, host or host:port.
	Host     string
	Username string
	Password string
	// Timeout bounds one request/response round trip.
	Timeout time.Duration
	// Retries and RetryDelay tune the command retry loop.
	Retries    int
	RetryDelay time.Duration
}

func (c *HubClientConfig) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Retries <= 0 {
		c.Retries = DefaultRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
}

// HubClient talks the hub's two HTTP endpoints: syncvalues.cgi for state
// and cmd.cgi for actions. All traffic to one hub is serialized through the
// shared SessionManager.
type HubClient struct {
	cfg      HubClientConfig
	sessions *SessionManager
	logger   *zap.Logger
}

func NewHubClient(cfg HubClientConfig, sessions *SessionManager, logger *zap.Logger) *HubClient {
	cfg.applyDefaults()
	return &HubClient{
		cfg:      cfg,
		sessions: sessions,
		logger:   logger.With(zap.String("hub", cfg.Host)),
	}
}

func (c *HubClient) Host() string {
	return c.cfg.Host
}

// GetDevices fetches and parses the full device state over the persistent
// session.
func (c *HubClient) GetDevices(ctx context.Context) (DeviceGraph, error) {
	release := c.sessions.Acquire(c.cfg.Host)
	defer release()

	client := c.sessions.Persistent(c.cfg.Host, c.cfg.Timeout)
	return c.getDevices(ctx, client)
}

// ValidateConnection performs one state fetch over a throwaway session.
// Used before the polling loop starts, typically to check credentials.
func (c *HubClient) ValidateConnection(ctx context.Context) error {
	release := c.sessions.Acquire(c.cfg.Host)
	defer release()

	client, teardown := c.sessions.Transient(c.cfg.Timeout)
	defer teardown()
	_, err := c.getDevices(ctx, client)
	return err
}

func (c *HubClient) getDevices(ctx context.Context, client *http.Client) (DeviceGraph, error) {
	body, err := c.get(ctx, client, "http://"+c.cfg.Host+syncValuesPath)
	if err != nil {
		return nil, err
	}
	graph, err := ParseSyncValues(string(body))
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched device state", zap.Int("devices", len(graph)))
	return graph, nil
}

// SendCommand sends one cmd.cgi request, retrying transport failures and
// non-200 statuses up to the configured attempt count with a fixed delay in
// between. A 200 whose body is not a JSON object is fatal immediately: the
// hub was reachable and produced a deliberate reply, retrying won't help.
func (c *HubClient) SendCommand(ctx context.Context, params Params) (map[string]any, error) {
	release := c.sessions.Acquire(c.cfg.Host)
	defer release()

	client := c.sessions.Persistent(c.cfg.Host, c.cfg.Timeout)
	url := "http://" + c.cfg.Host + commandPath + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.cfg.Retries; attempt++ {
		body, err := c.get(ctx, client, url)
		if err == nil {
			var envelope map[string]any
			if jsonErr := json.Unmarshal(body, &envelope); jsonErr != nil {
				return nil, &CommandError{Attempts: attempt, Err: fmt.Errorf("unparseable response %q: %w", body, jsonErr)}
			}
			return envelope, nil
		}
		lastErr = err
		if attempt < c.cfg.Retries {
			c.logger.Warn("command attempt failed, retrying",
				zap.Int("attempt", attempt), zap.Error(err))
			select {
			case <-time.After(c.cfg.RetryDelay):
			case <-ctx.Done():
				return nil, &CommandError{Attempts: attempt, Err: ctx.Err()}
			}
		}
	}
	return nil, &CommandError{Attempts: c.cfg.Retries, Err: lastErr}
}

func (c *HubClient) get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Op: url, Err: err}
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &ProtocolError{Op: url, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: url, Err: err}
	}
	return body, nil
}
