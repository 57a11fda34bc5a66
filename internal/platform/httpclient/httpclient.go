package httpclient

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

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"nutriplan-dashboard/internal/platform/logger"
	"nutriplan-dashboard/internal/ports/health"
)

const (
	DefaultTimeout = 10 * time.Second
	HealthTimeout  = 5 * time.Second

	DefaultMaxBodyBytes int64 = 8 << 20 // 8MB
)

// Service identifica a uno de los microservicios upstream.
type Service string

const (
	ServiceUsers   Service = "usuarios"
	ServicePlans   Service = "planos"
	ServiceRecipes Service = "receitas"
)

var (
	ErrUnknownService = errors.New("httpclient: unknown service")
	ErrCircuitOpen    = errors.New("httpclient: service marked down")
	ErrBodyTooLarge   = errors.New("httpclient: response body too large")
)

// Outcomes reportados al Observer.
const (
	OutcomeOK             = "ok"
	OutcomeEmpty          = "empty"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
	OutcomeCircuitOpen    = "circuit_open"
	OutcomeTooLarge       = "too_large"
	OutcomeInvalidRequest = "invalid_request"
)

type Observer interface {
	ObserveUpstream(service, outcome string, d time.Duration)
}

// Circuit: si Cache != nil y Cooldown > 0, un fallo de transporte o 5xx
// marca el servicio como caído durante Cooldown y las llamadas siguientes
// no salen a la red.
type Circuit struct {
	Cache    health.Cache
	Cooldown time.Duration
}

func (c Circuit) enabled() bool {
	return c.Cache != nil && c.Cooldown > 0
}

type Config struct {
	BaseURLs map[Service]string
	Timeout  time.Duration

	// MaxBodyBytes <= 0 usa DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Transport permite inyectar un RoundTripper (p.ej. para tests).
	Transport http.RoundTripper

	Circuit  Circuit
	Logger   logger.Logger
	Observer Observer
}

// Client hace una sola ida y vuelta HTTP contra un servicio y normaliza la respuesta en un Result.
// No reintenta.
type Client struct {
	http    *http.Client
	bases   map[Service]string
	circuit Circuit
	maxBody int64
	log     logger.Logger
	obs     Observer
}

func New(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := cfg.Transport
	if tr == nil {
		tr = http.DefaultTransport
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	bases := make(map[Service]string, len(cfg.BaseURLs))
	for svc, raw := range cfg.BaseURLs {
		raw = strings.TrimSpace(raw)
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf("invalid base url for %s: %w", svc, err)
		}
		bases[svc] = strings.TrimRight(raw, "/")
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		bases:   bases,
		circuit: cfg.Circuit,
		maxBody: maxBody,
		log:     log.With(map[string]any{"component": "httpclient"}),
		obs:     cfg.Observer,
	}, nil
}

// BaseURL devuelve la URL base configurada para svc.
func (c *Client) BaseURL(svc Service) (string, bool) {
	b, ok := c.bases[svc]
	return b, ok
}

// Options de una llamada. Headers del caller pisan los defaults.
type Options struct {
	Method  string
	Query   url.Values
	Headers map[string]string
	Body    any
}

// Call ejecuta el request y nunca devuelve error: todo se expresa en Result.
func (c *Client) Call(ctx context.Context, svc Service, path string, opts Options) Result {
	start := time.Now()
	ctx = withRequestID(ctx)

	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	fullURL, err := c.resolveURL(svc, path, opts.Query)
	if err != nil {
		return c.finish(ctx, svc, method, path, start, OutcomeInvalidRequest, failure(0, nil, err))
	}

	if c.circuit.enabled() {
		down, err := c.circuit.Cache.IsDown(ctx, string(svc))
		if err != nil {
			// fail-open: si la caché no responde, se llama igual
			c.log.Warn("health cache unavailable", map[string]any{"service": string(svc), "error": err})
		} else if down {
			return c.finish(ctx, svc, method, fullURL, start, OutcomeCircuitOpen, failure(0, nil, ErrCircuitOpen))
		}
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return c.finish(ctx, svc, method, fullURL, start, OutcomeInvalidRequest,
				failure(0, nil, fmt.Errorf("httpclient: marshal json: %w", err)))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return c.finish(ctx, svc, method, fullURL, start, OutcomeInvalidRequest,
			failure(0, nil, fmt.Errorf("httpclient: new request: %w", err)))
	}

	// Defaults
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))

	// Extra headers
	for k, v := range opts.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.trip(ctx, svc)
		return c.finish(ctx, svc, method, fullURL, start, OutcomeTransportError,
			failure(0, nil, fmt.Errorf("httpclient: do request: %w", err)))
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, c.maxBody)
	if errors.Is(err, ErrBodyTooLarge) {
		return c.finish(ctx, svc, method, fullURL, start, OutcomeTooLarge,
			failure(resp.StatusCode, nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBody)))
	}
	if err != nil {
		c.trip(ctx, svc)
		return c.finish(ctx, svc, method, fullURL, start, OutcomeTransportError,
			failure(resp.StatusCode, nil, fmt.Errorf("httpclient: read body: %w", err)))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 {
			c.trip(ctx, svc)
		}
		return c.finish(ctx, svc, method, fullURL, start, OutcomeHTTPError,
			failure(resp.StatusCode, raw, newHTTPError(resp.StatusCode, raw)))
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return c.finish(ctx, svc, method, fullURL, start, OutcomeEmpty,
			Result{Kind: KindEmpty, StatusCode: resp.StatusCode})
	}

	return c.finish(ctx, svc, method, fullURL, start, OutcomeOK,
		Result{Kind: KindOK, StatusCode: resp.StatusCode, Body: raw})
}

// CheckHealth hace GET <base>/health con timeout de 5s. Solo 2xx es sano.
func (c *Client) CheckHealth(ctx context.Context, svc Service) bool {
	base, ok := c.bases[svc]
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("health check failed", map[string]any{"service": string(svc), "error": err})
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	healthy := resp.StatusCode >= 200 && resp.StatusCode < 300
	if healthy && c.circuit.enabled() {
		if err := c.circuit.Cache.MarkUp(ctx, string(svc)); err != nil {
			c.log.Warn("health cache mark up failed", map[string]any{"service": string(svc), "error": err})
		}
	}
	return healthy
}

func (c *Client) trip(ctx context.Context, svc Service) {
	if !c.circuit.enabled() || ctx.Err() != nil {
		// si el caller canceló no es culpa del servicio
		return
	}
	if err := c.circuit.Cache.MarkDown(context.WithoutCancel(ctx), string(svc), c.circuit.Cooldown); err != nil {
		c.log.Warn("health cache mark down failed", map[string]any{"service": string(svc), "error": err})
	}
}

func (c *Client) finish(ctx context.Context, svc Service, method, target string, start time.Time, outcome string, res Result) Result {
	elapsed := time.Since(start)
	if c.obs != nil {
		c.obs.ObserveUpstream(string(svc), outcome, elapsed)
	}

	if res.Kind == KindFailure {
		fields := map[string]any{
			"service":    string(svc),
			"method":     method,
			"url":        target,
			"request_id": requestID(ctx),
			"outcome":    outcome,
			"elapsed_ms": elapsed.Milliseconds(),
			"error":      res.Err,
		}
		if res.StatusCode != 0 {
			fields["status"] = res.StatusCode
		}
		c.log.Warn("upstream call failed", fields)
	}
	return res
}

func (c *Client) resolveURL(svc Service, path string, q url.Values) (string, error) {
	base, ok := c.bases[svc]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownService, svc)
	}

	path = strings.TrimSpace(path)
	if path != "" && !strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "?") {
		path = "/" + path
	}

	full := base + path
	if len(q) > 0 {
		sep := "?"
		if strings.Contains(full, "?") {
			sep = "&"
		}
		full += sep + q.Encode()
	}
	return full, nil
}

// withRequestID reutiliza el id del request entrante (chi) o genera uno nuevo.
func withRequestID(ctx context.Context) context.Context {
	if chimw.GetReqID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, uuid.NewString())
}

func requestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// readAtMost lee hasta limit bytes. Un cuerpo más largo es ErrBodyTooLarge,
// nunca un cuerpo truncado.
func readAtMost(r io.Reader, limit int64) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, ErrBodyTooLarge
	}
	return raw, nil
}
