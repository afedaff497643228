package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/acikkaynak/reliefhub-go/metrics"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/pkg/outbound"
	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 10 * time.Second
	maxParallel    = 8
)

var ErrNoRecipients = errors.New("no emergency numbers configured")

type Sender interface {
	Send(ctx context.Context, number, body string) error
}

type message struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// Gateway posts messages to an HTTP SMS provider.
type Gateway struct {
	url     string
	apiKey  string
	timeout time.Duration
	http    *fasthttp.Client
}

func NewGateway(url, apiKey string) *Gateway {
	return &Gateway{
		url:     url,
		apiKey:  apiKey,
		timeout: defaultTimeout,
		http:    outbound.NewClient("reliefhub-sms"),
	}
}

func (g *Gateway) Send(ctx context.Context, number, body string) error {
	payload, err := jsoniter.Marshal(message{To: number, Body: body})
	if err != nil {
		return fmt.Errorf("could not encode sms: %w", err)
	}

	res, err := outbound.Do(ctx, g.http, g.timeout, func(req *fasthttp.Request) {
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		if g.apiKey != "" {
			req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+g.apiKey)
		}
		req.SetRequestURI(g.url)
		req.SetBody(payload)
	})
	if err != nil {
		return fmt.Errorf("could not send sms to %s: %w", number, err)
	}
	if code := res.StatusCode; code < 200 || code > 299 {
		return fmt.Errorf("sms gateway responded with status %d: %s", code, strings.TrimSpace(string(res.Body)))
	}
	return nil
}

// Fanout sends body to every number concurrently. A failed number does not stop the
// others; all failures are returned together.
func Fanout(ctx context.Context, sender Sender, numbers []string, body string) error {
	if len(numbers) == 0 {
		return ErrNoRecipients
	}

	errs := make([]error, len(numbers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, number := range numbers {
		i, number := i, number
		g.Go(func() error {
			if err := sender.Send(gctx, number, body); err != nil {
				metrics.SMSSends.WithLabelValues("error").Inc()
				log.Logger().Warn("sms delivery failed", zap.String("to", number), zap.Error(err))
				errs[i] = err
				return nil
			}
			metrics.SMSSends.WithLabelValues("ok").Inc()
			return nil
		})
	}
	_ = g.Wait()

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
