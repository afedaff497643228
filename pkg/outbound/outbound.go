package outbound

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
)

type Response struct {
	StatusCode int
	Body       []byte
}

type result struct {
	res Response
	err error
}

// NewClient returns a fasthttp client that never retries, so a call costs at most one timeout.
func NewClient(name string) *fasthttp.Client {
	return &fasthttp.Client{
		Name:                      name,
		MaxIdemponentCallAttempts: 1,
		RetryIf:                   func(*fasthttp.Request) bool { return false },
	}
}

// Deadline is now+timeout, or the ctx deadline when that comes first.
func Deadline(ctx context.Context, timeout time.Duration) time.Time {
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		return d
	}
	return deadline
}

// Do sends the request built by prepare and returns as soon as the call finishes, the
// timeout passes or ctx is done. The request and response are released by the goroutine
// running the call, never while it is still using them.
func Do(ctx context.Context, client *fasthttp.Client, timeout time.Duration, prepare func(req *fasthttp.Request)) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	req := fasthttp.AcquireRequest()
	res := fasthttp.AcquireResponse()
	prepare(req)
	deadline := Deadline(ctx, timeout)

	done := make(chan result, 1)
	go func() {
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(res)

		var r result
		if r.err = client.DoDeadline(req, res, deadline); r.err == nil {
			r.res = Response{
				StatusCode: res.StatusCode(),
				Body:       append([]byte(nil), res.Body()...),
			}
		}
		done <- r
	}()

	select {
	case r := <-done:
		return r.res, r.err
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}
