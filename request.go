package steamworkshop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/swag"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// maxErrorBodySize limits how much of a non-2xx body is read into the
// error message.
const maxErrorBodySize = 4096

// params collects request parameters in Steam's encoding.
type params struct {
	values url.Values
}

func newParams() *params {
	return &params{values: url.Values{}}
}

func (p *params) set(key, value string) *params {
	p.values.Set(key, value)
	return p
}

func (p *params) setUint(key string, v uint64) *params {
	return p.set(key, swag.FormatUint64(v))
}

func (p *params) setInt(key string, v int64) *params {
	return p.set(key, swag.FormatInt64(v))
}

// setBool encodes booleans as Steam expects them: "true" or "false".
func (p *params) setBool(key string, v bool) *params {
	return p.set(key, swag.FormatBool(v))
}

// setArray encodes a list with Steam's indexed convention:
// name[0]=a&name[1]=b.
func (p *params) setArray(name string, items []string) *params {
	for i, item := range items {
		p.values.Set(name+"["+strconv.Itoa(i)+"]", item)
	}
	return p
}

func (p *params) encode() string {
	return p.values.Encode()
}

// bodyEncoding says where the parameters of a call go.
type bodyEncoding int

const (
	// inQuery puts parameters in the URL query string.
	inQuery bodyEncoding = iota
	// inForm sends parameters as an application/x-www-form-urlencoded body.
	inForm
)

// call is one request/response exchange with Steam.
type call struct {
	endpoint Endpoint
	params   *params
	encoding bodyEncoding
}

// do sends the call and decodes the JSON body into out. The API key is
// attached when configured. Every failure is returned as an *Error.
func (c *Client) do(ctx context.Context, cl call, out any) (err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	status := 0
	log := c.logger.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"endpoint":   cl.endpoint.String(),
	})
	defer func() {
		elapsed := time.Since(start)
		log := log.WithFields(logrus.Fields{
			"status":   status,
			"duration": elapsed.String(),
		})
		code := "OK"
		if err != nil {
			var apiErr *Error
			if errors.As(err, &apiErr) {
				code = apiErr.Code
			}
			log.WithError(err).Warn("steam call failed")
		} else {
			log.Debug("steam call completed")
		}
		c.metrics.observe(cl.endpoint, code, elapsed)
	}()

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return err
	}

	log.WithField("method", req.Method).Debug("sending steam call")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return c.handleError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return newError(
			CodeHTTPStatus,
			statusMessage(resp, body),
			resp.StatusCode,
			nil,
		)
	}

	if err := runtime.JSONConsumer().Consume(resp.Body, out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return c.handleError(ctx, ctxErr)
		}
		return newError(CodeDecode, "failed to decode "+cl.endpoint.String()+" response", resp.StatusCode, err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	if err := validateBaseURL(c.baseURL); err != nil {
		return nil, badRequest("invalid base URL", err)
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, badRequest("invalid base URL", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + cl.endpoint.Path()

	p := cl.params
	if p == nil {
		p = newParams()
	}
	if c.apiKey != "" {
		p.set("key", c.apiKey)
	}

	var body io.Reader = http.NoBody
	if cl.encoding == inForm {
		body = bytes.NewBufferString(p.encode())
	} else {
		u.RawQuery = p.encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.endpoint.HTTPMethod, u.String(), body)
	if err != nil {
		return nil, badRequest("failed to create request", err)
	}

	req.Header.Set("Accept", runtime.JSONMime)
	req.Header.Set("User-Agent", c.userAgent)
	if cl.encoding == inForm {
		req.Header.Set("Content-Type", runtime.URLencodedFormMime)
	}

	return req, nil
}

// handleError maps a failed round trip to TIMEOUT or TRANSPORT.
func (c *Client) handleError(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newError(CodeTimeout, "request timed out", 0, redactKey(err, c.apiKey))
	}
	return newError(CodeTransport, "request failed", 0, redactKey(err, c.apiKey))
}

// redactKey strips the API key from transport errors, which quote the URL.
// The result still unwraps to the error beneath the *url.Error, so
// errors.Is(err, context.Canceled) keeps working.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	r := &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED")}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil && !strings.Contains(urlErr.Err.Error(), key) {
		r.cause = urlErr.Err
	}
	return r
}

type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.cause }

func statusMessage(resp *http.Response, body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Sprintf("steam returned %s", resp.Status)
	}
	return fmt.Sprintf("steam returned %s: %s", resp.Status, msg)
}

// errMissingEnvelope is returned when a 2xx body lacks the "response" object.
func errMissingEnvelope(e Endpoint) *Error {
	return newError(CodeDecode, e.String()+" response has no \"response\" object", 0, nil)
}
