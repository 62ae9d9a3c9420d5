package steamworkshop

import "context"

// listTypeSubscribed is the EUCMListType of the subscription list.
const listTypeSubscribed = 1

// SubscribeOption configures [Client.Subscribe].
type SubscribeOption func(*params)

// WithNotifyClient asks Steam to tell a running Steam client about the new
// subscription so it starts downloading right away.
func WithNotifyClient(notify bool) SubscribeOption {
	return func(p *params) {
		p.setBool("notify_client", notify)
	}
}

// WithAppID names the app the file belongs to. Steam can usually infer it.
func WithAppID(appID uint32) SubscribeOption {
	return func(p *params) {
		p.setUint("appid", uint64(appID))
	}
}

// Subscribe adds a published file to the subscriptions of the account that
// owns the API key.
//
// An API key is required even through a proxy; without one Subscribe fails
// with [ErrAuthRequired] before any request is sent.
func (c *Client) Subscribe(ctx context.Context, id string, opts ...SubscribeOption) error {
	if !c.HasAPIKey() {
		return errAuthRequired("Subscribe")
	}
	if err := validateFileID("publishedfileid", id); err != nil {
		return badRequest("invalid published file id", err)
	}

	p := newParams().
		set("publishedfileid", id).
		setInt("list_type", listTypeSubscribed)
	for _, opt := range opts {
		opt(p)
	}

	return c.writeCall(ctx, EndpointSubscribe, p)
}

// Unsubscribe removes a published file from the subscriptions of the
// account that owns the API key. It has the same key requirement as
// [Client.Subscribe].
func (c *Client) Unsubscribe(ctx context.Context, id string) error {
	if !c.HasAPIKey() {
		return errAuthRequired("Unsubscribe")
	}
	if err := validateFileID("publishedfileid", id); err != nil {
		return badRequest("invalid published file id", err)
	}

	p := newParams().
		set("publishedfileid", id).
		setInt("list_type", listTypeSubscribed)

	return c.writeCall(ctx, EndpointUnsubscribe, p)
}

// writeCall sends a call whose only payload is success.
func (c *Client) writeCall(ctx context.Context, e Endpoint, p *params) error {
	var env emptyEnvelope
	if err := c.do(ctx, call{endpoint: e, params: p, encoding: inQuery}, &env); err != nil {
		return err
	}
	if env.Response == nil {
		return errMissingEnvelope(e)
	}
	return nil
}

// CanSubscribe reports whether the account that owns the API key may
// subscribe to the published file. Requires an API key.
func (c *Client) CanSubscribe(ctx context.Context, id string) (bool, error) {
	if !c.HasAPIKey() {
		return false, errAuthRequired("CanSubscribe")
	}
	if err := validateFileID("publishedfileid", id); err != nil {
		return false, badRequest("invalid published file id", err)
	}

	var env canSubscribeEnvelope
	err := c.do(ctx, call{
		endpoint: EndpointCanSubscribe,
		params:   newParams().set("publishedfileid", id),
		encoding: inQuery,
	}, &env)
	if err != nil {
		return false, err
	}
	if env.Response == nil {
		return false, errMissingEnvelope(EndpointCanSubscribe)
	}
	return bool(env.Response.CanSubscribe), nil
}
