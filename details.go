package steamworkshop

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// GetPublishedFileDetails fetches the metadata of up to [MaxDetailsBatch]
// published files in one request. No API key is needed.
//
// Every id must be a decimal number; invalid input fails with
// [ErrBadRequest] before anything is sent.
//
// The result follows Steam's order, which need not match ids. Match items
// by [WorkshopItem.ID], not position. Steam reports missing, private or
// banned files as entries with a non-OK [WorkshopItem.Result]; they are
// returned rather than dropped, so check [WorkshopItem.Err]:
//
//	items, err := client.GetPublishedFileDetails(ctx, []string{"121221044", "1643520526"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, item := range items {
//	    if errors.Is(item.Err(), steamworkshop.ErrNotFound) {
//	        continue
//	    }
//	    fmt.Println(item.Title)
//	}
//
// Only entries whose id was requested are returned, so the result is never
// longer than ids.
func (c *Client) GetPublishedFileDetails(ctx context.Context, ids []string) ([]WorkshopItem, error) {
	if err := validateFileIDs(ids); err != nil {
		return nil, badRequest("invalid published file ids", err)
	}

	p := newParams().
		setInt("itemcount", int64(len(ids))).
		setArray("publishedfileids", ids)

	var env detailsEnvelope
	err := c.do(ctx, call{
		endpoint: EndpointGetPublishedFileDetails,
		params:   p,
		encoding: inForm,
	}, &env)
	if err != nil {
		return nil, err
	}
	if env.Response == nil {
		return nil, errMissingEnvelope(EndpointGetPublishedFileDetails)
	}

	if len(env.Response.Details) == 0 {
		if r := Result(env.Response.Result); r != ResultOK && r != ResultUnknown {
			return nil, newError(CodeSteamResult, fmt.Sprintf("GetPublishedFileDetails failed with result %s", r), 0, nil)
		}
		return []WorkshopItem{}, nil
	}

	decoded, skipped := decodeItems(env.Response.Details)

	requested := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		requested[id] = struct{}{}
	}

	items := make([]WorkshopItem, 0, len(decoded))
	for _, item := range decoded {
		if _, ok := requested[item.ID]; !ok {
			skipped++
			continue
		}
		items = append(items, item)
	}

	if skipped > 0 {
		c.logger.WithFields(logrus.Fields{
			"requested": len(ids),
			"skipped":   skipped,
		}).Warn("dropped published file details that do not match a requested id")
	}

	return items, nil
}

// GetPublishedFile fetches a single published file. Unlike
// GetPublishedFileDetails it turns a non-OK per-item result into an error,
// matching [ErrNotFound] when Steam reports the file missing.
func (c *Client) GetPublishedFile(ctx context.Context, id string) (*WorkshopItem, error) {
	items, err := c.GetPublishedFileDetails(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if err := items[i].Err(); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, newError(CodeNotFound, fmt.Sprintf("published file %s not found", id), 404, nil)
}
