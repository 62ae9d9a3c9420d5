package steamworkshop

import (
	"context"
	"fmt"
	"sort"
)

// GetCollectionDetails lists the members of a workshop collection. No API
// key is needed.
//
// Items that exist but are not collections come back with no children;
// check [Collection.IsCollection]. A missing item fails with an error
// matching [ErrNotFound].
//
//	col, err := client.GetCollectionDetails(ctx, "1643520526")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	items, err := client.GetPublishedFileDetails(ctx, col.ChildIDs())
func (c *Client) GetCollectionDetails(ctx context.Context, id string) (*Collection, error) {
	if err := validateFileID("publishedfileids.0", id); err != nil {
		return nil, badRequest("invalid published file id", err)
	}

	p := newParams().
		set("collectioncount", "1").
		setArray("publishedfileids", []string{id})

	var env collectionEnvelope
	err := c.do(ctx, call{
		endpoint: EndpointGetCollectionDetails,
		params:   p,
		encoding: inForm,
	}, &env)
	if err != nil {
		return nil, err
	}
	if env.Response == nil {
		return nil, errMissingEnvelope(EndpointGetCollectionDetails)
	}

	for _, d := range env.Response.Details {
		if string(d.PublishedFileID) != id {
			continue
		}
		col := &Collection{
			ID:       id,
			Result:   Result(d.Result),
			Children: toChildren(d.Children),
		}
		switch col.Result {
		case ResultOK:
		case ResultFileNotFound:
			return nil, newError(CodeNotFound, fmt.Sprintf("published file %s not found", id), 404, nil)
		default:
			return nil, newError(CodeSteamResult, fmt.Sprintf("collection %s: result %s", id, col.Result), 0, nil)
		}
		sort.SliceStable(col.Children, func(i, j int) bool {
			return col.Children[i].SortOrder < col.Children[j].SortOrder
		})
		if col.Children == nil {
			col.Children = []ChildFile{}
		}
		return col, nil
	}

	return nil, newError(CodeNotFound, fmt.Sprintf("published file %s not found", id), 404, nil)
}
