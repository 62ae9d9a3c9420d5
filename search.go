package steamworkshop

import (
	"context"
	"fmt"

	"github.com/go-openapi/strfmt"
)

// QueryType is Steam's EPublishedFileQueryType, the ranking of a search.
type QueryType int

// Query types accepted by QueryFiles.
const (
	RankedByVote                                  QueryType = 0
	RankedByPublicationDate                       QueryType = 1
	AcceptedForGameRankedByAcceptanceDate         QueryType = 2
	RankedByTrend                                 QueryType = 3
	FavoritedByFriendsRankedByPublicationDate     QueryType = 4
	CreatedByFriendsRankedByPublicationDate       QueryType = 5
	RankedByNumTimesReported                      QueryType = 6
	CreatedByFollowedUsersRankedByPublicationDate QueryType = 7
	NotYetRated                                   QueryType = 8
	RankedByTotalUniqueSubscriptions              QueryType = 9
	RankedByTotalVotesAsc                         QueryType = 10
	RankedByVotesUp                               QueryType = 11
	RankedByTextSearch                            QueryType = 12
	RankedByPlaytimeTrend                         QueryType = 13
	RankedByTotalPlaytime                         QueryType = 14
	RankedByAveragePlaytimeTrend                  QueryType = 15
	RankedByLifetimeAveragePlaytime               QueryType = 16
	RankedByPlaytimeSessionsTrend                 QueryType = 17
	RankedByLifetimePlaytimeSessions              QueryType = 18
	RankedByInappropriateContentRating            QueryType = 19
	RankedByBanContentCheck                       QueryType = 20
	RankedByLastUpdatedDate                       QueryType = 21

	maxQueryType = RankedByLastUpdatedDate
)

var queryTypeNames = map[QueryType]string{
	RankedByVote:                     "RankedByVote",
	RankedByPublicationDate:          "RankedByPublicationDate",
	RankedByTrend:                    "RankedByTrend",
	RankedByTotalUniqueSubscriptions: "RankedByTotalUniqueSubscriptions",
	RankedByVotesUp:                  "RankedByVotesUp",
	RankedByTextSearch:               "RankedByTextSearch",
	RankedByPlaytimeTrend:            "RankedByPlaytimeTrend",
	RankedByTotalPlaytime:            "RankedByTotalPlaytime",
	RankedByAveragePlaytimeTrend:     "RankedByAveragePlaytimeTrend",
	RankedByPlaytimeSessionsTrend:    "RankedByPlaytimeSessionsTrend",
	RankedByLastUpdatedDate:          "RankedByLastUpdatedDate",
}

// NewQueryType returns a pointer to q, for [SearchOptions.QueryType].
func NewQueryType(q QueryType) *QueryType {
	return &q
}

// Pointer returns a pointer to a copy of q.
func (q QueryType) Pointer() *QueryType {
	return &q
}

func (q QueryType) String() string {
	if name, ok := queryTypeNames[q]; ok {
		return name
	}
	return fmt.Sprintf("QueryType(%d)", int(q))
}

// takesDays reports whether the "days" window applies to q.
func (q QueryType) takesDays() bool {
	switch q {
	case RankedByTrend, RankedByPlaytimeTrend, RankedByAveragePlaytimeTrend, RankedByPlaytimeSessionsTrend:
		return true
	}
	return false
}

// SearchOptions configures [Client.SearchItems].
//
// The zero value searches every app ranked by votes, ten items per page.
type SearchOptions struct {
	// Query is free text matched against titles and descriptions.
	Query string

	// Cursor continues a previous search. Leave empty for the first page,
	// then pass [SearchResult.NextCursor].
	Cursor string

	// AppID restricts results to one game's workshop.
	AppID uint32

	// CreatorAppID restricts results to files created by an app. Defaults
	// to AppID.
	CreatorAppID uint32

	// RequiredTags filters by tag. With MatchAllTags every tag must be
	// present, otherwise any one of them.
	RequiredTags []string
	MatchAllTags bool

	// ExcludedTags drops items carrying any of these tags.
	ExcludedTags []string

	// QueryType is the ranking. When nil, RankedByTextSearch is used if
	// Query is set and RankedByVote otherwise.
	QueryType *QueryType

	// Days limits trend rankings to items from the last 1 to 7 days.
	Days uint32

	// Count is the page size, 1 to 100. Zero means 10.
	Count uint32
}

// queryType is the ranking sent to Steam.
func (o *SearchOptions) queryType() QueryType {
	switch {
	case o.QueryType != nil:
		return *o.QueryType
	case o.Query != "":
		return RankedByTextSearch
	}
	return RankedByVote
}

// encode builds the QueryFiles parameters. cursor is the effective cursor.
func (o *SearchOptions) encode(cursor string) *params {
	count := o.Count
	if count == 0 {
		count = DefaultSearchCount
	}
	creatorAppID := o.CreatorAppID
	if creatorAppID == 0 {
		creatorAppID = o.AppID
	}

	p := newParams().
		setInt("query_type", int64(o.queryType())).
		set("page", "1").
		set("cursor", cursor).
		setUint("numperpage", uint64(count)).
		setBool("return_metadata", true).
		setBool("return_tags", true).
		setBool("return_vote_data", true).
		setBool("return_children", true)

	if o.AppID != 0 {
		p.setUint("appid", uint64(o.AppID))
	}
	if creatorAppID != 0 {
		p.setUint("creator_appid", uint64(creatorAppID))
	}
	if o.Query != "" {
		p.set("search_text", o.Query)
	}
	if len(o.RequiredTags) > 0 {
		p.setArray("requiredtags", o.RequiredTags)
		p.setBool("match_all_tags", o.MatchAllTags)
	}
	if len(o.ExcludedTags) > 0 {
		p.setArray("excludedtags", o.ExcludedTags)
	}
	if o.Days > 0 {
		p.setUint("days", uint64(o.Days))
	}
	return p
}

// firstCursor is the cursor QueryFiles expects for the first page.
const firstCursor = "*"

// SearchItems runs one page of a workshop search.
//
// QueryFiles needs an API key. Without [WithAPIKey] the call fails with
// [ErrAuthRequired] before any request is sent, unless the client points
// at a proxy through [WithBaseURL].
//
// # Pagination
//
// Pass NextCursor back in to continue. The cursor is opaque and is never
// parsed. [SearchResult.Done] reports the last page:
//
//	opts := &steamworkshop.SearchOptions{Query: "map", AppID: 550}
//	for {
//	    page, err := client.SearchItems(ctx, opts)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, item := range page.Items {
//	        fmt.Println(item)
//	    }
//	    if page.Done() {
//	        break
//	    }
//	    opts.Cursor = page.NextCursor
//	}
//
// [Client.SearchPages] wraps that loop.
func (c *Client) SearchItems(ctx context.Context, opts *SearchOptions) (*SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	if !c.HasAPIKey() && !c.proxied() {
		return nil, errAuthRequired("SearchItems")
	}
	if err := opts.Validate(strfmt.Default); err != nil {
		return nil, badRequest("invalid search options", err)
	}

	cursor := opts.Cursor
	if cursor == "" {
		cursor = firstCursor
	}

	var env queryFilesEnvelope
	err := c.do(ctx, call{
		endpoint: EndpointQueryFiles,
		params:   opts.encode(cursor),
		encoding: inQuery,
	}, &env)
	if err != nil {
		return nil, err
	}
	if env.Response == nil {
		return nil, errMissingEnvelope(EndpointQueryFiles)
	}

	items, skipped := decodeItems(env.Response.Details)
	if skipped > 0 {
		c.logger.WithField("skipped", skipped).Warn("search returned entries that are not objects")
	}

	return &SearchResult{
		Items:      items,
		Total:      uint64(env.Response.Total),
		Cursor:     cursor,
		NextCursor: string(env.Response.NextCursor),
	}, nil
}
