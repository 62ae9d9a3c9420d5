package steamworkshop

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
)

// Result is a Steam EResult code as reported per item.
type Result int

// Result values Steam uses for workshop lookups. The full list is at
// https://partner.steamgames.com/doc/api/steam_api#EResult.
const (
	ResultUnknown       Result = 0
	ResultOK            Result = 1
	ResultFail          Result = 2
	ResultInvalidParam  Result = 8
	ResultFileNotFound  Result = 9
	ResultAccessDenied  Result = 15
	ResultBanned        Result = 17
	ResultLimitExceeded Result = 25
	ResultRevoked       Result = 26
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultFail:
		return "Fail"
	case ResultInvalidParam:
		return "InvalidParam"
	case ResultFileNotFound:
		return "FileNotFound"
	case ResultAccessDenied:
		return "AccessDenied"
	case ResultBanned:
		return "Banned"
	case ResultLimitExceeded:
		return "LimitExceeded"
	case ResultRevoked:
		return "Revoked"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// WorkshopItem is the metadata of one published Workshop file.
//
// Use [Client.GetPublishedFileDetails] or [Client.SearchItems] to get items:
//
//	items, err := client.GetPublishedFileDetails(ctx, []string{"121221044"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, item := range items {
//	    if err := item.Err(); err != nil {
//	        log.Printf("%s: %v", item.ID, err)
//	        continue
//	    }
//	    fmt.Println(item)
//	}
//
// Fields Steam omitted are left at their zero value.
type WorkshopItem struct {
	// ID is the published file id, a decimal number kept as a string.
	ID string `json:"id"`

	// Result is Steam's status for this item. Only ResultOK items carry
	// metadata; see [WorkshopItem.Err].
	Result Result `json:"result"`

	// Creator is the 64-bit SteamID of the author.
	Creator string `json:"creator,omitempty"`

	// CreatorAppID is the app that created the file.
	CreatorAppID uint32 `json:"creator_app_id,omitempty"`

	// ConsumerAppID is the app the file is for.
	ConsumerAppID uint32 `json:"consumer_app_id,omitempty"`

	Filename string `json:"filename,omitempty"`

	// FileSize is the content size in bytes.
	FileSize uint64 `json:"file_size,omitempty"`

	// FileURL is empty for files only reachable through the Steam client.
	FileURL strfmt.URI `json:"file_url,omitempty"`

	PreviewURL strfmt.URI `json:"preview_url,omitempty"`

	// ContentFile and ContentPreview are the UGC handles of the file and
	// its preview image.
	ContentFile    string `json:"hcontent_file,omitempty"`
	ContentPreview string `json:"hcontent_preview,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Created time.Time `json:"time_created,omitzero"`
	Updated time.Time `json:"time_updated,omitzero"`

	// Visibility is 0 public, 1 friends only, 2 private, 3 unlisted.
	Visibility int `json:"visibility"`

	Banned    bool   `json:"banned,omitempty"`
	BanReason string `json:"ban_reason,omitempty"`

	Subscriptions         uint64 `json:"subscriptions"`
	LifetimeSubscriptions uint64 `json:"lifetime_subscriptions"`
	Favorited             uint64 `json:"favorited"`
	LifetimeFavorited     uint64 `json:"lifetime_favorited"`
	Views                 uint64 `json:"views"`

	Tags []Tag `json:"tags,omitempty"`

	// VoteData is nil when Steam did not return votes. GetPublishedFileDetails
	// never does; SearchItems does.
	VoteData *VoteData `json:"vote_data,omitempty"`

	// NumChildren and Children describe collection members and required
	// items. Only SearchItems returns them.
	NumChildren int         `json:"num_children,omitempty"`
	Children    []ChildFile `json:"children,omitempty"`
}

// String returns "Title - ID".
func (w WorkshopItem) String() string {
	return fmt.Sprintf("%s - %s", w.Title, w.ID)
}

// OK reports whether Steam returned metadata for the item.
func (w *WorkshopItem) OK() bool {
	return w.Result == ResultOK
}

// Err returns nil when the item is OK, an error matching [ErrNotFound] when
// Steam reports it missing, and an error matching [ErrSteamResult] for any
// other per-item failure.
func (w *WorkshopItem) Err() error {
	switch w.Result {
	case ResultOK:
		return nil
	case ResultFileNotFound:
		return newError(CodeNotFound, fmt.Sprintf("published file %s not found", w.ID), 404, nil)
	}
	return newError(CodeSteamResult, fmt.Sprintf("published file %s: result %s", w.ID, w.Result), 0, nil)
}

// HasTag reports whether the item carries tag, compared case-insensitively.
func (w *WorkshopItem) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if strings.EqualFold(t.Tag, tag) {
			return true
		}
	}
	return false
}

// Tag is a workshop tag.
type Tag struct {
	Tag string `json:"tag"`

	// DisplayName is the localized name. Only SearchItems returns it.
	DisplayName string `json:"display_name,omitempty"`
}

// VoteData is the rating of an item.
type VoteData struct {
	// Score is between 0 and 1.
	Score     float64 `json:"score"`
	VotesUp   uint64  `json:"votes_up"`
	VotesDown uint64  `json:"votes_down"`
}

// ChildFile is a member of a collection or a required item.
type ChildFile struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
	FileType  int    `json:"file_type"`
}

// SearchResult is one page of [Client.SearchItems].
//
// Pass NextCursor as [SearchOptions.Cursor] to get the following page, or
// use [Client.SearchPages] which does that for you.
type SearchResult struct {
	Items []WorkshopItem `json:"items"`

	// Total is the number of items matching the query across all pages.
	Total uint64 `json:"total"`

	// Cursor is the cursor that produced this page ("*" for the first).
	Cursor string `json:"cursor"`

	// NextCursor is opaque. It is forwarded to Steam as-is.
	NextCursor string `json:"next_cursor,omitempty"`
}

// Done reports whether there are no more pages after this one.
//
// Steam has no explicit "has more" flag. A page is the last one when it is
// empty, when Steam sends no next cursor, or when the next cursor equals
// the one that was sent.
func (r *SearchResult) Done() bool {
	return len(r.Items) == 0 || r.NextCursor == "" || r.NextCursor == r.Cursor
}

// Collection is the result of [Client.GetCollectionDetails].
type Collection struct {
	ID     string `json:"id"`
	Result Result `json:"result"`

	// Children are in Steam's sort order.
	Children []ChildFile `json:"children"`
}

// IsCollection reports whether the item has members. Steam answers
// normally for items that are not collections; they simply have none.
func (c *Collection) IsCollection() bool {
	return len(c.Children) > 0
}

// ChildIDs returns the member ids, ready for [Client.GetPublishedFileDetails].
func (c *Collection) ChildIDs() []string {
	ids := make([]string, 0, len(c.Children))
	for _, ch := range c.Children {
		ids = append(ids, ch.ID)
	}
	return ids
}
