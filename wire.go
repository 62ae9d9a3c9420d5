package steamworkshop

import (
	"encoding/json"
	"math"
	"time"

	"github.com/go-openapi/strfmt"
)

// Raw Steam shapes. Every leaf goes through the lenient types; only the
// envelopes are strict.

type wireItem struct {
	PublishedFileID flexString `json:"publishedfileid"`
	Result          flexInt64  `json:"result"`
	Creator         flexString `json:"creator"`

	// GetPublishedFileDetails uses the underscored names, QueryFiles the
	// short ones.
	CreatorAppID   flexUint64 `json:"creator_app_id"`
	CreatorAppID2  flexUint64 `json:"creator_appid"`
	ConsumerAppID  flexUint64 `json:"consumer_app_id"`
	ConsumerAppID2 flexUint64 `json:"consumer_appid"`

	Filename        flexString `json:"filename"`
	FileSize        flexUint64 `json:"file_size"`
	FileURL         flexString `json:"file_url"`
	PreviewURL      flexString `json:"preview_url"`
	HContentFile    flexString `json:"hcontent_file"`
	HContentPreview flexString `json:"hcontent_preview"`
	Title           flexString `json:"title"`
	Description     flexString `json:"description"`
	FileDescription flexString `json:"file_description"`
	TimeCreated     flexInt64  `json:"time_created"`
	TimeUpdated     flexInt64  `json:"time_updated"`
	Visibility      flexInt64  `json:"visibility"`
	Banned          flexBool   `json:"banned"`
	BanReason       flexString `json:"ban_reason"`

	Subscriptions         flexUint64 `json:"subscriptions"`
	LifetimeSubscriptions flexUint64 `json:"lifetime_subscriptions"`
	Favorited             flexUint64 `json:"favorited"`
	LifetimeFavorited     flexUint64 `json:"lifetime_favorited"`
	Views                 flexUint64 `json:"views"`

	Tags        lenientList[wireTag]   `json:"tags"`
	VoteData    lenient[wireVoteData]  `json:"vote_data"`
	NumChildren flexInt64              `json:"num_children"`
	Children    lenientList[wireChild] `json:"children"`
}

type wireTag struct {
	Tag         flexString `json:"tag"`
	DisplayName flexString `json:"display_name"`
}

type wireVoteData struct {
	Score     flexFloat64 `json:"score"`
	VotesUp   flexUint64  `json:"votes_up"`
	VotesDown flexUint64  `json:"votes_down"`
}

type wireChild struct {
	PublishedFileID flexString `json:"publishedfileid"`
	SortOrder       flexInt64  `json:"sortorder"`
	FileType        flexInt64  `json:"file_type"`
	FileType2       flexInt64  `json:"filetype"`
}

// detailsEnvelope is the GetPublishedFileDetails response.
type detailsEnvelope struct {
	Response *struct {
		Result      flexInt64         `json:"result"`
		ResultCount flexInt64         `json:"resultcount"`
		Details     []json.RawMessage `json:"publishedfiledetails"`
	} `json:"response"`
}

// queryFilesEnvelope is the QueryFiles response. An empty search comes back
// as {"response":{"total":0}}.
type queryFilesEnvelope struct {
	Response *struct {
		Total      flexUint64        `json:"total"`
		Details    []json.RawMessage `json:"publishedfiledetails"`
		NextCursor flexString        `json:"next_cursor"`
	} `json:"response"`
}

type wireCollection struct {
	PublishedFileID flexString             `json:"publishedfileid"`
	Result          flexInt64              `json:"result"`
	Children        lenientList[wireChild] `json:"children"`
}

// collectionEnvelope is the GetCollectionDetails response. Entries that are
// not objects are dropped.
type collectionEnvelope struct {
	Response *struct {
		Result      flexInt64                   `json:"result"`
		ResultCount flexInt64                   `json:"resultcount"`
		Details     lenientList[wireCollection] `json:"collectiondetails"`
	} `json:"response"`
}

// canSubscribeEnvelope is the CanSubscribe response.
type canSubscribeEnvelope struct {
	Response *struct {
		CanSubscribe flexBool `json:"can_subscribe"`
	} `json:"response"`
}

// emptyEnvelope is the Subscribe and Unsubscribe response: {"response":{}}.
type emptyEnvelope struct {
	Response *json.RawMessage `json:"response"`
}

func (w *wireItem) toItem() WorkshopItem {
	item := WorkshopItem{
		ID:                    string(w.PublishedFileID),
		Result:                Result(w.Result),
		Creator:               string(w.Creator),
		CreatorAppID:          appID(w.CreatorAppID, w.CreatorAppID2),
		ConsumerAppID:         appID(w.ConsumerAppID, w.ConsumerAppID2),
		Filename:              string(w.Filename),
		FileSize:              uint64(w.FileSize),
		FileURL:               strfmt.URI(w.FileURL),
		PreviewURL:            strfmt.URI(w.PreviewURL),
		ContentFile:           string(w.HContentFile),
		ContentPreview:        string(w.HContentPreview),
		Title:                 string(w.Title),
		Description:           firstNonEmpty(string(w.Description), string(w.FileDescription)),
		Created:               unixTime(w.TimeCreated),
		Updated:               unixTime(w.TimeUpdated),
		Visibility:            int(w.Visibility),
		Banned:                bool(w.Banned),
		BanReason:             string(w.BanReason),
		Subscriptions:         uint64(w.Subscriptions),
		LifetimeSubscriptions: uint64(w.LifetimeSubscriptions),
		Favorited:             uint64(w.Favorited),
		LifetimeFavorited:     uint64(w.LifetimeFavorited),
		Views:                 uint64(w.Views),
		NumChildren:           int(w.NumChildren),
		Children:              toChildren(w.Children),
	}

	if len(w.Tags) > 0 {
		item.Tags = make([]Tag, 0, len(w.Tags))
		for _, t := range w.Tags {
			if t.Tag == "" {
				continue
			}
			item.Tags = append(item.Tags, Tag{Tag: string(t.Tag), DisplayName: string(t.DisplayName)})
		}
	}

	if w.VoteData.Valid {
		item.VoteData = &VoteData{
			Score:     float64(w.VoteData.Value.Score),
			VotesUp:   uint64(w.VoteData.Value.VotesUp),
			VotesDown: uint64(w.VoteData.Value.VotesDown),
		}
	}

	return item
}

func toChildren(in []wireChild) []ChildFile {
	if len(in) == 0 {
		return nil
	}
	out := make([]ChildFile, 0, len(in))
	for _, c := range in {
		if c.PublishedFileID == "" {
			continue
		}
		fileType := c.FileType
		if fileType == 0 {
			fileType = c.FileType2
		}
		out = append(out, ChildFile{
			ID:        string(c.PublishedFileID),
			SortOrder: int(c.SortOrder),
			FileType:  int(fileType),
		})
	}
	return out
}

// decodeItems decodes each raw entry on its own so a single entry that is
// not even an object is skipped rather than failing the response.
func decodeItems(raw []json.RawMessage) (items []WorkshopItem, skipped int) {
	items = make([]WorkshopItem, 0, len(raw))
	for _, r := range raw {
		var w wireItem
		if err := json.Unmarshal(r, &w); err != nil {
			skipped++
			continue
		}
		items = append(items, w.toItem())
	}
	return items, skipped
}

func appID(values ...flexUint64) uint32 {
	for _, v := range values {
		if v != 0 && v <= math.MaxUint32 {
			return uint32(v)
		}
	}
	return 0
}

func unixTime(sec flexInt64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0).UTC()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
