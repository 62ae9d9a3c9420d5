package steamworkshop_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamworkshop/steamworkshop-go"
)

// TestGetPublishedFileDetails tests fetching two items.
func TestGetPublishedFileDetails(t *testing.T) {
	// Arrange
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ISteamRemoteStorage/GetPublishedFileDetails/v1/", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "2", r.PostForm.Get("itemcount"))
		assert.Equal(t, "121221044", r.PostForm.Get("publishedfileids[0]"))
		assert.Equal(t, "1643520526", r.PostForm.Get("publishedfileids[1]"))
		assert.Empty(t, r.PostForm.Get("key"))

		writeFixture(t, w, "details_full.json")
	})

	// Act
	items, err := client.GetPublishedFileDetails(context.Background(), []string{"121221044", "1643520526"})

	// Assert
	require.NoError(t, err)
	require.Len(t, items, 2)

	ids := []string{items[0].ID, items[1].ID}
	assert.ElementsMatch(t, []string{"121221044", "1643520526"}, ids)
}

// TestGetPublishedFileDetails_Fields tests every field is mapped, including
// counters and flags Steam sends as strings or numbers.
func TestGetPublishedFileDetails_Fields(t *testing.T) {
	// Arrange
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeFixture(t, w, "details_full.json")
	})

	want := map[string]steamworkshop.WorkshopItem{
		"121221044": {
			ID:                    "121221044",
			Result:                steamworkshop.ResultOK,
			Creator:               "76561197961148447",
			CreatorAppID:          550,
			ConsumerAppID:         550,
			Filename:              "addon.vpk",
			FileSize:              8130922,
			FileURL:               strfmt.URI("https://steamusercontent-a.akamaihd.net/ugc/558748436411066497/"),
			PreviewURL:            strfmt.URI("https://steamuserimages-a.akamaihd.net/ugc/558748436411077373/"),
			ContentFile:           "558748436411066497",
			ContentPreview:        "558748436411077373",
			Title:                 "Diescraper Redux",
			Description:           "Survive the skyscraper.",
			Created:               time.Unix(1360195405, 0).UTC(),
			Updated:               time.Unix(1486422418, 0).UTC(),
			Visibility:            0,
			Banned:                false,
			BanReason:             "",
			Subscriptions:         98231,
			LifetimeSubscriptions: 120993,
			Favorited:             3022,
			LifetimeFavorited:     3310,
			Views:                 151290,
			Tags:                  []steamworkshop.Tag{{Tag: "Campaigns"}, {Tag: "Survival"}},
		},
		"1643520526": {
			ID:                    "1643520526",
			Result:                steamworkshop.ResultOK,
			Creator:               "76561198043537573",
			CreatorAppID:          550,
			ConsumerAppID:         550,
			FileSize:              267354892,
			PreviewURL:            strfmt.URI("https://steamuserimages-a.akamaihd.net/ugc/772861185341436046/preview/"),
			ContentFile:           "1856317612496386771",
			ContentPreview:        "772861185341436046",
			Title:                 "Dead Before Dawn Extended",
			Description:           "A remake of the classic campaign.",
			Created:               time.Unix(1550449624, 0).UTC(),
			Updated:               time.Unix(1613944011, 0).UTC(),
			Visibility:            3,
			Banned:                true,
			BanReason:             "Contains content from another game",
			Subscriptions:         140821,
			LifetimeSubscriptions: 171523,
			Favorited:             5401,
			LifetimeFavorited:     6012,
			Views:                 210442,
			Tags:                  []steamworkshop.Tag{{Tag: "Campaigns"}, {Tag: "Maps"}},
		},
	}

	// Act
	items, err := client.GetPublishedFileDetails(context.Background(), []string{"121221044", "1643520526"})

	// Assert
	require.NoError(t, err)
	require.Len(t, items, len(want))
	for _, item := range items {
		expected, ok := want[item.ID]
		require.True(t, ok, "unexpected id %s", item.ID)
		assert.Equal(t, expected, item)
		assert.NoError(t, item.Err())
	}

	diescraper := want["121221044"]
	assert.True(t, diescraper.HasTag("survival"))
	assert.False(t, diescraper.HasTag("Maps"))
	assert.Equal(t, "Diescraper Redux - 121221044", diescraper.String())
}

// TestGetPublishedFileDetails_Minimal tests that absent fields stay at
// their zero value.
func TestGetPublishedFileDetails_Minimal(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeFixture(t, w, "details_minimal.json")
	})

	items, err := client.GetPublishedFileDetails(context.Background(), []string{"121221044"})

	require.NoError(t, err)
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "121221044", item.ID)
	assert.True(t, item.OK())
	assert.Empty(t, item.Creator)
	assert.Zero(t, item.FileSize)
	assert.True(t, item.Created.IsZero())
	assert.Nil(t, item.Tags)
	assert.Nil(t, item.VoteData)
	assert.Nil(t, item.Children)
}

// TestGetPublishedFileDetails_MalformedFields tests that fields of the
// wrong type are defaulted rather than failing the response.
func TestGetPublishedFileDetails_MalformedFields(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeFixture(t, w, "details_malformed_fields.json")
	})

	items, err := client.GetPublishedFileDetails(context.Background(), []string{"121221044"})

	require.NoError(t, err)
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "121221044", item.ID)
	assert.Equal(t, steamworkshop.ResultOK, item.Result)
	assert.Equal(t, "76561197961148447", item.Creator)
	assert.Zero(t, item.CreatorAppID)
	assert.Equal(t, uint32(550), item.ConsumerAppID)
	assert.Zero(t, item.FileSize)
	assert.Empty(t, item.PreviewURL)
	assert.Equal(t, "Diescraper Redux", item.Title)
	assert.Equal(t, time.Unix(1360195405, 0).UTC(), item.Created)
	assert.True(t, item.Updated.IsZero())
	assert.True(t, item.Banned)
	assert.Zero(t, item.Views)
	assert.Empty(t, item.Tags)
	assert.Nil(t, item.VoteData)
	assert.Empty(t, item.Children)
}

// TestGetPublishedFileDetails_MissingItem tests that a missing file comes
// back as an item whose Err matches ErrNotFound.
func TestGetPublishedFileDetails_MissingItem(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeFixture(t, w, "details_missing.json")
	})

	items, err := client.GetPublishedFileDetails(context.Background(), []string{"121221044", "999999999"})

	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		switch item.ID {
		case "121221044":
			assert.NoError(t, item.Err())
			assert.Equal(t, "Diescraper Redux", item.Title)
		case "999999999":
			assert.False(t, item.OK())
			assert.Equal(t, steamworkshop.ResultFileNotFound, item.Result)
			assert.ErrorIs(t, item.Err(), steamworkshop.ErrNotFound)
		default:
			t.Fatalf("unexpected item %s", item.ID)
		}
	}
}

// TestGetPublishedFileDetails_OnlyRequested tests that entries Steam
// returns for ids that were not asked for are dropped.
func TestGetPublishedFileDetails_OnlyRequested(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeFixture(t, w, "details_full.json")
	})

	requested := []string{"121221044"}
	items, err := client.GetPublishedFileDetails(context.Background(), requested)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(items), len(requested))
	for _, item := range items {
		assert.Contains(t, requested, item.ID)
	}
}

// TestGetPublishedFileDetails_NonObjectEntries tests that entries that are
// not objects are skipped.
func TestGetPublishedFileDetails_NonObjectEntries(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mustEncode(w, map[string]interface{}{
			"response": map[string]interface{}{
				"result":      1,
				"resultcount": 2,
				"publishedfiledetails": []interface{}{
					"garbage",
					map[string]interface{}{"publishedfileid": "121221044", "result": 1, "title": "Diescraper Redux"},
				},
			},
		})
	})

	items, err := client.GetPublishedFileDetails(context.Background(), []string{"121221044"})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Diescraper Redux", items[0].Title)
}

// TestGetPublishedFileDetails_EmptyResponse tests an OK response with no
// details.
func TestGetPublishedFileDetails_EmptyResponse(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mustEncode(w, map[string]interface{}{
			"response": map[string]interface{}{"result": 1, "resultcount": 0},
		})
	})

	items, err := client.GetPublishedFileDetails(context.Background(), []string{"121221044"})

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

// TestGetPublishedFileDetails_SteamFailure tests a call-level failure result.
func TestGetPublishedFileDetails_SteamFailure(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mustEncode(w, map[string]interface{}{
			"response": map[string]interface{}{"result": 8, "resultcount": 0},
		})
	})

	_, err := client.GetPublishedFileDetails(context.Background(), []string{"121221044"})

	require.Error(t, err)
	assert.ErrorIs(t, err, steamworkshop.ErrSteamResult)
	assert.Contains(t, err.Error(), "InvalidParam")
}

// TestGetPublishedFileDetails_InvalidIDs tests that bad input is rejected
// before any request is sent.
func TestGetPublishedFileDetails_InvalidIDs(t *testing.T) {
	tooMany := make([]string, steamworkshop.MaxDetailsBatch+1)
	for i := range tooMany {
		tooMany[i] = strconv.Itoa(1000 + i)
	}

	tests := []struct {
		name string
		ids  []string
	}{
		{name: "nil", ids: nil},
		{name: "empty", ids: []string{}},
		{name: "blank id", ids: []string{""}},
		{name: "not a number", ids: []string{"abc"}},
		{name: "negative", ids: []string{"-1"}},
		{name: "leading zero", ids: []string{"0121221044"}},
		{name: "above uint64", ids: []string{"18446744073709551616"}},
		{name: "twenty one digits", ids: []string{"100000000000000000000"}},
		{name: "one bad among good", ids: []string{"121221044", "12x"}},
		{name: "too many", ids: tooMany},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				writeFixture(t, w, "details_minimal.json")
			})

			items, err := client.GetPublishedFileDetails(context.Background(), tt.ids)

			require.Error(t, err)
			assert.Nil(t, items)
			assert.ErrorIs(t, err, steamworkshop.ErrBadRequest)
			assert.Zero(t, calls.Load())

			var apiErr *steamworkshop.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		})
	}
}

// TestGetPublishedFileDetails_EdgeIDs tests the smallest and largest ids
// are sent as given.
func TestGetPublishedFileDetails_EdgeIDs(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "0", r.PostForm.Get("publishedfileids[0]"))
		assert.Equal(t, "18446744073709551615", r.PostForm.Get("publishedfileids[1]"))
		writeFixture(t, w, "details_minimal.json")
	})

	_, err := client.GetPublishedFileDetails(context.Background(), []string{"0", "18446744073709551615"})
	require.NoError(t, err)
}

// TestGetPublishedFileDetails_MaxBatch tests that exactly MaxDetailsBatch
// ids are accepted.
func TestGetPublishedFileDetails_MaxBatch(t *testing.T) {
	ids := make([]string, steamworkshop.MaxDetailsBatch)
	for i := range ids {
		ids[i] = strconv.Itoa(1000 + i)
	}

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "100", r.PostForm.Get("itemcount"))
		assert.Equal(t, "1099", r.PostForm.Get("publishedfileids[99]"))
		writeFixture(t, w, "details_minimal.json")
	})

	_, err := client.GetPublishedFileDetails(context.Background(), ids)
	require.NoError(t, err)
}

// TestGetPublishedFileDetails_SendsKey tests the key is sent when set,
// even though the call works without one.
func TestGetPublishedFileDetails_SendsKey(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, testAPIKey, r.PostForm.Get("key"))
		writeFixture(t, w, "details_minimal.json")
	}, steamworkshop.WithAPIKey(testAPIKey))

	_, err := client.GetPublishedFileDetails(context.Background(), []string{"121221044"})
	require.NoError(t, err)
}

// TestGetPublishedFile tests the single-item helper.
func TestGetPublishedFile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeFixture(t, w, "details_minimal.json")
		})

		item, err := client.GetPublishedFile(context.Background(), "121221044")

		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "121221044", item.ID)
	})

	t.Run("not found result", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			mustEncode(w, map[string]interface{}{
				"response": map[string]interface{}{
					"result":      1,
					"resultcount": 1,
					"publishedfiledetails": []interface{}{
						map[string]interface{}{"publishedfileid": "999999999", "result": 9},
					},
				},
			})
		})

		item, err := client.GetPublishedFile(context.Background(), "999999999")

		require.Error(t, err)
		assert.Nil(t, item)
		assert.ErrorIs(t, err, steamworkshop.ErrNotFound)
	})

	t.Run("absent from response", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeFixture(t, w, "details_minimal.json")
		})

		_, err := client.GetPublishedFile(context.Background(), "555")

		require.Error(t, err)
		assert.ErrorIs(t, err, steamworkshop.ErrNotFound)
	})

	t.Run("banned", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			mustEncode(w, map[string]interface{}{
				"response": map[string]interface{}{
					"result": 1,
					"publishedfiledetails": []interface{}{
						map[string]interface{}{"publishedfileid": "555", "result": 17},
					},
				},
			})
		})

		_, err := client.GetPublishedFile(context.Background(), "555")

		require.Error(t, err)
		assert.ErrorIs(t, err, steamworkshop.ErrSteamResult)
		assert.NotErrorIs(t, err, steamworkshop.ErrNotFound)
	})
}
