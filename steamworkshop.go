// Package steamworkshop provides a Go client for the Steam Workshop Web API.
//
// It covers looking up published files, searching a game's workshop,
// reading collections, and managing the subscriptions of the account that
// owns an API key. The client is a thin layer over
// https://api.steampowered.com: it encodes parameters the way Steam
// expects, sends one HTTP request per call, and turns Steam's loosely typed
// JSON into the structs of this package. [AddonFiles] and [AddonID] map
// downloaded .vpk addons back to their published file ids.
//
// # Installation
//
//	go get github.com/steamworkshop/steamworkshop-go
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/steamworkshop/steamworkshop-go"
//	)
//
//	func main() {
//	    client := steamworkshop.NewClient()
//
//	    items, err := client.GetPublishedFileDetails(context.Background(),
//	        []string{"121221044", "1643520526"})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, item := range items {
//	        fmt.Println(item)
//	    }
//	}
//
// # Authentication
//
// File details and collections work without a key. Searching, subscribing
// and unsubscribing need a Steam Web API key
// (https://steamcommunity.com/dev/apikey):
//
//	client := steamworkshop.NewClient(
//	    steamworkshop.WithAPIKey(os.Getenv("STEAM_API_KEY")),
//	)
//	err := client.Subscribe(ctx, "2855027013")
//
// Searches may instead go through a proxy that adds its own key, see
// [WithBaseURL].
//
// # Error Handling
//
// Every method returns an [Error]. Use errors.Is with the sentinels or
// errors.As to inspect the code:
//
//	_, err := client.SearchItems(ctx, opts)
//	if errors.Is(err, steamworkshop.ErrAuthRequired) {
//	    // no API key
//	}
//	var apiErr *steamworkshop.Error
//	if errors.As(err, &apiErr) && apiErr.Code == steamworkshop.CodeHTTPStatus {
//	    log.Printf("steam answered %d", apiErr.Status)
//	}
//
// The client never retries. Failures are returned as they happen so callers
// can apply their own retry and rate limit policy.
//
// # Loose JSON
//
// Steam sends the same field as a number on one endpoint and as a string
// on another, and omits fields freely. Fields that are missing or cannot be
// read are left at their zero value; only a response without its
// "response" envelope fails with [ErrDecode].
//
// # Thread Safety
//
// The [Client] is safe for concurrent use by multiple goroutines. It holds
// configuration only; [SearchPager] carries pagination state and belongs to
// one goroutine.
package steamworkshop
