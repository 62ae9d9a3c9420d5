package steamworkshop

import (
	"fmt"
	"net/http"
)

// Endpoint describes one Steam Web API method used by the client.
type Endpoint struct {
	// Interface is the Steam interface name, e.g. "IPublishedFileService".
	Interface string

	// Method is the method name within the interface, e.g. "QueryFiles".
	Method string

	// Version is the method version the client calls.
	Version int

	// HTTPMethod is the verb the client uses for this endpoint.
	HTTPMethod string

	// VersionRange is a semver constraint of method versions this SDK can
	// talk to. See [IsCompatible].
	VersionRange string
}

// Path returns the URL path of the endpoint relative to the base URL,
// e.g. "/IPublishedFileService/QueryFiles/v1/".
func (e Endpoint) Path() string {
	return fmt.Sprintf("/%s/%s/v%d/", e.Interface, e.Method, e.Version)
}

// String returns "Interface/Method".
func (e Endpoint) String() string {
	return e.Interface + "/" + e.Method
}

// Endpoints used by the client.
var (
	EndpointGetPublishedFileDetails = Endpoint{
		Interface:    "ISteamRemoteStorage",
		Method:       "GetPublishedFileDetails",
		Version:      1,
		HTTPMethod:   http.MethodPost,
		VersionRange: "1.x",
	}
	EndpointGetCollectionDetails = Endpoint{
		Interface:    "ISteamRemoteStorage",
		Method:       "GetCollectionDetails",
		Version:      1,
		HTTPMethod:   http.MethodPost,
		VersionRange: "1.x",
	}
	EndpointQueryFiles = Endpoint{
		Interface:    "IPublishedFileService",
		Method:       "QueryFiles",
		Version:      1,
		HTTPMethod:   http.MethodGet,
		VersionRange: "1.x",
	}
	EndpointSubscribe = Endpoint{
		Interface:    "IPublishedFileService",
		Method:       "Subscribe",
		Version:      1,
		HTTPMethod:   http.MethodPost,
		VersionRange: "1.x",
	}
	EndpointUnsubscribe = Endpoint{
		Interface:    "IPublishedFileService",
		Method:       "Unsubscribe",
		Version:      1,
		HTTPMethod:   http.MethodPost,
		VersionRange: "1.x",
	}
	EndpointCanSubscribe = Endpoint{
		Interface:    "IPublishedFileService",
		Method:       "CanSubscribe",
		Version:      1,
		HTTPMethod:   http.MethodGet,
		VersionRange: "1.x",
	}
	EndpointGetSupportedAPIList = Endpoint{
		Interface:    "ISteamWebAPIUtil",
		Method:       "GetSupportedAPIList",
		Version:      1,
		HTTPMethod:   http.MethodGet,
		VersionRange: ">= 1",
	}
)

// workshopEndpoints are the endpoints checked by [Client.CheckEndpoints].
var workshopEndpoints = []Endpoint{
	EndpointGetPublishedFileDetails,
	EndpointGetCollectionDetails,
	EndpointQueryFiles,
	EndpointSubscribe,
	EndpointUnsubscribe,
	EndpointCanSubscribe,
}
