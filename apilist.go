package steamworkshop

import (
	"context"
	"sort"
)

// APIList is the set of Web API interfaces Steam serves, as reported by
// ISteamWebAPIUtil/GetSupportedAPIList. With an API key the list also
// includes methods that need one.
type APIList struct {
	Interfaces []APIInterface `json:"interfaces"`
}

// APIInterface is one Web API interface.
type APIInterface struct {
	Name    string      `json:"name"`
	Methods []APIMethod `json:"methods"`
}

// APIMethod is one version of a Web API method.
type APIMethod struct {
	Name       string         `json:"name"`
	Version    int            `json:"version"`
	HTTPMethod string         `json:"httpmethod"`
	Parameters []APIParameter `json:"parameters,omitempty"`
}

// APIParameter describes a method parameter.
type APIParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Optional    bool   `json:"optional"`
	Description string `json:"description,omitempty"`
}

// Versions returns the versions at which iface/method is served, highest
// first. It returns nil when the method is not listed.
func (l *APIList) Versions(iface, method string) []int {
	var versions []int
	for _, i := range l.Interfaces {
		if i.Name != iface {
			continue
		}
		for _, m := range i.Methods {
			if m.Name == method {
				versions = append(versions, m.Version)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	return versions
}

type apiListEnvelope struct {
	APIList *struct {
		Interfaces lenientList[struct {
			Name    flexString `json:"name"`
			Methods lenientList[struct {
				Name       flexString `json:"name"`
				Version    flexInt64  `json:"version"`
				HTTPMethod flexString `json:"httpmethod"`
				Parameters lenientList[struct {
					Name        flexString `json:"name"`
					Type        flexString `json:"type"`
					Optional    flexBool   `json:"optional"`
					Description flexString `json:"description"`
				}] `json:"parameters"`
			}] `json:"methods"`
		}] `json:"interfaces"`
	} `json:"apilist"`
}

// SupportedAPIList fetches the Web API interfaces Steam currently serves.
func (c *Client) SupportedAPIList(ctx context.Context) (*APIList, error) {
	var env apiListEnvelope
	err := c.do(ctx, call{endpoint: EndpointGetSupportedAPIList, encoding: inQuery}, &env)
	if err != nil {
		return nil, err
	}
	if env.APIList == nil {
		return nil, newError(CodeDecode, EndpointGetSupportedAPIList.String()+" response has no \"apilist\" object", 0, nil)
	}

	list := &APIList{Interfaces: make([]APIInterface, 0, len(env.APIList.Interfaces))}
	for _, wi := range env.APIList.Interfaces {
		iface := APIInterface{Name: string(wi.Name)}
		for _, wm := range wi.Methods {
			m := APIMethod{
				Name:       string(wm.Name),
				Version:    int(wm.Version),
				HTTPMethod: string(wm.HTTPMethod),
			}
			for _, wp := range wm.Parameters {
				m.Parameters = append(m.Parameters, APIParameter{
					Name:        string(wp.Name),
					Type:        string(wp.Type),
					Optional:    bool(wp.Optional),
					Description: string(wp.Description),
				})
			}
			iface.Methods = append(iface.Methods, m)
		}
		list.Interfaces = append(list.Interfaces, iface)
	}
	return list, nil
}

// EndpointStatus is the outcome of checking one endpoint against Steam.
type EndpointStatus struct {
	Endpoint Endpoint `json:"endpoint"`

	// Served lists the versions Steam serves, highest first. Empty when the
	// method is not listed, which for key-only methods also happens when
	// the client has no key.
	Served []int `json:"served"`

	// Compatible is true when the version the client calls is served and
	// falls within the endpoint's VersionRange.
	Compatible bool `json:"compatible"`
}

// CheckEndpoints verifies that Steam still serves every workshop endpoint
// this client calls, at a compatible version.
//
//	statuses, err := client.CheckEndpoints(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range statuses {
//	    if !s.Compatible {
//	        log.Printf("%s no longer served at v%d", s.Endpoint, s.Endpoint.Version)
//	    }
//	}
func (c *Client) CheckEndpoints(ctx context.Context) ([]EndpointStatus, error) {
	list, err := c.SupportedAPIList(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]EndpointStatus, 0, len(workshopEndpoints))
	for _, e := range workshopEndpoints {
		served := list.Versions(e.Interface, e.Method)
		compatible := false
		for _, v := range served {
			if v == e.Version && isCompatibleInt(e, v) {
				compatible = true
				break
			}
		}
		statuses = append(statuses, EndpointStatus{
			Endpoint:   e,
			Served:     served,
			Compatible: compatible,
		})
	}
	return statuses, nil
}
