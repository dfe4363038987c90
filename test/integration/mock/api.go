package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

// ApiMock stands in for the external HTTP services the engine talks to,
// such as the savings account service during reconciliation. Tests script
// a response per method, path and call index; every request the engine
// sends is recorded for later assertions.
type ApiMock struct {
	headersReceived       map[string]map[int]map[string]string
	requestsReceived      map[string]map[int]map[string]any
	responses             map[string]map[int]any
	defaultResponses      map[string]map[int]any
	responseStatus        map[string]map[int]int
	defaultResponseStatus map[string]map[int]int
	mockUrl               string
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		headersReceived:       map[string]map[int]map[string]string{},
		requestsReceived:      map[string]map[int]map[string]any{},
		responses:             map[string]map[int]any{},
		defaultResponses:      map[string]map[int]any{},
		responseStatus:        map[string]map[int]int{},
		defaultResponseStatus: map[string]map[int]int{},
	}
}

// Start brings the server up. A request's call index is the number of
// requests the same method and path have already received, so a scripted
// sequence plays back in registration order.
func (a *ApiMock) Start() {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				method := r.Method
				path := r.URL.Path
				index := len(a.requestsReceived[method+path])

				body, _ := io.ReadAll(r.Body)
				var request map[string]any
				_ = json.Unmarshal(body, &request)
				if request == nil {
					request = map[string]any{}
				}

				if a.requestsReceived[method+path] == nil {
					a.requestsReceived[method+path] = map[int]map[string]any{}
				}
				a.requestsReceived[method+path][index] = request

				if a.headersReceived[method+path] == nil {
					a.headersReceived[method+path] = map[int]map[string]string{}
				}
				headers := map[string]string{}
				for key, value := range r.Header {
					headers[key] = value[0]
				}
				a.headersReceived[method+path][index] = headers

				w.WriteHeader(a.statusFor(method, path, index))
				responseBody, _ := json.Marshal(a.bodyFor(method, path, index))
				_, _ = w.Write(responseBody)
			},
		),
	)

	a.mockUrl = server.URL
}

func (a *ApiMock) GetUrl() string {
	return a.mockUrl
}

// SetResponse scripts the response for the index-th call to method+path.
// Index -1 registers a fallback used when no indexed response matches.
// Path segments may be the wildcard "*".
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	if index == -1 {
		if a.defaultResponses[method+path] == nil {
			a.defaultResponses[method+path] = map[int]any{}
		}
		if a.defaultResponseStatus[method+path] == nil {
			a.defaultResponseStatus[method+path] = map[int]int{}
		}
		a.defaultResponses[method+path][0] = response
		a.defaultResponseStatus[method+path][0] = status
		return
	}

	if a.responses[method+path] == nil {
		a.responses[method+path] = map[int]any{}
	}
	if a.responseStatus[method+path] == nil {
		a.responseStatus[method+path] = map[int]int{}
	}
	a.responses[method+path][index] = response
	a.responseStatus[method+path][index] = status
}

// GetRequestHeaders returns the headers of the index-th request to
// method+path, or nil when no such request arrived.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	key := a.matchKey(mapKeys(a.headersReceived), method, path)
	if key != "" && a.headersReceived[key] != nil {
		if headers, exists := a.headersReceived[key][index]; exists {
			return headers
		}
	}
	return nil
}

func (a *ApiMock) bodyFor(method, path string, index int) any {
	key := a.matchKey(mapKeys(a.responses), method, path)
	if key != "" && a.responses[key] != nil {
		if response, exists := a.responses[key][index]; exists && response != nil {
			return response
		}
	}

	defaultKey := a.matchKey(mapKeys(a.defaultResponses), method, path)
	if defaultKey != "" && a.defaultResponses[defaultKey] != nil {
		if response, exists := a.defaultResponses[defaultKey][0]; exists && response != nil {
			return response
		}
	}

	// Unscripted calls answer an empty object.
	return map[string]any{}
}

func (a *ApiMock) statusFor(method, path string, index int) int {
	key := a.matchKey(mapKeys(a.responseStatus), method, path)
	if key != "" && a.responseStatus[key] != nil {
		if status, exists := a.responseStatus[key][index]; exists && status != 0 {
			return status
		}
	}

	defaultKey := a.matchKey(mapKeys(a.defaultResponseStatus), method, path)
	if defaultKey != "" && a.defaultResponseStatus[defaultKey] != nil {
		if status, exists := a.defaultResponseStatus[defaultKey][0]; exists && status != 0 {
			return status
		}
	}

	// WriteHeader(0) panics, so unscripted calls answer 200.
	return http.StatusOK
}

// matchKey finds the registered key for method+path, preferring an exact
// match over a wildcard one.
func (a *ApiMock) matchKey(keys []string, method, path string) string {
	exact := method + path
	for _, key := range keys {
		if key == exact {
			return key
		}
	}

	for _, key := range keys {
		if strings.HasPrefix(key, method) && matchPath(strings.TrimPrefix(key, method), path) {
			return key
		}
	}

	return ""
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}

	return true
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}
