package screens

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"fleet_desk/internal/apiclient"
	"fleet_desk/internal/session"
)

type alert struct{ Title, Message string }

// fakeUI records every interaction a screen has with the user.
type fakeUI struct {
	mu      sync.Mutex
	alerts  []alert
	pushed  []string
	replace []string
	dialed  []string
	dialErr error
	picks   map[string]string
	keys    *session.MemoryKeystore
}

func (u *fakeUI) Alert(title, message string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.alerts = append(u.alerts, alert{title, message})
}

func (u *fakeUI) Push(route string) { u.pushed = append(u.pushed, route) }
func (u *fakeUI) Replace(route string) { u.replace = append(u.replace, route) }

func (u *fakeUI) Dial(url string) error {
	u.dialed = append(u.dialed, url)
	return u.dialErr
}

func (u *fakeUI) PickImage(field string) (string, error) {
	return u.picks[field], nil
}

func (u *fakeUI) Alerts() []alert {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]alert(nil), u.alerts...)
}

type recordedRequest struct {
	Method string
	Target string
	Header http.Header
	Body   []byte
}

// fakeAPI is an httptest server that records requests and answers through
// handler.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Target: r.URL.RequestURI(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	h := f.handler
	f.mu.Unlock()
	if h == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	h(w, r)
}

func (f *fakeAPI) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeAPI) SetHandler(h http.HandlerFunc) {
	f.mu.Lock()
	f.handler = h
	f.mu.Unlock()
}

// newEnv wires a session, an API caller pointed at api and a fake UI.
func newEnv(t *testing.T, api *fakeAPI) (Env, *fakeUI) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	keys := session.NewMemoryKeystore()
	store := session.New(keys)
	caller, err := apiclient.New(srv.URL, store)
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	ui := &fakeUI{picks: map[string]string{}, keys: keys}
	return Env{
		API:     caller,
		Session: store,
		Alerts:  ui,
		Nav:     ui,
		Dialer:  ui,
		Picker:  ui,
	}, ui
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}
