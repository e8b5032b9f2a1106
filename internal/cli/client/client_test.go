package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeJSONBody(t *testing.T, r *http.Request, out any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
}

// staticTokens is a TokenSource with a fixed token
type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token() (string, error) { return s.token, s.err }

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, staticTokens{token: token})
}

func TestClient_Login(t *testing.T) {
	var gotBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		decodeJSONBody(t, r, &gotBody)
		w.Write([]byte(`{"id": 7, "email": "a@b.com", "token": "tok123"}`))
	})

	user, err := c.Login("a@b.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != 7 || user.Email != "a@b.com" || user.Token != "tok123" {
		t.Errorf("unexpected user: %+v", user)
	}
	if gotBody.Email != "a@b.com" || gotBody.Password != "secret" {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
}

func TestClient_AuthorizationHeader(t *testing.T) {
	var gotAuth string
	var authPresent bool

	handler := func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, authPresent = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}

	// With a token the bearer header is attached.
	c := newTestClient(t, "tok123", handler)
	if _, err := c.ListLeads(LeadFilter{}); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}

	// Without one the header is omitted entirely, not sent empty.
	c = newTestClient(t, "", handler)
	if _, err := c.ListLeads(LeadFilter{}); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if authPresent {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_TokenSourceFailure(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	c.tokens = staticTokens{err: errors.New("keychain locked")}

	if _, err := c.ListLeads(LeadFilter{}); err == nil {
		t.Fatal("expected error when the token source fails")
	}
}

func TestClient_RequestIDHeader(t *testing.T) {
	seen := map[string]bool{}

	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			t.Error("expected X-Request-Id header")
		}
		seen[id] = true
		w.Write([]byte(`[]`))
	})

	c.ListLeads(LeadFilter{})
	c.ListLeads(LeadFilter{})

	if len(seen) != 2 {
		t.Errorf("expected a fresh request id per call, saw %d", len(seen))
	}
}

func TestClient_ListLeadsFilters(t *testing.T) {
	var gotQuery string

	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id": 1, "title": "Tech Startups", "industry": "tech", "region": "west", "leadCount": 500, "pricePerLead": 0.4}]`))
	})

	bundles, err := c.ListLeads(LeadFilter{Industry: "tech", Region: "west"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotQuery != "industry=tech&region=west" {
		t.Errorf("unexpected query: %q", gotQuery)
	}
	if len(bundles) != 1 || bundles[0].Title != "Tech Startups" || bundles[0].PricePerLead != 0.4 {
		t.Errorf("unexpected bundles: %+v", bundles)
	}

	// No filter, no query string.
	if _, err := c.ListLeads(LeadFilter{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("expected empty query, got %q", gotQuery)
	}
}

func TestClient_APIErrorCarriesBackendMessage(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "An account with this email already exists"}`))
	})

	err := c.Register("a@b.com", "x")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("expected status 409, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "An account with this email already exists" {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}
}

func TestClient_APIErrorWithoutParsableBody(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := c.ListLeads(LeadFilter{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestClient_DecodeErrorOnMalformedSuccess(t *testing.T) {
	// A 200 with a body that is not the expected shape is a decode
	// failure, distinct from a backend rejection.
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>login page</html>`))
	})

	_, err := c.Login("a@b.com", "x")

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("decode failure must not read as a backend rejection")
	}
}

func TestClient_DownloadPurchase(t *testing.T) {
	csv := "name,company\nAlice,Acme\n"

	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/purchases/42/download" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(csv))
	})

	data, err := c.DownloadPurchase(42)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if string(data) != csv {
		t.Errorf("unexpected payload: %q", data)
	}
}

func TestClient_CreateCustomLead(t *testing.T) {
	var gotBody CustomLeadRequest

	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/custom-leads" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		decodeJSONBody(t, r, &gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 3, "industry": "fintech", "location": "Berlin", "quantity": 100, "status": "ready", "totalPrice": 50}`))
	})

	lead, err := c.CreateCustomLead(CustomLeadRequest{Industry: "fintech", Location: "Berlin", Quantity: 100})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if gotBody.Industry != "fintech" || gotBody.Quantity != 100 {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
	if lead.ID != 3 || lead.Status != "ready" || lead.TotalPrice != 50 {
		t.Errorf("unexpected lead: %+v", lead)
	}
}

func TestClient_SamplePassthrough(t *testing.T) {
	// Sample records are opaque; unknown keys survive the round trip.
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name": "Alice", "score": 0.9, "custom_field": "x"}]`))
	})

	records, err := c.LeadSample(1)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0]["custom_field"] != "x" || records[0]["score"] != 0.9 {
		t.Errorf("unexpected record: %v", records[0])
	}
}
