package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "travel_advisor/internal/adapters/http_server"
	"travel_advisor/internal/domain"
)

type fakeRecommender struct {
	recs  []domain.Recommendation
	err   error
	gotP  domain.PreferenceSet
	gotN  int
	calls int
}

func (f *fakeRecommender) Recommend(ctx context.Context, p domain.PreferenceSet, topN int) ([]domain.Recommendation, error) {
	f.calls++
	f.gotP, f.gotN = p, topN
	return f.recs, f.err
}

const validBody = `{"budget":5000,"duration":"one_week","travel_style":"rest","environment":"beach","group_type":"couple"}`

func newTestServer(t *testing.T, q httpserver.Recommender, ratePerMin int) *httptest.Server {
	t.Helper()
	srv := httpserver.New(ratePerMin)
	srv.MountHandlers(&httpserver.Handlers{Q: q, TopN: 3})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func decodeProblem(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	assert.Equal(t, "application/problem+json", res.Header.Get("Content-Type"))
	var p map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&p))
	return p
}

func TestRecommend_OK(t *testing.T) {
	q := &fakeRecommender{recs: []domain.Recommendation{{
		DestinationID: "nice",
		Score:         6,
		Title:         "Nice, France",
		ImageQuery:    "France, relax, peaceful, calm, beach, sea, coast, sunny",
		ImageURL:      "https://images.test/nice.jpg",
		Details:       []string{"a", "b", "c"},
	}}}
	ts := newTestServer(t, q, 0)

	res := post(t, ts.URL+"/v1/recommendations", validBody)

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("ETag"))
	var body struct {
		Items []domain.Recommendation `json:"items"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Nice, France", body.Items[0].Title)
	assert.Equal(t, "https://images.test/nice.jpg", body.Items[0].ImageURL)

	assert.Equal(t, 3, q.gotN)
	assert.Equal(t, domain.PreferenceSet{
		Budget:      5000,
		Duration:    domain.DurationOneWeek,
		TravelStyle: domain.StyleRest,
		Environment: domain.EnvBeach,
		GroupType:   domain.GroupCouple,
	}, q.gotP)
}

func TestRecommend_LimitParam(t *testing.T) {
	q := &fakeRecommender{recs: []domain.Recommendation{}}
	ts := newTestServer(t, q, 0)

	res := post(t, ts.URL+"/v1/recommendations?limit=5", validBody)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 5, q.gotN)

	res = post(t, ts.URL+"/v1/recommendations?limit=0", validBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestRecommend_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		title  string
	}{
		{domain.ErrNoMatchFound, http.StatusNotFound, "No Match Found"},
		{domain.ErrEmptyCatalog, http.StatusServiceUnavailable, "Catalog Unavailable"},
		{errors.New("db down"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			ts := newTestServer(t, &fakeRecommender{err: tc.err}, 0)
			res := post(t, ts.URL+"/v1/recommendations", validBody)
			require.Equal(t, tc.status, res.StatusCode)
			assert.Equal(t, tc.title, decodeProblem(t, res)["title"])
		})
	}
}

func TestRecommend_ValidationErrors(t *testing.T) {
	q := &fakeRecommender{}
	ts := newTestServer(t, q, 0)

	res := post(t, ts.URL+"/v1/recommendations", `{"budget":100,"duration":"weekend","travel_style":"rest","environment":"beach"}`)

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	p := decodeProblem(t, res)
	errs, _ := p["errors"].([]any)
	assert.Contains(t, errs, "budget must be greater than or equal to 500")
	assert.Contains(t, errs, "group_type is required")
	assert.Zero(t, q.calls)
}

func TestRecommend_MalformedBody(t *testing.T) {
	q := &fakeRecommender{}
	ts := newTestServer(t, q, 0)

	for _, body := range []string{`not json`, `{"budget":5000,"extra":1}`} {
		res := post(t, ts.URL+"/v1/recommendations", body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	}
	assert.Zero(t, q.calls)
}

func TestRecommend_UnrecognizedValuesPassThrough(t *testing.T) {
	q := &fakeRecommender{recs: []domain.Recommendation{}}
	ts := newTestServer(t, q, 0)

	res := post(t, ts.URL+"/v1/recommendations",
		`{"budget":5000,"duration":"month","travel_style":"shopping","environment":"beach","group_type":"couple"}`)

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, domain.TravelStyle("shopping"), q.gotP.TravelStyle)
	assert.Equal(t, domain.Duration("month"), q.gotP.Duration)
}

func TestRecommend_ETagNotModified(t *testing.T) {
	q := &fakeRecommender{recs: []domain.Recommendation{{Title: "Nice, France"}}}
	ts := newTestServer(t, q, 0)

	first := post(t, ts.URL+"/v1/recommendations", validBody)
	etag := first.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/recommendations", strings.NewReader(validBody))
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotModified, res.StatusCode)
}

func TestOptions(t *testing.T) {
	ts := newTestServer(t, &fakeRecommender{}, 0)

	res, err := http.Get(ts.URL + "/v1/options")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, []any{"rest", "culture", "adventure", "entertainment"}, body["travel_styles"])
	assert.Equal(t, []any{"weekend", "one_week", "two_weeks"}, body["durations"])
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, &fakeRecommender{}, 2)

	var last int
	for i := 0; i < 3; i++ {
		res, err := http.Get(ts.URL + "/v1/options")
		require.NoError(t, err)
		last = res.StatusCode
		res.Body.Close()
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	res, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTimeout_LoggedAsServerError(t *testing.T) {
	out := &lockedBuffer{}
	prev := log.Logger
	log.Logger = zerolog.New(out)
	t.Cleanup(func() { log.Logger = prev })

	srv := httpserver.New(0, httpserver.WithTimeout(20*time.Millisecond))
	srv.Mount("/slow", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/slow")
	require.NoError(t, err)
	_, _ = io.ReadAll(res.Body)
	res.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "http_request") }, time.Second, 10*time.Millisecond)
	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.SplitN(strings.TrimSpace(out.String()), "\n", 2)[0]), &line))
	assert.Equal(t, "error", line["level"])
	assert.EqualValues(t, http.StatusServiceUnavailable, line["status"])
	assert.Equal(t, "/slow", line["route"])
}
