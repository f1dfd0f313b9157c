package twitter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintworks/impression/internal/configs"
	"github.com/mintworks/impression/internal/models"
	"github.com/mintworks/impression/internal/social"
)

var testProfile = configs.HeuristicsProfile{AgeDivisor: 1500, PostThreshold: 3, HighBonus: 60, LowBonus: 20}

func apiServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/by/username/alice", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "created_at", r.URL.Query().Get("user.fields"))
		_, _ = w.Write([]byte(`{"data":{"id":"4800","username":"alice","created_at":"2022-03-15T00:00:00.000Z"}}`))
	})
	mux.HandleFunc("/users/4800/tweets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-03-01T00:00:00Z", r.URL.Query().Get("start_time"))
		_, _ = w.Write([]byte(`{"data":[
			{"id":"t1","text":"gm","created_at":"2026-03-10T08:00:00.000Z"},
			{"id":"t2","text":"wagmi","created_at":"2026-03-10T09:00:00.000Z"},
			{"id":"t3","text":"claimed","created_at":"2026-03-12T10:00:00.000Z"},
			{"id":"old","text":"pre-campaign","created_at":"2026-02-01T10:00:00.000Z"}
		]}`))
	})
	return httptest.NewServer(mux)
}

func TestScan(t *testing.T) {
	srv := apiServer(t)
	defer srv.Close()

	s := NewScanner("test-token", testProfile)
	s.SetBaseURL(srv.URL)
	s.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }

	window := models.ActivityWindow{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	scan, err := s.Scan(context.Background(), "alice", window)
	require.NoError(t, err)

	assert.Equal(t, int64(4800), scan.IdentityID)
	assert.Equal(t, 1461, scan.IdentityAgeDays) // 4 years incl. one leap day
	assert.False(t, scan.Synthetic)

	require.Len(t, scan.Posts, 3, "posts outside the window are dropped")
	assert.Equal(t, "t3", scan.Posts[0].PostID, "newest first")
	assert.Equal(t, "alice", scan.Posts[0].OriginHandle)

	assert.Equal(t, map[string]int{"2026-03-10": 2, "2026-03-12": 1}, scan.DailyBreakdown)
	assert.Equal(t, 3, scan.ActivityPoints)
	// 1461/1500 of 40 age points, rounded with the low bonus: 39 + 20.
	assert.Equal(t, 59, scan.TrustScore)
}

func TestScan_EmptyHandle(t *testing.T) {
	s := NewScanner("test-token", testProfile)

	_, err := s.Scan(context.Background(), "", models.ActivityWindow{})
	assert.ErrorIs(t, err, social.ErrEmptyHandle)
}

func TestScan_UnknownHandle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	s := NewScanner("test-token", testProfile)
	s.SetBaseURL(srv.URL)

	_, err := s.Scan(context.Background(), "alice", models.ActivityWindow{})
	assert.Error(t, err)
}

func TestScan_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewScanner("test-token", testProfile)
	s.SetBaseURL(srv.URL)

	_, err := s.Scan(context.Background(), "alice", models.ActivityWindow{})
	assert.Error(t, err)
}
