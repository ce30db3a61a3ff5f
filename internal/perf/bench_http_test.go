package perf

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/jobs"
	_ "github.com/jobhive/jobhive/testing"
)

type staticJobs struct {
	jobs      []jobs.Job
	listDelay time.Duration
}

func (s *staticJobs) CreateJob(ctx context.Context, job *jobs.Job) error { return nil }

func (s *staticJobs) GetJob(ctx context.Context, id string) (*jobs.Job, error) {
	return &s.jobs[0], nil
}

func (s *staticJobs) ListJobs(ctx context.Context) ([]jobs.Job, error) {
	if s.listDelay > 0 {
		time.Sleep(s.listDelay)
	}
	return append([]jobs.Job(nil), s.jobs...), nil
}

func (s *staticJobs) ListUnappliedJobs(ctx context.Context, applicantID string) ([]jobs.Job, error) {
	return s.ListJobs(ctx)
}

func (s *staticJobs) UpdateJob(ctx context.Context, job *jobs.Job) error { return nil }
func (s *staticJobs) DeleteJob(ctx context.Context, id string) error     { return nil }

func seedJobs(n int) []jobs.Job {
	out := make([]jobs.Job, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, jobs.Job{
			ID:          "job-" + strconv.Itoa(i),
			JobTitle:    "Go Developer",
			Location:    "Remote",
			Description: "Build and operate backend services.",
			CreatedOn:   time.Now().UTC(),
		})
	}
	return out
}

func listingRouter(t testing.TB, repo jobs.RepositoryPort, cache *jobs.Cache) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := jobs.NewHandler(logger, jobs.NewService(repo, cache, nil, logger), auth.Middleware{})
	r := chi.NewRouter()
	r.Route("/jobs", handler.MountRoutes)
	return r
}

func newCache(t testing.TB) *jobs.Cache {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return jobs.NewCache(client, time.Minute)
}

func TestListingLatencyTargets(t *testing.T) {
	// A deliberately slow repository stands in for a cold database read; the
	// cached path must stay well under the cold threshold.
	repo := &staticJobs{jobs: seedJobs(50), listDelay: 20 * time.Millisecond}
	router := listingRouter(t, repo, newCache(t))

	cold := timedRequest(t, router)
	if cold > 2*time.Second {
		t.Fatalf("cold listing above budget: %s", cold)
	}

	samples := make([]time.Duration, 0, 40)
	for i := 0; i < 40; i++ {
		samples = append(samples, timedRequest(t, router))
	}
	if p95 := percentile95(samples); p95 > 500*time.Millisecond {
		t.Fatalf("cached listing latency regression: p95=%s", p95)
	}
}

func BenchmarkListJobsCached(b *testing.B) {
	repo := &staticJobs{jobs: seedJobs(50)}
	router := listingRouter(b, repo, newCache(b))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs", nil))
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}

func BenchmarkListJobsUncached(b *testing.B) {
	repo := &staticJobs{jobs: seedJobs(50)}
	router := listingRouter(b, repo, nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs", nil))
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}

func timedRequest(t *testing.T, router http.Handler) time.Duration {
	t.Helper()
	start := time.Now()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	return time.Since(start)
}

func percentile95(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	index := int(float64(len(sorted)-1) * 0.95)
	return sorted[index]
}
