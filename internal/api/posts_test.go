package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/syrianarchive/archivectl/internal/model"
	"github.com/syrianarchive/archivectl/internal/session"
)

func postsService(t *testing.T, handler http.Handler, sess *session.Session) (*PostsService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, testStore(t, sess))
	return &PostsService{client: client}, server
}

func TestPosts_ListPagination(t *testing.T) {
	svc, _ := postsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" {
			t.Errorf("page = %q, want 2", q.Get("page"))
		}
		if q.Get("page_size") != "5" {
			t.Errorf("page_size = %q, want 5", q.Get("page_size"))
		}
		prev := "/posts/?page=1&page_size=5"
		_ = json.NewEncoder(w).Encode(model.Page[model.Post]{
			Count:    12,
			Previous: &prev,
			Results: []model.Post{
				{ID: 6}, {ID: 7}, {ID: 8}, {ID: 9}, {ID: 10},
			},
		})
	}), &session.Session{AccessToken: "a", RefreshToken: "r"})

	page, err := svc.List(context.Background(), ListPostsOptions{
		ListOptions: ListOptions{Page: 2, PageSize: 5},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(page.Results) > 5 {
		t.Errorf("got %d results, want at most 5", len(page.Results))
	}
	if !page.HasPrevious() {
		t.Errorf("page 2 should have a previous link")
	}
	if page.Count != 12 {
		t.Errorf("count = %d, want 12", page.Count)
	}
}

func TestPosts_ListClampsPageSize(t *testing.T) {
	svc, _ := postsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page_size"); got != "100" {
			t.Errorf("page_size = %q, want clamped to 100", got)
		}
		_ = json.NewEncoder(w).Encode(model.Page[model.Post]{})
	}), &session.Session{AccessToken: "a", RefreshToken: "r"})

	_, err := svc.List(context.Background(), ListPostsOptions{
		ListOptions: ListOptions{PageSize: 500},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
}

func TestPosts_ListFilters(t *testing.T) {
	svc, _ := postsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search") != "hospital" {
			t.Errorf("search = %q", q.Get("search"))
		}
		if q.Get("user") != "4" {
			t.Errorf("user = %q", q.Get("user"))
		}
		if q.Get("event") != "9" {
			t.Errorf("event = %q", q.Get("event"))
		}
		_ = json.NewEncoder(w).Encode(model.Page[model.Post]{})
	}), &session.Session{AccessToken: "a", RefreshToken: "r"})

	_, err := svc.List(context.Background(), ListPostsOptions{
		ListOptions: ListOptions{Search: "hospital"},
		UserID:      4,
		EventID:     9,
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
}

func TestPosts_LikeToggle(t *testing.T) {
	liked := false
	likes := 10

	svc, _ := postsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/3/like/" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		liked = !liked
		if liked {
			likes++
		} else {
			likes--
		}
		_ = json.NewEncoder(w).Encode(model.LikeResult{Liked: liked, LikesCount: likes})
	}), &session.Session{AccessToken: "a", RefreshToken: "r"})

	ctx := context.Background()
	first, err := svc.Like(ctx, 3)
	if err != nil {
		t.Fatalf("first like: %v", err)
	}
	if !first.Liked || first.LikesCount != 11 {
		t.Errorf("first like = %+v", first)
	}

	second, err := svc.Like(ctx, 3)
	if err != nil {
		t.Fatalf("second like: %v", err)
	}
	if second.Liked {
		t.Errorf("second like should report liked=false")
	}
	if second.LikesCount != first.LikesCount-1 {
		t.Errorf("likes_count = %d after toggle off, want %d", second.LikesCount, first.LikesCount-1)
	}
}

func TestPosts_TrustRoleGate(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_ = json.NewEncoder(w).Encode(model.TrustResult{Trusted: true, TrustsCount: 3, IsVerified: true})
	})

	// Normal role: rejected locally, no request
	svc, _ := postsService(t, handler, &session.Session{
		AccessToken: "a", RefreshToken: "r", Role: model.RoleNormal,
	})
	_, err := svc.Trust(context.Background(), 1)
	if kind := KindOf(err); kind != KindPermission {
		t.Errorf("normal role trust kind = %q, want permission", kind)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("server saw %d calls from normal role, want 0", n)
	}

	// Journalist: allowed, is_verified comes from the server
	svc, _ = postsService(t, handler, &session.Session{
		AccessToken: "a", RefreshToken: "r", Role: model.RoleJournalist,
	})
	result, err := svc.Trust(context.Background(), 1)
	if err != nil {
		t.Fatalf("journalist trust: %v", err)
	}
	if !result.Trusted || result.TrustsCount != 3 || !result.IsVerified {
		t.Errorf("trust result = %+v", result)
	}
}

func TestPosts_ReportReasonValidation(t *testing.T) {
	var calls int32
	svc, _ := postsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["reason"] != "spam" {
			t.Errorf("reason = %q", body["reason"])
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.PostReport{ID: 1, PostID: 5, Reason: model.ReasonSpam})
	}), &session.Session{AccessToken: "a", RefreshToken: "r"})

	ctx := context.Background()

	_, err := svc.Report(ctx, 5, model.ReportReason("rude"))
	if kind := KindOf(err); kind != KindValidation {
		t.Errorf("invalid reason kind = %q, want validation", kind)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("invalid reason reached the server")
	}

	report, err := svc.Report(ctx, 5, model.ReasonSpam)
	if err != nil {
		t.Fatalf("valid report: %v", err)
	}
	if report.Reason != model.ReasonSpam {
		t.Errorf("report = %+v", report)
	}
}

func TestPosts_CreateOmitsAbsentOptionals(t *testing.T) {
	svc, _ := postsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&raw)
		if _, present := raw["title"]; present {
			t.Errorf("absent title was sent: %v", raw)
		}
		if _, present := raw["attachment"]; present {
			t.Errorf("absent attachment was sent: %v", raw)
		}
		if _, present := raw["event"]; present {
			t.Errorf("absent event was sent: %v", raw)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.Post{ID: 1, Content: "c", Status: model.PostPendingReview})
	}), &session.Session{AccessToken: "a", RefreshToken: "r"})

	post, err := svc.Create(context.Background(), model.PostDraft{Content: "c"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.Status != model.PostPendingReview {
		t.Errorf("status = %q", post.Status)
	}

	_, err = svc.Create(context.Background(), model.PostDraft{})
	if kind := KindOf(err); kind != KindValidation {
		t.Errorf("empty content kind = %q, want validation", kind)
	}
}
