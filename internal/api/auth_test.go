package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/syrianarchive/archivectl/internal/model"
	"github.com/syrianarchive/archivectl/internal/session"
)

func TestAuth_LoginThenMyPosts(t *testing.T) {
	me := model.User{ID: 42, Username: "lina", Role: model.RoleNormal}
	posts := []model.Post{
		{ID: 1, User: me, Content: "first", Status: model.PostApproved},
		{ID: 2, User: model.User{ID: 9}, Content: "someone else's"},
		{ID: 3, User: me, Content: "second", Status: model.PostPendingReview},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login/":
			var creds map[string]string
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds["username"] != "lina" || creds["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error": "Invalid credentials"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(LoginResponse{
				Access:  "access-1",
				Refresh: "refresh-1",
				User:    me,
			})
		case "/posts/my/":
			if bearer(r) != "access-1" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error": "no"}`))
				return
			}
			var mine []model.Post
			for _, p := range posts {
				if p.User.ID == me.ID {
					mine = append(mine, p)
				}
			}
			_ = json.NewEncoder(w).Encode(model.Page[model.Post]{Count: len(mine), Results: mine})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store := testStore(t, nil)
	client := NewClient(server.URL, store)
	auth := &AuthService{client: client}
	postsSvc := &PostsService{client: client}

	ctx := context.Background()

	user, err := auth.Login(ctx, "lina", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != 42 {
		t.Errorf("user = %+v", user)
	}

	sess, ok := store.Current()
	if !ok {
		t.Fatalf("no session stored after login")
	}
	if sess.AccessToken != "access-1" || sess.RefreshToken != "refresh-1" || sess.UserID != 42 {
		t.Errorf("stored session = %+v", sess)
	}

	page, err := postsSvc.My(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("My failed: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("got %d posts, want 2", len(page.Results))
	}
	for _, p := range page.Results {
		if p.User.ID != 42 {
			t.Errorf("foreign post in /posts/my/: %+v", p)
		}
	}
}

func TestAuth_LoginFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] == "banned" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error": "Account is banned"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Invalid credentials"}`))
	}))
	defer server.Close()

	store := testStore(t, nil)
	auth := &AuthService{client: NewClient(server.URL, store)}
	ctx := context.Background()

	if _, err := auth.Login(ctx, "", ""); KindOf(err) != KindValidation {
		t.Errorf("empty credentials should fail validation locally")
	}

	_, err := auth.Login(ctx, "lina", "wrong")
	if kind := KindOf(err); kind != KindAuthentication {
		t.Errorf("bad password kind = %q, want authentication", kind)
	}

	_, err = auth.Login(ctx, "banned", "x")
	if kind := KindOf(err); kind != KindPermission {
		t.Errorf("banned account kind = %q, want permission", kind)
	}
	if store.IsAuthenticated() {
		t.Errorf("session stored after failed login")
	}
}

func TestAuth_Logout(t *testing.T) {
	store := testStore(t, &session.Session{AccessToken: "a", RefreshToken: "r"})
	auth := &AuthService{client: NewClient("http://unused", store)}

	if err := auth.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if store.IsAuthenticated() {
		t.Errorf("still authenticated after logout")
	}
}
