package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/infrastructure/memory"
)

func seedUsers(t *testing.T, repo *memory.UserRepo, n int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		_, err := repo.Create(context.Background(), domain.User{
			ID:        fmt.Sprintf("id-%03d", i),
			Login:     fmt.Sprintf("user_%03d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestList_DefaultsAndClamping(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepo()
	seedUsers(t, repo, 5)
	svc := NewService(repo)

	res, err := svc.List(context.Background(), 0, 0, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Pagination.Page != 1 || res.Pagination.Limit != ListLimitDefault {
		t.Fatalf("defaults not applied: %+v", res.Pagination)
	}

	res, err = svc.List(context.Background(), -3, 1000, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Pagination.Page != 1 || res.Pagination.Limit != ListLimitMax {
		t.Fatalf("clamping not applied: %+v", res.Pagination)
	}
}

func TestList_PaginationMath(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepo()
	seedUsers(t, repo, 25)
	svc := NewService(repo)

	res, err := svc.List(context.Background(), 2, 10, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Users) != 10 {
		t.Fatalf("expected 10 users, got %d", len(res.Users))
	}
	p := res.Pagination
	if p.TotalCount != 25 || p.TotalPages != 3 {
		t.Fatalf("totals wrong: %+v", p)
	}
	if !p.HasNext || !p.HasPrev {
		t.Fatalf("middle page must have both neighbors: %+v", p)
	}

	res, err = svc.List(context.Background(), 3, 10, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Users) != 5 || res.Pagination.HasNext {
		t.Fatalf("last page wrong: %d users, %+v", len(res.Users), res.Pagination)
	}
}

func TestList_NewestFirst(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepo()
	seedUsers(t, repo, 3)
	svc := NewService(repo)

	res, err := svc.List(context.Background(), 1, 10, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Users[0].Login != "user_002" || res.Users[2].Login != "user_000" {
		t.Fatalf("expected newest first, got %v", res.Users)
	}
}

func TestList_SearchFilterCountsMatchesOnly(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepo()
	seedUsers(t, repo, 12)
	svc := NewService(repo)

	res, err := svc.List(context.Background(), 1, 50, "user_01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Users) != 2 || res.Pagination.TotalCount != 2 {
		t.Fatalf("expected 2 matches, got %d (total %d)", len(res.Users), res.Pagination.TotalCount)
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	t.Parallel()

	svc := NewService(memory.NewUserRepo())

	for _, q := range []string{"", "   ", "<script>alert(1)</script>"} {
		_, err := svc.Search(context.Background(), q, 10)
		if !domain.Is(err, "MISSING_QUERY") {
			t.Fatalf("query %q: expected MISSING_QUERY, got %v", q, err)
		}
	}
}

func TestSearch_OrderedByLogin(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepo()
	seedUsers(t, repo, 5)
	svc := NewService(repo)

	res, err := svc.Search(context.Background(), "user", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Users) != 3 {
		t.Fatalf("limit not applied: %d", len(res.Users))
	}
	if res.Users[0].Login != "user_000" || res.Users[2].Login != "user_002" {
		t.Fatalf("expected login order, got %v", res.Users)
	}
	if res.Limit != 3 || res.Query != "user" {
		t.Fatalf("meta wrong: %+v", res)
	}
}
