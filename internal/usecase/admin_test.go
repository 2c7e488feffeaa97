package usecase

import (
	"context"
	"errors"
	"testing"

	"timeos/internal/domain"
)

func TestSaveUser(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		store := &memStore{}
		uc := &AdminUseCase{Log: testLogger(), Store: store}

		id, err := uc.SaveUser(context.Background(), domain.User{Name: " Dana ", AccessCode: " 1234 "})
		if err != nil {
			t.Fatalf("SaveUser: %v", err)
		}
		if id == "" {
			t.Fatal("no id returned")
		}
		if len(store.users) != 1 {
			t.Fatalf("store holds %d users", len(store.users))
		}
		u := store.users[0]
		if u.Name != "Dana" || u.AccessCode != "1234" {
			t.Fatalf("fields not trimmed: %+v", u)
		}
		if u.Role != domain.RoleEmployee {
			t.Fatalf("role = %q, want employee default", u.Role)
		}
	})

	t.Run("update", func(t *testing.T) {
		store := &memStore{users: []domain.User{{ID: "u1", Name: "Dana", AccessCode: "1234", Role: domain.RoleEmployee}}}
		uc := &AdminUseCase{Log: testLogger(), Store: store}

		id, err := uc.SaveUser(context.Background(), domain.User{ID: "u1", Name: "Dana B", AccessCode: "1234", Role: domain.RoleEmployee})
		if err != nil {
			t.Fatalf("SaveUser: %v", err)
		}
		if id != "u1" {
			t.Fatalf("id = %q", id)
		}
		if store.users[0].Name != "Dana B" {
			t.Fatalf("user not updated: %+v", store.users[0])
		}
	})

	t.Run("validation", func(t *testing.T) {
		uc := &AdminUseCase{Log: testLogger(), Store: &memStore{}}
		if _, err := uc.SaveUser(context.Background(), domain.User{AccessCode: "1234"}); !errors.Is(err, ErrEmptyName) {
			t.Fatalf("missing name = %v", err)
		}
		if _, err := uc.SaveUser(context.Background(), domain.User{Name: "Dana"}); !errors.Is(err, ErrEmptyAccessCode) {
			t.Fatalf("missing access code = %v", err)
		}
	})
}

func TestSetBlocked(t *testing.T) {
	store := &memStore{users: []domain.User{{ID: "u1", Name: "Dana", AccessCode: "1234"}}}
	uc := &AdminUseCase{Log: testLogger(), Store: store}

	if err := uc.SetBlocked(context.Background(), store.users[0], true); err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}
	if !store.users[0].Blocked {
		t.Fatal("user not blocked")
	}
	if err := uc.SetBlocked(context.Background(), store.users[0], false); err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}
	if store.users[0].Blocked {
		t.Fatal("user still blocked")
	}
}

func TestCompanyCRUD(t *testing.T) {
	store := &memStore{}
	uc := &AdminUseCase{Log: testLogger(), Store: store}
	ctx := context.Background()

	if _, err := uc.AddCompany(ctx, domain.Company{Name: "  "}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("blank name = %v", err)
	}

	id, err := uc.AddCompany(ctx, domain.Company{Name: " Acme Corp ", ClientEmail: "billing@acme.test"})
	if err != nil {
		t.Fatalf("AddCompany: %v", err)
	}
	if store.companies[0].Name != "Acme Corp" {
		t.Fatalf("name not trimmed: %q", store.companies[0].Name)
	}

	if err := uc.UpdateCompany(ctx, domain.Company{ID: id, Name: ""}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("blank rename = %v", err)
	}
	if err := uc.UpdateCompany(ctx, domain.Company{ID: id, Name: "Acme Inc"}); err != nil {
		t.Fatalf("UpdateCompany: %v", err)
	}
	if store.companies[0].Name != "Acme Inc" {
		t.Fatalf("company not renamed: %+v", store.companies[0])
	}

	if err := uc.DeleteCompany(ctx, id); err != nil {
		t.Fatalf("DeleteCompany: %v", err)
	}
	companies, err := uc.Companies(ctx)
	if err != nil {
		t.Fatalf("Companies: %v", err)
	}
	if len(companies) != 0 {
		t.Fatalf("%d companies left, want 0", len(companies))
	}
}
