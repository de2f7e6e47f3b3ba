package service

import (
	"golang.org/x/crypto/bcrypt"

	"notes-service/internal/model"
	"notes-service/internal/repository"
	"notes-service/pkg/jwtutil"
)

// Shared fixtures: two free tenants with a limit of 3 notes each, an admin
// and a member in the first, a member in the second.

const testSecret = "s3cret"

func testJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 24,
	})
}

func testStore() *repository.MemoryStore {
	hash, err := bcrypt.GenerateFromPassword([]byte(testSecret), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	store := repository.NewMemoryStore()
	store.Seed(
		[]model.Tenant{
			{ID: "acme", Name: "Acme Corp", Plan: model.PlanFree, NoteLimit: 3},
			{ID: "globex", Name: "Globex", Plan: model.PlanFree, NoteLimit: 3},
		},
		[]model.User{
			{ID: 1, Email: "admin@acme.test", Password: string(hash), Role: model.RoleAdmin, TenantID: "acme"},
			{ID: 2, Email: "member@acme.test", Password: string(hash), Role: model.RoleMember, TenantID: "acme"},
			{ID: 3, Email: "member@globex.test", Password: string(hash), Role: model.RoleMember, TenantID: "globex"},
		},
	)
	return store
}

func acmeAdmin() model.Identity {
	return model.Identity{UserID: 1, Email: "admin@acme.test", Role: model.RoleAdmin, TenantID: "acme"}
}

func acmeMember() model.Identity {
	return model.Identity{UserID: 2, Email: "member@acme.test", Role: model.RoleMember, TenantID: "acme"}
}

func globexMember() model.Identity {
	return model.Identity{UserID: 3, Email: "member@globex.test", Role: model.RoleMember, TenantID: "globex"}
}
