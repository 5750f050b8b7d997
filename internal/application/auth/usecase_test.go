package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/toner-control-api/internal/application/auth"
	"github.com/jhoicas/toner-control-api/internal/application/dto"
	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/entity"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
)

// fakeUserRepo repositorio en memoria indexado por email.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ repository.UserFilter, _, _ int) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Count(_ context.Context, _ repository.UserFilter) (int, error) {
	return len(r.byEmail), nil
}

func (r *fakeUserRepo) CountActiveAdmins(_ context.Context, excludeID string) (int, error) {
	n := 0
	for _, u := range r.byEmail {
		if u.Role == entity.RoleAdmin && u.IsActive && u.ID != excludeID {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.LastLoginAt = &at
		}
	}
	return nil
}

func newAuthUC(repo repository.UserRepository) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secret-de-test",
		ExpMinutes: 60,
		Issuer:     "toner-control-test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioConPasswordHasheado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Ana Gómez",
		Email:    "  Ana@Empresa.COM ",
		Password: "secreto123",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@empresa.com", user.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.RoleUsuario, user.Role, "sin rol explícito queda usuario")
	assert.True(t, user.IsActive)

	stored := repo.byEmail["ana@empresa.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@empresa.com", Password: "secreto123",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Otra Ana", Email: "ANA@empresa.com", Password: "secreto456",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validaciones(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	cases := []struct {
		name string
		in   dto.RegisterRequest
	}{
		{"sin nombre", dto.RegisterRequest{Email: "a@b.com", Password: "secreto123"}},
		{"sin email", dto.RegisterRequest{Name: "Ana", Password: "secreto123"}},
		{"password corto", dto.RegisterRequest{Name: "Ana", Email: "a@b.com", Password: "12345"}},
		{"rol inválido", dto.RegisterRequest{Name: "Ana", Email: "a@b.com", Password: "secreto123", Role: "superadmin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@empresa.com", Password: "secreto123", Role: entity.RoleTecnico,
	})
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@empresa.com", Password: "secreto123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, entity.RoleTecnico, resp.User.Role)
	assert.NotNil(t, resp.User.LastLoginAt, "el login registra last_login_at")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@empresa.com", Password: "secreto123",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@empresa.com", Password: "otro-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@empresa.com", Password: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@empresa.com", Password: "secreto123",
	})
	require.NoError(t, err)
	repo.byEmail["ana@empresa.com"].IsActive = false

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@empresa.com", Password: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
