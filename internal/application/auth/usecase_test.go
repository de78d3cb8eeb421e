package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct{ byID map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) Update(_ context.Context, u *entity.User) error { m.byID[u.ID] = u; return nil }
func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) {
	return nil, nil
}

var now = time.Now()

func newUC() (*AuthUseCase, *memUsers) {
	repo := &memUsers{byID: map[string]*entity.User{}}
	return NewAuthUseCase(repo, JWTConfig{Secret: "s3cr3t", ExpMinutes: 60, Issuer: "test"}, ports.FixedClock(now)), repo
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Obra.pe", Password: "clave-segura", Role: entity.RoleRRHH})
	require.NoError(t, err)
	assert.Equal(t, "ana@obra.pe", u.Email, "el email se normaliza")

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@obra.pe", Password: "clave-segura"})
	require.NoError(t, err)

	uid, role, err := jwt.Parse("s3cr3t", res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
	assert.Equal(t, entity.RoleRRHH, role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()
	in := dto.RegisterRequest{Email: "luis@obra.pe", Password: "clave-segura", Role: entity.RoleAdmin}
	_, err := uc.RegisterUser(ctx, in)
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_InvalidRole(t *testing.T) {
	uc, _ := newUC()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "x@obra.pe", Password: "clave-segura", Role: "jefe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_WrongPasswordAndUnknownEmail(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "rosa@obra.pe", Password: "clave-segura", Role: entity.RoleLogistica})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "rosa@obra.pe", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@obra.pe", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_InactiveUser(t *testing.T) {
	uc, repo := newUC()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "baja@obra.pe", Password: "clave-segura", Role: entity.RoleRRHH})
	require.NoError(t, err)
	repo.byID[u.ID].Status = "inactive"

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@obra.pe", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
