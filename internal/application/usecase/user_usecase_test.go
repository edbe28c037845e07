package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(user *entity.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return domain.ErrUsernameAlreadyExists
		}
	}
	cp := *user
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateRole(id string, role entity.Role) error {
	for _, u := range f.users {
		if u.ID == id {
			u.Role = role
		}
	}
	return nil
}

func (f *fakeUserRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.users))
	for i := len(f.users) - 1; i >= 0; i-- {
		cp := *f.users[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(id string) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestUserCreate_HasheaPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(dto.CreateUserRequest{Username: "maria", Password: "secreto1", Role: "editor"})
	require.NoError(t, err)
	assert.Equal(t, "maria", out.Username)
	assert.Equal(t, "editor", out.Role)

	require.Len(t, repo.users, 1)
	stored := repo.users[0]
	assert.NotEqual(t, "secreto1", stored.PasswordHash, "el password nunca se guarda en plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto1")))
}

func TestUserCreate_RolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(&fakeUserRepo{})

	_, err := uc.Create(dto.CreateUserRequest{Username: "maria", Password: "secreto1", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUserCreate_UsernameDuplicado(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Create(dto.CreateUserRequest{Username: "maria", Password: "secreto1", Role: "viewer"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateUserRequest{Username: "maria", Password: "otra-clave", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
	assert.Len(t, repo.users, 1)
}

func TestUserList_NoExponePasswordHash(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := usecase.NewUserUseCase(repo)
	_, err := uc.Create(dto.CreateUserRequest{Username: "maria", Password: "secreto1", Role: "admin"})
	require.NoError(t, err)

	list, err := uc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	// El DTO de salida no tiene campo de password: verificamos los que sí expone
	assert.Equal(t, "maria", list[0].Username)
	assert.Equal(t, "admin", list[0].Role)
	assert.NotEmpty(t, list[0].ID)
}

func TestUserUpdateRole(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := usecase.NewUserUseCase(repo)
	created, err := uc.Create(dto.CreateUserRequest{Username: "maria", Password: "secreto1", Role: "viewer"})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateRole(created.ID, dto.UpdateUserRequest{Role: "editor"}))
	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEditor, stored.Role)

	assert.ErrorIs(t, uc.UpdateRole(created.ID, dto.UpdateUserRequest{Role: "jefe"}), domain.ErrInvalidRole)
}

func TestUserDelete_PropioUsuario_Rechazado(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := usecase.NewUserUseCase(repo)
	created, err := uc.Create(dto.CreateUserRequest{Username: "admin", Password: "secreto1", Role: "admin"})
	require.NoError(t, err)

	// Cualquier rol: un usuario nunca borra su propia cuenta
	err = uc.Delete(created.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrSelfDelete)
	assert.Len(t, repo.users, 1, "el usuario debe seguir existiendo")
}

func TestUserDelete_OtroUsuario(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := usecase.NewUserUseCase(repo)
	admin, err := uc.Create(dto.CreateUserRequest{Username: "admin", Password: "secreto1", Role: "admin"})
	require.NoError(t, err)
	other, err := uc.Create(dto.CreateUserRequest{Username: "pedro", Password: "secreto2", Role: "viewer"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(admin.ID, other.ID))
	assert.Len(t, repo.users, 1)
}
