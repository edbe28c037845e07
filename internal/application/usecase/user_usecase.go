package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de usuarios (solo accesible con manage_users).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista todos los usuarios, sin password hash.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	users, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario: valida el rol, hashea el password con bcrypt y persiste.
// Username duplicado -> domain.ErrUsernameAlreadyExists (lo produce el repo desde 23505).
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// UpdateRole cambia el rol de un usuario (única mutación permitida después del alta).
func (uc *UserUseCase) UpdateRole(id string, in dto.UpdateUserRequest) error {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return domain.ErrInvalidRole
	}
	return uc.repo.UpdateRole(id, role)
}

// Delete elimina un usuario. callerID es la identidad resuelta del token: un usuario
// nunca puede eliminar su propia cuenta, sin importar el rol. Esta regla de negocio
// se verifica DESPUÉS de la autorización por rol, no en su lugar.
func (uc *UserUseCase) Delete(callerID, id string) error {
	if callerID == id {
		return domain.ErrSelfDelete
	}
	return uc.repo.Delete(id)
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
