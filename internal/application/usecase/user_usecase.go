package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/toner-control-api/internal/application/auth"
	"github.com/jhoicas/toner-control-api/internal/application/dto"
	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/entity"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
	"github.com/jhoicas/toner-control-api/pkg/strutil"
)

// UserUseCase gestión de usuarios (admin) y perfil propio.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetProfile devuelve el perfil completo de un usuario. Nil si no existe.
func (uc *UserUseCase) GetProfile(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return auth.ToUserResponse(user), nil
}

// GetCompact devuelve lo esencial del usuario para hidratar el cliente.
func (uc *UserUseCase) GetCompact(ctx context.Context, id string) (*dto.UserCompactResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &dto.UserCompactResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		IsActive: user.IsActive,
	}, nil
}

// Update actualiza un usuario (admin). Si baja de rol a un admin, verifica
// que no sea el último admin activo.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: rol inválido", domain.ErrInvalidInput)
		}
		if user.Role == entity.RoleAdmin && *in.Role != entity.RoleAdmin {
			admins, err := uc.repo.CountActiveAdmins(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			if admins == 0 {
				return nil, domain.ErrLastActiveAdmin
			}
		}
		user.Role = *in.Role
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, fmt.Errorf("%w: password mínimo de 6 caracteres", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// ToggleActive invierte el flag activo. Desactivar al último admin activo
// está prohibido.
func (uc *UserUseCase) ToggleActive(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if user.IsActive && user.Role == entity.RoleAdmin {
		admins, err := uc.repo.CountActiveAdmins(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if admins == 0 {
			return nil, domain.ErrLastActiveAdmin
		}
	}
	user.IsActive = !user.IsActive
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios (admin) con búsqueda, filtros y paginación.
func (uc *UserUseCase) List(ctx context.Context, filter repository.UserFilter, page dto.PageRequest) (*dto.UserListResponse, error) {
	if filter.Role != "" && !entity.ValidRole(filter.Role) {
		return nil, fmt.Errorf("%w: rol inválido", domain.ErrInvalidInput)
	}
	page.Normalize()
	filter.Search = strutil.Fold(filter.Search)
	items, err := uc.repo.List(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		Items: make([]dto.UserResponse, 0, len(items)),
		Total: total,
		Page:  page.Page,
		Pages: totalPages(total, page.Limit),
	}
	for _, u := range items {
		out.Items = append(out.Items, *auth.ToUserResponse(u))
	}
	return out, nil
}
