package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/stock-analytics-api/infrastructure/repository"
	"github.com/vfg2006/stock-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecretKey = "segredo-de-teste"

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := &Service{
		userRepo: mockRepo,
		cfg:      &config.Config{SecretKey: testSecretKey},
	}

	return service, mockRepo
}

// hashFor gera um hash bcrypt de custo mínimo para as fixtures
func hashFor(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_CreateUser(t *testing.T) {
	t.Run("Campos obrigatórios ausentes são rejeitados", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateUser(&domain.User{Email: "marina@estudio.com.br"})

		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Email já cadastrado é barrado antes do INSERT", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByEmail("marina@estudio.com.br").Return(&domain.User{ID: 7}, nil)

		_, err := service.CreateUser(&domain.User{
			Name:         "Marina",
			Lastname:     "Souza",
			Email:        "marina@estudio.com.br",
			PasswordHash: "Fotografia#2025",
		})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Cadastro simultâneo do mesmo email é barrado pela restrição do banco", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByEmail(gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().CreateUser(gomock.Any()).Return(nil, repository.ErrDuplicateEmail)

		_, err := service.CreateUser(&domain.User{
			Name:         "Marina",
			Lastname:     "Souza",
			Email:        "marina@estudio.com.br",
			PasswordHash: "Fotografia#2025",
		})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Cadastro válido normaliza o email e nunca devolve a senha", func(t *testing.T) {
		service, mockRepo := newTestService(t)

		var stored *domain.User
		mockRepo.EXPECT().GetUserByEmail("marina.souza@estudio.com.br").Return(nil, nil)
		mockRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *domain.User) (*domain.User, error) {
			stored = u
			u.ID = 42
			return u, nil
		})

		created, err := service.CreateUser(&domain.User{
			Name:         "Marina",
			Lastname:     "Souza",
			Email:        "  Marina.Souza@Estudio.com.BR ",
			PasswordHash: "Fotografia#2025",
		})

		require.NoError(t, err)
		require.NotNil(t, stored)

		// A senha em claro vira hash antes de chegar ao repositório
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Fotografia#2025")))

		assert.Equal(t, "marina.souza@estudio.com.br", stored.Email)
		assert.Equal(t, domain.RoleContributor, stored.RoleID)
		assert.False(t, stored.Active)

		assert.Equal(t, 42, created.ID)
		assert.Empty(t, created.PasswordHash)
	})
}

func TestService_LoginUser(t *testing.T) {
	activeUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           42,
			Name:         "Marina",
			Lastname:     "Souza",
			Email:        "marina@estudio.com.br",
			PasswordHash: hashFor(t, "Fotografia#2025"),
			Active:       true,
			RoleID:       domain.RoleContributor,
		}
	}

	t.Run("Credenciais em branco são rejeitadas sem consultar o banco", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.LoginUser("", "")

		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Email desconhecido vira usuário não encontrado", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByEmail("fantasma@estudio.com.br").Return(nil, nil)

		_, err := service.LoginUser("fantasma@estudio.com.br", "qualquer")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Conta desativada não loga nem com a senha certa", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		user := activeUser(t)
		user.Active = false
		mockRepo.EXPECT().GetUserByEmail(user.Email).Return(user, nil)

		_, err := service.LoginUser(user.Email, "Fotografia#2025")

		assert.ErrorIs(t, err, ErrUserDisabled)
		assert.True(t, IsCredentialsError(err))
	})

	t.Run("Senha incorreta vira credenciais inválidas", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		user := activeUser(t)
		mockRepo.EXPECT().GetUserByEmail(user.Email).Return(user, nil)

		_, err := service.LoginUser(user.Email, "senha-errada")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.True(t, IsCredentialsError(err))
	})

	t.Run("Login válido emite token aceito por ValidateToken", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		user := activeUser(t)
		// O serviço normaliza o email digitado antes da consulta
		mockRepo.EXPECT().GetUserByEmail(user.Email).Return(user, nil)

		token, err := service.LoginUser("  Marina@Estudio.com.BR ", "Fotografia#2025")

		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.UserEmail)
		assert.Equal(t, user.RoleID, claims.UserRoleID)
	})
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := newTestService(t)

	t.Run("Token expirado vira ErrExpiredToken", func(t *testing.T) {
		claims := domain.Claims{
			UserID: 42,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecretKey))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Token assinado com outra chave é rejeitado", func(t *testing.T) {
		claims := domain.Claims{
			UserID: 42,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("outra-chave"))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)

		assert.Error(t, err)
	})

	t.Run("Token com algoritmo diferente de HS256 é rejeitado", func(t *testing.T) {
		claims := domain.Claims{
			UserID: 42,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte(testSecretKey))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)

		assert.Error(t, err)
	})

	t.Run("Lixo não parseável é rejeitado", func(t *testing.T) {
		_, err := service.ValidateToken("isto.nao.e.um.jwt")

		assert.Error(t, err)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "Senha completa passa", password: "Fotografia#2025", valid: true},
		{name: "Curta demais é rejeitada", password: "Ab#1", valid: false},
		{name: "Sem maiúscula é rejeitada", password: "fotografia#2025", valid: false},
		{name: "Sem minúscula é rejeitada", password: "FOTOGRAFIA#2025", valid: false},
		{name: "Sem número é rejeitada", password: "Fotografia#Boa", valid: false},
		{name: "Sem caractere especial é rejeitada", password: "Fotografia2025", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)

			if tt.valid {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, ErrPasswordPolicy)

			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, apiErrors.ErrInvalidFormat, authErr.Code)
		})
	}
}

func TestService_ChangePassword(t *testing.T) {
	storedUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           42,
			Email:        "marina@estudio.com.br",
			PasswordHash: hashFor(t, "Fotografia#2025"),
			Active:       true,
		}
	}

	t.Run("Usuário inexistente vira ErrUserNotFound", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(99).Return(nil, nil)

		err := service.ChangePassword(99, "Fotografia#2025", "NovaSenha#2026")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Senha atual incorreta é recusada", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(42).Return(storedUser(t), nil)

		err := service.ChangePassword(42, "senha-errada", "NovaSenha#2026")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Nova senha igual à atual é recusada", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(42).Return(storedUser(t), nil)

		err := service.ChangePassword(42, "Fotografia#2025", "Fotografia#2025")

		assert.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("Nova senha fora da política é recusada", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(42).Return(storedUser(t), nil)

		err := service.ChangePassword(42, "Fotografia#2025", "fraca")

		assert.ErrorIs(t, err, ErrPasswordPolicy)
	})

	t.Run("Troca válida grava o hash da nova senha", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(42).Return(storedUser(t), nil)

		var updated *domain.User
		mockRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(u *domain.User) error {
			updated = u
			return nil
		})

		err := service.ChangePassword(42, "Fotografia#2025", "NovaSenha#2026")

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("NovaSenha#2026")))
	})
}

func TestService_GenerateStrongPassword(t *testing.T) {
	admin := &domain.User{ID: 1, RoleID: domain.RoleAdmin, Active: true}

	t.Run("Solicitante sem perfil de administrador é recusado", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(5).Return(&domain.User{ID: 5, RoleID: domain.RoleContributor}, nil)

		_, err := service.GenerateStrongPassword(5, 42)

		assert.ErrorIs(t, err, ErrNoAdminPrivileges)
	})

	t.Run("Usuário alvo inexistente vira ErrUserNotFound", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(1).Return(admin, nil)
		mockRepo.EXPECT().GetUserByID(99).Return(nil, nil)

		_, err := service.GenerateStrongPassword(1, 99)

		assert.ErrorIs(t, err, ErrUserNotFound)

		var authErr *AuthError
		require.True(t, errors.As(err, &authErr))
		assert.Equal(t, 99, authErr.UserID)
	})

	t.Run("Senha sorteada passa na política e o hash gravado confere", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		target := &domain.User{ID: 42, RoleID: domain.RoleContributor, Active: true}
		mockRepo.EXPECT().GetUserByID(1).Return(admin, nil)
		mockRepo.EXPECT().GetUserByID(42).Return(target, nil)

		var updated *domain.User
		mockRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(u *domain.User) error {
			updated = u
			return nil
		})

		plain, err := service.GenerateStrongPassword(1, 42)

		require.NoError(t, err)
		assert.NoError(t, service.ValidatePasswordStrength(plain))

		require.NotNil(t, updated)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(plain)))
	})
}

func TestRandomPassword(t *testing.T) {
	t.Run("Toda senha sorteada satisfaz a política", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			password, err := randomPassword(generatedPasswordLen)

			require.NoError(t, err)
			assert.Len(t, password, generatedPasswordLen)
			assert.True(t, meetsPasswordPolicy(password), "senha sorteada fora da política: %q", password)
		}
	})

	t.Run("Comprimento abaixo do mínimo cai no padrão", func(t *testing.T) {
		password, err := randomPassword(4)

		require.NoError(t, err)
		assert.Len(t, password, generatedPasswordLen)
	})

	t.Run("Comprimentos maiores são respeitados", func(t *testing.T) {
		password, err := randomPassword(20)

		require.NoError(t, err)
		assert.Len(t, password, 20)
		assert.True(t, meetsPasswordPolicy(password))
	})
}

func TestService_UpdateUser(t *testing.T) {
	t.Run("ID ausente é rejeitado", func(t *testing.T) {
		service, _ := newTestService(t)

		err := service.UpdateUser(&domain.UpdateUserRequest{})

		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Usuário inexistente vira ErrUserNotFound", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(99).Return(nil, nil)

		err := service.UpdateUser(&domain.UpdateUserRequest{ID: 99})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Atualização parcial preserva os campos não enviados", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		stored := &domain.User{
			ID:       42,
			Name:     "Marina",
			Lastname: "Souza",
			Email:    "marina@estudio.com.br",
			Active:   true,
			RoleID:   domain.RoleContributor,
		}
		mockRepo.EXPECT().GetUserByID(42).Return(stored, nil)

		var updated *domain.User
		mockRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(u *domain.User) error {
			updated = u
			return nil
		})

		newName := "Mariana"
		err := service.UpdateUser(&domain.UpdateUserRequest{ID: 42, Name: &newName})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Mariana", updated.Name)
		assert.Equal(t, "Souza", updated.Lastname)
		assert.Equal(t, "marina@estudio.com.br", updated.Email)
		assert.True(t, updated.Active)
	})

	t.Run("Email novo é normalizado antes de gravar", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(42).Return(&domain.User{ID: 42, Active: true}, nil)

		var updated *domain.User
		mockRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(u *domain.User) error {
			updated = u
			return nil
		})

		newEmail := " Marina.Nova@Estudio.com.BR "
		err := service.UpdateUser(&domain.UpdateUserRequest{ID: 42, Email: &newEmail})

		require.NoError(t, err)
		assert.Equal(t, "marina.nova@estudio.com.br", updated.Email)
	})

	t.Run("Email já usado por outro usuário vira ErrUserAlreadyExists", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(42).Return(&domain.User{ID: 42, Active: true}, nil)
		mockRepo.EXPECT().UpdateUser(gomock.Any()).Return(repository.ErrDuplicateEmail)

		newEmail := "ocupado@estudio.com.br"
		err := service.UpdateUser(&domain.UpdateUserRequest{ID: 42, Email: &newEmail})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestService_ListUser(t *testing.T) {
	t.Run("Hashes de senha nunca saem na listagem", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().ListUser().Return([]*domain.User{
			{ID: 1, Name: "Marina", PasswordHash: "$2a$10$hash-um"},
			{ID: 2, Name: "Rafael", PasswordHash: "$2a$10$hash-dois"},
		}, nil)

		users, err := service.ListUser()

		require.NoError(t, err)
		require.Len(t, users, 2)
		for _, user := range users {
			assert.Empty(t, user.PasswordHash)
		}
	})
}

func TestService_GetUserProfile(t *testing.T) {
	t.Run("Perfil sai sem o hash de senha", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(42).Return(&domain.User{
			ID:           42,
			Name:         "Marina",
			PasswordHash: "$2a$10$hash",
		}, nil)

		user, err := service.GetUserProfile(42)

		require.NoError(t, err)
		assert.Empty(t, user.PasswordHash)
		assert.Equal(t, "Marina", user.Name)
	})

	t.Run("Usuário inexistente vira ErrUserNotFound", func(t *testing.T) {
		service, mockRepo := newTestService(t)
		mockRepo.EXPECT().GetUserByID(99).Return(nil, nil)

		_, err := service.GetUserProfile(99)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
