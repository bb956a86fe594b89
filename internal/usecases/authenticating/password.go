package authenticating

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"

	minPasswordLen       = 8
	generatedPasswordLen = 12
)

// passwordRules relaciona cada classe de caractere obrigatória à mensagem
// devolvida quando ela está ausente
var passwordRules = []struct {
	chars   string
	message string
}{
	{lowerChars, "a senha deve conter pelo menos uma letra minúscula"},
	{upperChars, "a senha deve conter pelo menos uma letra maiúscula"},
	{digitChars, "a senha deve conter pelo menos um número"},
	{specialChars, "a senha deve conter pelo menos um caractere especial"},
}

// ValidatePasswordStrength confere a senha contra a política: tamanho mínimo
// e uma ocorrência de cada classe de passwordRules
func (s *Service) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLen {
		return NewAuthError(ErrPasswordPolicy, apiErrors.ErrInvalidFormat,
			fmt.Sprintf("a senha deve conter pelo menos %d caracteres", minPasswordLen))
	}

	for _, rule := range passwordRules {
		if !strings.ContainsAny(password, rule.chars) {
			return NewAuthError(ErrPasswordPolicy, apiErrors.ErrInvalidFormat, rule.message)
		}
	}

	return nil
}

// ChangePassword troca a senha do próprio usuário após conferir a atual
func (s *Service) ChangePassword(userID int, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return NewUserAuthError(err, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário no banco de dados")
	}
	if user == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, userID, "Senha atual incorreta")
	}
	if currentPassword == newPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrInvalidRequest, userID, "Nova senha deve ser diferente da atual")
	}
	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao processar a senha")
	}

	user.PasswordHash = hash
	if err := s.userRepo.UpdateUser(user); err != nil {
		return NewUserAuthError(err, apiErrors.ErrDatabaseOperation, userID, "Erro ao atualizar a senha")
	}

	return nil
}

// GenerateStrongPassword sorteia uma senha nova para o usuário alvo e grava o
// hash dela. Somente administradores podem disparar a troca; a senha em claro
// é devolvida uma única vez, na resposta desta chamada.
func (s *Service) GenerateStrongPassword(requestUserID, targetUserID int) (string, error) {
	requester, err := s.userRepo.GetUserByID(requestUserID)
	if err != nil {
		return "", NewUserAuthError(err, apiErrors.ErrDatabaseOperation, requestUserID, "Erro ao consultar usuário no banco de dados")
	}
	if requester == nil {
		return "", NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, requestUserID, "Usuário solicitante não encontrado")
	}
	if requester.RoleID != domain.RoleAdmin {
		return "", NewUserAuthError(ErrNoAdminPrivileges, apiErrors.ErrInsufficientPrivilege, requestUserID, "Apenas administradores podem gerar novas senhas")
	}

	target, err := s.userRepo.GetUserByID(targetUserID)
	if err != nil {
		return "", NewUserAuthError(err, apiErrors.ErrDatabaseOperation, targetUserID, "Erro ao consultar usuário no banco de dados")
	}
	if target == nil {
		return "", NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, targetUserID, "Usuário alvo não encontrado")
	}

	plain, err := randomPassword(generatedPasswordLen)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar a senha")
	}
	hash, err := hashPassword(plain)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao processar a senha")
	}

	target.PasswordHash = hash
	if err := s.userRepo.UpdateUser(target); err != nil {
		return "", NewUserAuthError(err, apiErrors.ErrDatabaseOperation, targetUserID, "Erro ao atualizar a senha")
	}

	return plain, nil
}

// randomPassword sorteia uma senha que satisfaz a política de senhas. O
// sorteio é uniforme sobre o alfabeto completo e repetido até sair uma senha
// com as quatro classes; com 12 caracteres quase sempre basta a primeira
// tentativa.
func randomPassword(length int) (string, error) {
	if length < minPasswordLen {
		length = generatedPasswordLen
	}

	alphabet := lowerChars + upperChars + digitChars + specialChars

	for attempts := 0; attempts < 32; attempts++ {
		password := make([]byte, length)
		for i := range password {
			c, err := randomFrom(alphabet)
			if err != nil {
				return "", err
			}
			password[i] = c
		}

		if meetsPasswordPolicy(string(password)) {
			return string(password), nil
		}
	}

	return "", errors.New("não foi possível sortear uma senha dentro da política")
}

// meetsPasswordPolicy aplica as mesmas regras de ValidatePasswordStrength sem
// materializar mensagens de erro
func meetsPasswordPolicy(password string) bool {
	if len(password) < minPasswordLen {
		return false
	}
	for _, rule := range passwordRules {
		if !strings.ContainsAny(password, rule.chars) {
			return false
		}
	}
	return true
}

// randomFrom devolve um caractere do conjunto escolhido por crypto/rand
func randomFrom(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
