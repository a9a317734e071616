package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-tours/models"
)

const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "passwordConfirm"
	FieldRole            = "role"
)

const minPasswordLength = 8

var allowedRoles = []models.Role{
	models.RoleUser,
	models.RoleGuide,
	models.RoleLeadGuide,
	models.RoleAdmin,
}

type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(ctx, value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(ctx, *value, fields...)

	case models.UpdatePasswordRequest:
		return v.validatePasswordChange(value)
	case *models.UpdatePasswordRequest:
		return v.validatePasswordChange(*value)

	case models.UserUpdate:
		return v.validateUserUpdate(value)
	case *models.UserUpdate:
		return v.validateUserUpdate(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignup(_ context.Context, req models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword, FieldPasswordConfirm}
	}

	var p problems
	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(req.Name) == "" {
				p.add(ErrUserNameRequired)
			}
		case FieldEmail:
			if err := checkEmail(req.Email); err != nil {
				p.add(err)
			}
		case FieldPassword:
			if err := checkPassword(req.Password); err != nil {
				p.add(err)
			}
		case FieldPasswordConfirm:
			if err := checkPasswordConfirm(req.Password, req.PasswordConfirm); err != nil {
				p.add(err)
			}
		default:
			return ErrUnknownField
		}
	}

	return p.err()
}

func (v *UserValidator) validatePasswordChange(req models.UpdatePasswordRequest) error {
	var p problems
	if err := checkPassword(req.Password); err != nil {
		p.add(err)
	}
	if err := checkPasswordConfirm(req.Password, req.PasswordConfirm); err != nil {
		p.add(err)
	}
	return p.err()
}

func (v *UserValidator) validateUserUpdate(u models.UserUpdate) error {
	if u.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	var p problems
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		p.add(ErrUserNameRequired)
	}
	if u.Email != nil {
		if err := checkEmail(*u.Email); err != nil {
			p.add(err)
		}
	}
	if u.Role != nil && !isAllowedRole(*u.Role) {
		p.add(ErrUserRoleInvalid)
	}
	return p.err()
}

func checkEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrUserEmailRequired
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrUserEmailInvalid
	}
	return nil
}

func checkPassword(password string) error {
	switch {
	case password == "":
		return ErrUserPasswordRequired
	case len(password) < minPasswordLength:
		return ErrUserPasswordTooShort
	}
	return nil
}

func checkPasswordConfirm(password, confirm string) error {
	switch {
	case confirm == "":
		return ErrUserPasswordConfirmNeeded
	case confirm != password:
		return ErrUserPasswordsNotSame
	}
	return nil
}

func isAllowedRole(r models.Role) bool {
	for _, a := range allowedRoles {
		if r == a {
			return true
		}
	}
	return false
}
