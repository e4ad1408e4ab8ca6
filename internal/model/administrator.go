package model

// Administrator is a user allowed to log in. Email is the login name.
type Administrator struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"perfil" db:"role"`
}

// LoginRequest is the body of POST /administradores/login.
type LoginRequest struct {
	Email    string `json:"email" example:"adm@teste.com"`
	Password string `json:"senha" example:"123456"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Email string `json:"email"`
	Role  Role   `json:"perfil"`
	Token string `json:"token"`
}

// AdministratorRequest is the body of POST /administradores.
// Role is a pointer so that an omitted profile can be told apart from an
// unknown one.
type AdministratorRequest struct {
	Email    string  `json:"email" example:"editor@teste.com"`
	Password string  `json:"senha" example:"s3nha"`
	Role     *string `json:"perfil" example:"Editor"`
}

// AdministratorView is the public shape of an administrator. The password
// hash is never part of it.
type AdministratorView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"perfil"`
}

func (a *Administrator) View() AdministratorView {
	return AdministratorView{ID: a.ID, Email: a.Email, Role: a.Role}
}

// TokenClaims is the verified identity attached to an authenticated request.
type TokenClaims struct {
	Email string
	Role  Role
}
