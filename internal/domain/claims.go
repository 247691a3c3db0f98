package domain

import "github.com/golang-jwt/jwt/v5"

// Papéis aceitos nos tokens de operador
const (
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

type Claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}
