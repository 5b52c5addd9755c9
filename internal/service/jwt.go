package service

import "github.com/golang-jwt/jwt/v5"

// UserJWTClaims is the bearer token payload for storefront users.
// Token issuance is external to this service; the middleware only
// validates.
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AdminJWTClaims is the bearer token payload for dashboard operators.
type AdminJWTClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
