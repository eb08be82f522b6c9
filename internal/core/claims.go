package core

import "github.com/golang-jwt/jwt/v4"

// SessionClaims 瀏覽器 session token 內容；Subject 為使用者 ObjectID（hex），ID 為 jti
type SessionClaims struct {
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
