package errors

import "errors"

// 内部哨兵错误，不直接出现在 HTTP 响应里。
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator is not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidTokenType             = errors.New("invalid token type")
	ErrUserIDNotFound               = errors.New("user id not found in token claims")
)

// Is 转发标准库判定，调用方无需同时导入两个 errors 包。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// New 转发标准库构造。
func New(text string) error {
	return errors.New(text)
}
