package util

const (
	// AccessTokenCookie 登录后下发的 http-only cookie 名称
	AccessTokenCookie = "access_token"
	// ContextUserKey gin.Context 中保存 JWT Claims 的键
	ContextUserKey = "user"
	// RequestIDHeader 请求追踪 ID
	RequestIDHeader = "X-Request-ID"
)
