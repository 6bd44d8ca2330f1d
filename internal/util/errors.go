package util

import "errors"

var (
	ErrTestNotFound        = errors.New("test not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category is referenced by tests")
	ErrCategoryNameTaken   = errors.New("category name already exists")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUserNameTaken       = errors.New("该用户名已被注册")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserBlocked         = errors.New("user is blocked")
	ErrCannotModifySelf    = errors.New("cannot block or delete your own account")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrBlankName           = errors.New("name must not be blank")
)
