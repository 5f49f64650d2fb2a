package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 使用场景：
//   - Store 错误：NOT_FOUND, UNAVAILABLE
//   - Inventory 错误：NOT_FOUND（公司/门店/车辆/用户不存在）, INVALID_INPUT（归属关系不匹配）
//   - Similarity 错误：PRECONDITION_FAILED（缺少目标车辆）
//   - Pipeline 错误：INVALID_INPUT（相似车辆 Pipeline 配置不合法）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "inventory", "similarity"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 让 errors.Is 按 Module + Code 比较，Message 不参与匹配。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Module == t.Module && e.Code == t.Code
}

// GetDomainError 获取错误链中的 DomainError，如果不存在则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound           = "NOT_FOUND"           // 资源不存在
	ErrorCodeUnavailable        = "UNAVAILABLE"         // 服务不可用
	ErrorCodeInvalidInput       = "INVALID_INPUT"       // 输入无效
	ErrorCodePreconditionFailed = "PRECONDITION_FAILED" // 前置条件不满足，不可重试
)

// 模块名称常量
const (
	ModuleStore      = "store"
	ModuleInventory  = "inventory"
	ModuleSimilarity = "similarity"
	ModulePipeline   = "pipeline"
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool { return hasCode(err, ErrorCodeUnavailable) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsPreconditionFailed 检查错误是否为 PRECONDITION_FAILED
func IsPreconditionFailed(err error) bool { return hasCode(err, ErrorCodePreconditionFailed) }
