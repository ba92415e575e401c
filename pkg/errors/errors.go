package errors

import (
	"errors"
	"fmt"
)

// Kind 错误分类（封闭枚举，展示层按此决定状态码与文案）
type Kind int

const (
	// KindValidation 输入校验失败，错误信息可直接显示在表单字段旁
	KindValidation Kind = iota + 1
	// KindDependency 存在关联数据导致操作被阻止
	KindDependency
	// KindNotFound 目标记录不存在
	KindNotFound
	// KindRemote 远端数据服务调用失败
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDependency:
		return "dependency"
	case KindNotFound:
		return "not_found"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// ── 哨兵错误 ──

var (
	ErrMissingBatch  = errors.New("batch is required")
	ErrDuplicateName = errors.New("name already exists")
	ErrInvalid       = errors.New("invalid input")
	ErrHasDependents = errors.New("record has dependents")
	ErrDefaultStream = errors.New("default stream cannot be deleted")
	ErrNotFound      = errors.New("record not found")
	ErrRemote        = errors.New("remote data service failed")
)

// Error 业务错误，携带分类、字段与面向用户的提示
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == KindRemote && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As 穿透
func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindRemote:
		return ErrRemote
	}
	return nil
}

// Is 让同类别的 *Error 与对应哨兵匹配
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

// ── 构造函数 ──

// MissingBatch 学员缺少批次
func MissingBatch() *Error {
	return &Error{
		Kind:    KindValidation,
		Field:   "batch",
		Message: "Batch is required. Please select a batch for this intern.",
		Err:     ErrMissingBatch,
	}
}

// DuplicateName 名称重复（不区分大小写）
func DuplicateName(field, entity string) *Error {
	return &Error{
		Kind:    KindValidation,
		Field:   field,
		Message: fmt.Sprintf("A %s with this %s already exists", entity, field),
		Err:     ErrDuplicateName,
	}
}

// HasDependents 仍有学员引用，禁止删除
func HasDependents(entity string) *Error {
	return &Error{
		Kind:    KindDependency,
		Message: fmt.Sprintf("Cannot delete %s with interns. Archive it instead.", entity),
		Err:     ErrHasDependents,
	}
}

// DefaultStream 默认方向只能归档
func DefaultStream(name string) *Error {
	return &Error{
		Kind:    KindDependency,
		Message: fmt.Sprintf("Stream %q is a default stream and cannot be deleted. Archive it instead.", name),
		Err:     ErrDefaultStream,
	}
}

// Invalid 通用字段校验失败
func Invalid(field, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Field:   field,
		Message: message,
		Err:     ErrInvalid,
	}
}

// NotFound 记录不存在
func NotFound(entity string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", entity),
	}
}

// Remote 包装远端调用失败，保留原始错误供日志使用
func Remote(op string, err error) *Error {
	return &Error{
		Kind:    KindRemote,
		Message: fmt.Sprintf("%s failed", op),
		Err:     err,
	}
}

// KindOf 提取错误分类；非业务错误视为远端失败
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRemote
}

// As 是 errors.As 的便捷封装
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
