package errors

import (
	"errors"
	"fmt"

	"tradebridge/pkg/errors/ecode"
)

// 携带错误码的error，response层通过DecodeErr还原出code和message

type codedError struct {
	code    int
	message string
	cause   error
}

func (e *codedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *codedError) Unwrap() error {
	return e.cause
}

// WithCode 创建一个带错误码的错误
func WithCode(code int, message string) error {
	if message == "" {
		message = ecode.Message(code)
	}
	return &codedError{code: code, message: message}
}

// WithCodef 格式化创建
func WithCodef(code int, format string, args ...interface{}) error {
	return &codedError{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误并附加错误码
func Wrap(err error, code int, message string) error {
	if err == nil {
		return nil
	}
	if message == "" {
		message = ecode.Message(code)
	}
	return &codedError{code: code, message: message, cause: err}
}

// DecodeErr 解析错误，返回错误码和提示信息
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Message(ecode.Success)
	}
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code, ce.message
	}
	return ecode.Unknown, err.Error()
}

// Code 只取错误码
func Code(err error) int {
	code, _ := DecodeErr(err)
	return code
}

// IsCode 判断错误是否携带指定错误码
func IsCode(err error, code int) bool {
	return Code(err) == code
}
