package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error 携带 HTTP 状态码的业务错误。
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New 创建一个带状态码的错误。
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap 在已有错误外再包一层业务描述。
func Wrap(err error, code int, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// InvalidArg 表示某个请求参数不合法。
func InvalidArg(name string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: fmt.Sprintf("invalid argument: %s", name)}
}

// NotFound 表示资源不存在。
func NotFound(name string) *Error {
	return &Error{Code: http.StatusNotFound, Message: fmt.Sprintf("not found: %s", name)}
}

// ErrNoMessages 数据包里没有任何消息。
var ErrNoMessages = New(http.StatusBadRequest, "chat data contains no messages")

// OpenFileFailed 数据文件无法打开。
func OpenFileFailed(path string, err error) *Error {
	return Wrap(err, http.StatusNotFound, fmt.Sprintf("open data file %s", path))
}

// ParseDataFailed 数据文件内容不合法。
func ParseDataFailed(path string, err error) *Error {
	return Wrap(err, http.StatusBadRequest, fmt.Sprintf("parse data file %s", path))
}

// HTTPStatus 返回错误对应的 HTTP 状态码，未知错误按 500 处理。
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Code != 0 {
		return e.Code
	}
	return http.StatusInternalServerError
}
