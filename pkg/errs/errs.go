// Package errs 审核记录相关的错误分类, 每个错误都带上目标实体与主键
package errs

import (
	"errors"
	"fmt"
)

// 错误种类, 供 errors.Is 判断
var (
	ErrDuplicateSerial   = errors.New("duplicate serial")
	ErrDuplicatePrompt   = errors.New("duplicate prompt")
	ErrForeignKey        = errors.New("unknown serial")
	ErrNotFound          = errors.New("not found")
	ErrRatingRange       = errors.New("rating out of range")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBusy              = errors.New("resource busy")
	ErrStore             = errors.New("record store failure")
	ErrBlob              = errors.New("blob store failure")
	ErrUnauthorized      = errors.New("user not known or password incorrect")
)

// DuplicateSerialError 序列号已存在
type DuplicateSerialError struct {
	Sno int64
}

func (e *DuplicateSerialError) Error() string {
	return fmt.Sprintf("Serial No. %d already exists", e.Sno)
}

func (e *DuplicateSerialError) Is(target error) bool { return target == ErrDuplicateSerial }

// DuplicatePromptError 同一张图下 prompt 文本重复
type DuplicatePromptError struct {
	Sno  int64
	Text string
}

func (e *DuplicatePromptError) Error() string {
	return fmt.Sprintf("Prompt %q already exists for Serial No. %d", e.Text, e.Sno)
}

func (e *DuplicatePromptError) Is(target error) bool { return target == ErrDuplicatePrompt }

// ForeignKeyError prompt 引用了不存在的图片
type ForeignKeyError struct {
	Sno int64
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("Serial No. %d does not exist, upload an image first", e.Sno)
}

func (e *ForeignKeyError) Is(target error) bool { return target == ErrForeignKey }

// NotFoundError 更新/删除目标不存在
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ImageNotFound 图片记录不存在
func ImageNotFound(sno int64) *NotFoundError {
	return &NotFoundError{Entity: "Serial No.", Key: fmt.Sprint(sno)}
}

// PromptNotFound prompt 记录不存在
func PromptNotFound(id int64) *NotFoundError {
	return &NotFoundError{Entity: "Prompt", Key: fmt.Sprint(id)}
}

// PromptTextNotFound 按 (sno, text) 定位的 prompt 不存在
func PromptTextNotFound(sno int64, text string) *NotFoundError {
	return &NotFoundError{Entity: "Prompt", Key: fmt.Sprintf("%q for Serial No. %d", text, sno)}
}

// RatingRangeError 评分越界
type RatingRangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RatingRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RatingRangeError) Is(target error) bool { return target == ErrRatingRange }

// ValidationError 入参校验失败
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid 构造 ValidationError
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError 状态机不允许的迁移
type InvalidTransitionError struct {
	Sno  int64
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Serial No. %d cannot move from %s to %s", e.Sno, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// BusyError 同一序列号正被其他请求修改
type BusyError struct {
	Sno int64
}

func (e *BusyError) Error() string {
	if e.Sno <= 0 {
		return "serial number allocation in progress, retry shortly"
	}
	return fmt.Sprintf("Serial No. %d is being modified, retry shortly", e.Sno)
}

func (e *BusyError) Is(target error) bool { return target == ErrBusy }

// StoreError 数据库连接或驱动层错误
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// Store 包装数据库错误, 已分类的错误原样返回
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// BlobError 对象存储错误
type BlobError struct {
	Op       string
	Path     string
	NotFound bool
	Err      error
}

func (e *BlobError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("blob: %s %s: object not found", e.Op, e.Path)
	}
	return fmt.Sprintf("blob: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *BlobError) Unwrap() error { return e.Err }

func (e *BlobError) Is(target error) bool { return target == ErrBlob }

// Blob 包装对象存储错误
func Blob(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var be *BlobError
	if errors.As(err, &be) {
		return err
	}
	return &BlobError{Op: op, Path: path, Err: err}
}

// BlobNotFound 对象不存在
func BlobNotFound(op, path string) *BlobError {
	return &BlobError{Op: op, Path: path, NotFound: true}
}

// IsBlobNotFound 判断对象是否不存在
func IsBlobNotFound(err error) bool {
	var be *BlobError
	return errors.As(err, &be) && be.NotFound
}

// Classified 是否已属于上面的某一类
func Classified(err error) bool {
	for _, kind := range []error{
		ErrDuplicateSerial, ErrDuplicatePrompt, ErrForeignKey, ErrNotFound,
		ErrRatingRange, ErrValidation, ErrInvalidTransition, ErrBusy,
		ErrStore, ErrBlob, ErrUnauthorized,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
