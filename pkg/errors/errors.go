package errors

import "errors"

// 错误分类：业务错误均包装以下哨兵之一，调用方通过 errors.Is 判断类别。
var (
	// ErrInvalidArgument 字段校验失败，创建/更新均整体失败，不落库
	ErrInvalidArgument = errors.New("参数无效")
	// ErrNotFound 按标识访问的记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrOutOfRange 分页起始位置超出集合长度
	ErrOutOfRange = errors.New("页码超出范围")
)

// IsInvalidArgument 判断是否为参数错误
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsOutOfRange 判断是否为分页越界
func IsOutOfRange(err error) bool { return errors.Is(err, ErrOutOfRange) }
