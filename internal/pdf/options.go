// Package pdf converts rendered résumé documents into PDF bytes.
package pdf

import (
	"context"
	"errors"
	"strconv"
)

// ErrUnavailable 表示未配置任何服务端转换器，调用方应回退到浏览器打印。
var ErrUnavailable = errors.New("pdf converter not configured")

// Converter turns a standalone HTML document into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
	Name() string
}

// PageOptions 描述固定的页面参数。
type PageOptions struct {
	PageSize string
	Encoding string
	MarginMM float64
}

// DefaultPageOptions is A4, UTF-8, 12mm margins on every side.
func DefaultPageOptions() PageOptions {
	return PageOptions{
		PageSize: "A4",
		Encoding: "UTF-8",
		MarginMM: 12,
	}
}

func (o PageOptions) marginFlag() string {
	return strconv.FormatFloat(o.MarginMM, 'f', -1, 64) + "mm"
}

func (o PageOptions) marginInches() float64 {
	return o.MarginMM / 25.4
}
