package pdf

import (
	"resumeBuilder/internal/config"
)

// NewFromConfig 按配置选择转换器：优先 wkhtmltopdf，其次 Chromium。
// 两者都未配置时返回 nil，导出将回退到浏览器打印。
func NewFromConfig(cfg config.PDFConfig) (Converter, error) {
	options := DefaultPageOptions()
	switch {
	case cfg.WKHTMLToPDFPath != "":
		w, err := NewWKHTMLToPDF(cfg.WKHTMLToPDFPath, options)
		if err != nil {
			return nil, err
		}
		return w, nil
	case cfg.Chromium:
		return NewChromium(cfg.ChromiumPath, options), nil
	default:
		return nil, nil
	}
}
