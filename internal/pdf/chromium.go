package pdf

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// A4 纸张尺寸（英寸）。
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// Chromium renders HTML in a headless browser driven by go-rod.
type Chromium struct {
	bin     string
	options PageOptions
}

// NewChromium 创建无头浏览器转换器；bin 为空时自动查找本机 Chromium。
func NewChromium(bin string, options PageOptions) *Chromium {
	return &Chromium{bin: strings.TrimSpace(bin), options: options}
}

// Name implements Converter.
func (c *Chromium) Name() string { return "chromium" }

// Convert 使用 go-rod 在无头浏览器中渲染 HTML 并返回 PDF 字节。
func (c *Chromium) Convert(ctx context.Context, htmlContent string) ([]byte, error) {
	launch := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)

	if c.bin != "" {
		launch = launch.Bin(c.bin)
	} else if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	if err := page.SetDocumentContent(htmlContent); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	margin := c.options.marginInches()
	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      float64Ptr(a4WidthInches),
		PaperHeight:     float64Ptr(a4HeightInches),
		MarginTop:       float64Ptr(margin),
		MarginBottom:    float64Ptr(margin),
		MarginLeft:      float64Ptr(margin),
		MarginRight:     float64Ptr(margin),
	})
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	return data, nil
}

func float64Ptr(value float64) *float64 {
	return &value
}
