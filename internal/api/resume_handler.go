package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/enhance"
	"resumeBuilder/internal/pdf"
	"resumeBuilder/internal/render"
	"resumeBuilder/internal/resume"
)

const (
	formTitle    = "Create Resume"
	previewTitle = "Preview"

	flashSaved = "Resume saved."

	noticeNoConverter     = "Use browser Print -> Save as PDF."
	noticeConverterFailed = "Server couldn't generate PDF automatically. Use your browser Print -> Save as PDF."
)

var errInvalidResumeID = errors.New("invalid resume id")

// ResumeStore 是处理器依赖的持久化接口。
type ResumeStore interface {
	Create(ctx context.Context, record *database.Resume) error
	Get(ctx context.Context, id uint) (*database.Resume, error)
}

// ResumeHandler 负责表单、预览与下载页面。
type ResumeHandler struct {
	store    ResumeStore
	enhancer *enhance.Enhancer
	renderer *render.Renderer
	exporter *pdf.Exporter
	flashes  *FlashStore
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(
	store ResumeStore,
	enhancer *enhance.Enhancer,
	renderer *render.Renderer,
	exporter *pdf.Exporter,
	flashes *FlashStore,
) *ResumeHandler {
	return &ResumeHandler{
		store:    store,
		enhancer: enhancer,
		renderer: renderer,
		exporter: exporter,
		flashes:  flashes,
	}
}

// ShowForm renders an empty submission form.
func (h *ResumeHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, render.PageForm, h.formPage(c, resume.Submission{Template: string(resume.DefaultTemplate)}, nil))
}

// Submit 校验表单；校验失败时以 422 回显表单，成功则保存并重定向到预览页。
func (h *ResumeHandler) Submit(c *gin.Context) {
	logger := middleware.LoggerFromContext(c)

	var form resume.Submission
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		BadRequest(c, "invalid form submission")
		return
	}
	form.Normalize()

	if errs := resume.Validate(form); len(errs) > 0 {
		c.HTML(http.StatusUnprocessableEntity, render.PageForm, h.formPage(c, form, errs))
		return
	}

	fields := form.Fields()
	if form.WantsEnhancement() {
		h.enhancer.Apply(c.Request.Context(), &fields)
	}

	record := database.NewResume(fields)
	if err := h.store.Create(c.Request.Context(), record); err != nil {
		logger.Error("save resume failed", slog.Any("error", err))
		Internal(c, "failed to save resume")
		return
	}
	logger.Info("resume saved",
		slog.Uint64("resume_id", uint64(record.ID)),
		slog.String("template", record.Template),
		slog.Bool("enhanced", form.WantsEnhancement()),
	)

	if err := h.flashes.Add(c, flashSaved); err != nil {
		logger.Warn("set flash failed", slog.Any("error", err))
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/resume/%d", record.ID))
}

// Preview renders a stored résumé with its chosen layout.
func (h *ResumeHandler) Preview(c *gin.Context) {
	record, ok := h.loadResume(c)
	if !ok {
		return
	}

	page, err := h.previewPage(record, h.flashes.Pop(c))
	if err != nil {
		middleware.LoggerFromContext(c).Error("render preview failed", slog.Any("error", err))
		Internal(c, "failed to render resume")
		return
	}
	c.HTML(http.StatusOK, render.PagePreview, page)
}

// Download 导出 PDF；没有转换器或转换失败时返回带提示的预览页面。
func (h *ResumeHandler) Download(c *gin.Context) {
	logger := middleware.LoggerFromContext(c)

	record, ok := h.loadResume(c)
	if !ok {
		return
	}

	page, err := h.previewPage(record, h.flashes.Pop(c))
	if err != nil {
		logger.Error("render resume failed", slog.Any("error", err))
		Internal(c, "failed to render resume")
		return
	}

	result, err := h.exporter.Export(c.Request.Context(), record.ID, record.FullName, render.Document(page.Resume))
	if err != nil {
		notice := noticeConverterFailed
		if errors.Is(err, pdf.ErrUnavailable) {
			notice = noticeNoConverter
		} else {
			logger.Warn("pdf export failed, falling back to preview",
				slog.Uint64("resume_id", uint64(record.ID)),
				slog.Any("error", err),
			)
		}
		page.Flashes = append(page.Flashes, notice)
		c.HTML(http.StatusOK, render.PagePreview, page)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	c.Data(http.StatusOK, "application/pdf", result.Data)
}

// NotFound renders the 404 page for unmatched routes.
func (h *ResumeHandler) NotFound(c *gin.Context) {
	renderNotFound(c, h.flashes.Pop(c))
}

func (h *ResumeHandler) loadResume(c *gin.Context) (*database.Resume, bool) {
	record, err := h.getResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errInvalidResumeID), errors.Is(err, gorm.ErrRecordNotFound):
			renderNotFound(c, h.flashes.Pop(c))
		default:
			middleware.LoggerFromContext(c).Error("query resume failed", slog.Any("error", err))
			Internal(c, "failed to query resume")
		}
		return nil, false
	}
	return record, true
}

func (h *ResumeHandler) getResume(ctx context.Context, idParam string) (*database.Resume, error) {
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || id == 0 {
		return nil, errInvalidResumeID
	}
	return h.store.Get(ctx, uint(id))
}

// previewPage 预览页与下载回退页共用同一份渲染结果。
func (h *ResumeHandler) previewPage(record *database.Resume, flashes []string) (render.PreviewPage, error) {
	fields := record.Fields()
	fragment, err := h.renderer.Resume(fields)
	if err != nil {
		return render.PreviewPage{}, err
	}
	return render.PreviewPage{
		Title:   previewTitle,
		Flashes: flashes,
		ID:      record.ID,
		Record:  fields,
		Resume:  fragment,
	}, nil
}

func (h *ResumeHandler) formPage(c *gin.Context, form resume.Submission, errs []string) render.FormPage {
	return render.FormPage{
		Title:     formTitle,
		Flashes:   h.flashes.Pop(c),
		Errors:    errs,
		Form:      form,
		Templates: resume.Templates(),
		AIEnabled: h.enhancer.Enabled(),
	}
}
