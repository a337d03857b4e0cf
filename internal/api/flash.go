package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/session"
)

const flashCookieName = "flash"

// FlashStore keeps one-shot messages in a signed cookie until the next page
// render reads them.
type FlashStore struct {
	signer *session.FlashSigner
}

// NewFlashStore wraps signer.
func NewFlashStore(signer *session.FlashSigner) *FlashStore {
	return &FlashStore{signer: signer}
}

// Add 覆盖写入待显示的消息。
func (s *FlashStore) Add(c *gin.Context, messages ...string) error {
	token, err := s.signer.Sign(messages)
	if err != nil {
		return err
	}
	setFlashCookie(c, token, int(s.signer.TTL().Seconds()))
	return nil
}

// Pop 读取并清除消息；签名无效或过期的 cookie 视为没有消息。
func (s *FlashStore) Pop(c *gin.Context) []string {
	token, err := c.Cookie(flashCookieName)
	if err != nil || token == "" {
		return nil
	}
	setFlashCookie(c, "", -1)

	messages, err := s.signer.Verify(token)
	if err != nil {
		middleware.LoggerFromContext(c).Debug("discard flash cookie", "error", err)
		return nil
	}
	return messages
}

func setFlashCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   c.Request.TLS != nil,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
