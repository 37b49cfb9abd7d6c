package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type newsletterContent struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

type publishNewsletterRequest struct {
	Title   string            `json:"title"`
	Content newsletterContent `json:"content"`
}

// publishNewsletter accepts a broadcast payload. Delivery to confirmed
// subscribers is not implemented.
func (s *Server) publishNewsletter(c echo.Context) error {
	var req publishNewsletterRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	return c.NoContent(http.StatusOK)
}
