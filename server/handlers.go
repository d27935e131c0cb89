package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/fetch"
	"github.com/ytfetch-cli/ytfetch/media"
)

const (
	HeaderMode   = "X-Mode"
	HeaderCookie = "X-Youtube-Cookie"
	modeInfo     = "info"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error       string   `json:"error" jsonschema:"description=Short error category."`
	Detail      string   `json:"detail,omitempty" jsonschema:"description=Underlying cause of a failed retrieval."`
	Suggestions []string `json:"suggestions,omitempty" jsonschema:"description=Closest available format labels. Present on unavailable formats."`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": constant.Version})
}

func request(c *gin.Context) media.Request {
	cookie := c.Query("cookie")
	if cookie == "" {
		cookie = c.GetHeader(HeaderCookie)
	}

	return media.Request{
		URL:    c.Query("url"),
		Token:  c.Query("format"),
		Cookie: cookie,
		Range:  c.GetHeader("Range"),
	}
}

func missingURL(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: "Missing url"})
}

func (s *Server) handleDownload(c *gin.Context) {
	if c.Query("mode") == modeInfo {
		s.handleInfo(c)
		return
	}

	req := request(c)
	result, err := s.service.Retrieve(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Content-Disposition", result.Disposition())

	if result.Status == http.StatusFound {
		c.Redirect(http.StatusFound, result.Location)
		return
	}

	defer result.Body.Close()

	extra := map[string]string{}
	if result.ContentRange != "" {
		extra["Content-Range"] = result.ContentRange
	}

	c.DataFromReader(result.Status, result.ContentLength.OrElse(-1), result.ContentType, result.Body, extra)
}

func (s *Server) handleInfo(c *gin.Context) {
	info, err := s.service.Info(c.Request.Context(), c.Query("url"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleProbe(c *gin.Context) {
	decision, _, err := s.service.Plan(c.Request.Context(), request(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	if !decision.Available() {
		c.JSON(http.StatusUnprocessableEntity, ErrorBody{Error: "Format unavailable"})
		return
	}

	c.Header(HeaderMode, string(decision.Mode))
	c.Status(http.StatusOK)
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		failed      *fetch.FailedError
		unavailable *fetch.UnavailableError
	)

	switch {
	case errors.Is(err, fetch.ErrMissingURL):
		missingURL(c)
	case errors.As(err, &unavailable):
		suggestions := unavailable.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Format unavailable", "suggestions": suggestions})
	case errors.Is(err, fetch.ErrFormatUnavailable):
		c.JSON(http.StatusUnprocessableEntity, ErrorBody{Error: "Format unavailable"})
	case errors.As(err, &failed):
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: failed.Kind, Detail: failed.Detail})
	case c.Request.Context().Err() != nil:
		// The client is gone; nobody reads a body.
		c.Abort()
	default:
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: "Internal error", Detail: err.Error()})
	}
}
