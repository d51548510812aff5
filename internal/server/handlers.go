package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ytapi/internal/model"
)

// Client-facing error messages. Details only go to the log.
const (
	msgMissingURL   = "Missing URL parameter"
	msgInfoFailed   = "Failed to fetch video info. Check the URL and try again."
	msgDownloadFail = "Download failed. Please try again."
)

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
	FFmpeg bool   `json:"ffmpeg"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status: "ok",
		FFmpeg: s.svc.Capabilities().FFmpeg,
	})
}

func (s *Server) info(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgMissingURL})
	}
	info, err := s.svc.Info(c.Request().Context(), url)
	if err != nil {
		s.logger.Error("info failed", "url", url, "request_id", requestID(c), "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInfoFailed})
	}
	return c.JSON(http.StatusOK, info)
}

func (s *Server) download(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgMissingURL})
	}
	req := model.DownloadRequest{
		URL:     url,
		Type:    model.ParseMediaType(c.QueryParam("type")),
		Quality: c.QueryParam("quality"),
	}

	// The request context reaches the extractor, so a client that goes away
	// stops the download.
	d, err := s.svc.Prepare(c.Request().Context(), req)
	if err != nil {
		s.logger.Error("download failed", "url", url, "request_id", requestID(c), "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgDownloadFail})
	}
	defer d.Close()

	h := c.Response().Header()
	h.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", d.Filename))
	h.Set(echo.HeaderContentType, d.ContentType)
	h.Set(echo.HeaderContentLength, strconv.FormatInt(d.Size, 10))
	c.Response().WriteHeader(http.StatusOK)

	if _, err := d.WriteTo(c.Response()); err != nil {
		// Headers are gone; the client sees a short body.
		d.Fail(err)
	}
	return nil
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
