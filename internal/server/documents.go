package server

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/tartampluch/go-lifecalendar/internal/calendar"
	"github.com/tartampluch/go-lifecalendar/internal/calendar/raster"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/store"
)

// document returns the cached rendering for key, producing it on a miss.
func (s *Server) document(c *store.Calculation, format string, page int, render func() ([]byte, error)) (*cacheItem, error) {
	key := fmt.Sprintf("%s|%s|%d", c.ID, format, page)
	if item, ok := s.docs.get(key); ok {
		return item, nil
	}

	data, err := render()
	if err != nil {
		return nil, err
	}
	item := s.docs.add(key, newCacheItem(data, c.CreatedAt))

	slog.Debug(config.MsgDocRendered,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyID, c.ID,
		config.LogKeyFormat, format,
		config.LogKeySizeBytes, len(data),
	)
	return item, nil
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	c, err := s.repo.Get(r.Context(), mux.Vars(r)[config.PathVarID])
	if err != nil {
		writeFailure(w, err)
		return
	}
	item, err := s.document(c, config.FormatPDF, 0, func() ([]byte, error) {
		return calendar.GenerateDocument(c.DateOfBirth, c.DeathDate())
	})
	if err != nil {
		writeFailure(w, err)
		return
	}

	filename := config.DocumentPrefix + c.ShortID() + config.ExtPDF
	w.Header().Set(config.HeaderContentDisposition, fmt.Sprintf(config.FormatAttachment, filename))
	serveDocument(w, r, item, config.MimePDF)
}

func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	c, err := s.repo.Get(r.Context(), mux.Vars(r)[config.PathVarID])
	if err != nil {
		writeFailure(w, err)
		return
	}
	item, err := s.document(c, config.FormatICS, 0, func() ([]byte, error) {
		l, err := calendar.NewLayout(c.DateOfBirth, c.DeathDate())
		if err != nil {
			return nil, err
		}
		return calendar.ICS(l, c.CreatedAt)
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	serveDocument(w, r, item, config.MimeTextCalendar)
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	c, err := s.repo.Get(r.Context(), vars[config.PathVarID])
	if err != nil {
		writeFailure(w, err)
		return
	}
	page, err := strconv.Atoi(vars[config.PathVarPage])
	if err != nil {
		writeFailure(w, fmt.Errorf("%w: %v", errPageNotFound, err))
		return
	}

	item, err := s.document(c, config.FormatPNG, page, func() ([]byte, error) {
		l, err := calendar.NewLayout(c.DateOfBirth, c.DeathDate())
		if err != nil {
			return nil, err
		}
		sub, err := l.Page(page)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errPageNotFound, err)
		}
		surface, err := raster.New(sub.Geometry.Width, sub.Geometry.Height)
		if err != nil {
			return nil, err
		}
		return calendar.RenderBytes(sub, surface)
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	serveDocument(w, r, item, config.MimePNG)
}

// serveDocument writes item with conditional GET support.
func serveDocument(w http.ResponseWriter, r *http.Request, item *cacheItem, mime string) {
	w.Header().Set(config.HeaderContentType, mime)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
