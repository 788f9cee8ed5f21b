package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/brieflyhq/briefly/internal/adapter/outbound/api"
	"github.com/brieflyhq/briefly/internal/adapter/outbound/history"
	"github.com/brieflyhq/briefly/internal/domain/summary"
)

// DefaultCacheTTL is how long a text summary is served from cache.
const DefaultCacheTTL = 5 * time.Minute

// SummarizeAPI is the slice of the backend client the summarize service needs.
type SummarizeAPI interface {
	SummarizeText(ctx context.Context, text string, mode summary.Mode, length summary.Length) (*summary.Result, error)
	SummarizeFile(ctx context.Context, filename string, file io.Reader, mode summary.Mode, length summary.Length) (*summary.Result, error)
}

// SessionInvalidator drops the current session. Wired to the state machine
// when the clear-on-reject policy is enabled.
type SessionInvalidator interface {
	Invalidate()
}

// SummarizeService runs summarization calls, caches repeated text requests,
// and appends completed summaries to the local history log.
type SummarizeService struct {
	client        SummarizeAPI
	history       *history.Store
	sessions      SessionInvalidator
	clearOnReject bool
	cacheTTL      time.Duration
	cache         sync.Map // uint64 -> *cacheEntry
	logger        *slog.Logger
}

// cacheEntry is a cached text summary with expiry.
type cacheEntry struct {
	result    summary.Result
	expiresAt time.Time
}

// SummarizeConfig configures the summarize service.
type SummarizeConfig struct {
	// CacheTTL is the text-summary cache lifetime. Default: 5 minutes.
	// Zero or negative disables caching.
	CacheTTL time.Duration
	// ClearOnReject clears the session when the server rejects the token.
	ClearOnReject bool
}

// NewSummarizeService creates a summarize service. The history store and
// invalidator may be nil; the corresponding behavior is then skipped.
func NewSummarizeService(client SummarizeAPI, hist *history.Store, sessions SessionInvalidator, cfg SummarizeConfig, logger *slog.Logger) *SummarizeService {
	return &SummarizeService{
		client:        client,
		history:       hist,
		sessions:      sessions,
		clearOnReject: cfg.ClearOnReject,
		cacheTTL:      cfg.CacheTTL,
		logger:        logger,
	}
}

// Text summarizes the given text. Repeated requests with the same text,
// mode, and length are served from cache within the TTL.
func (s *SummarizeService) Text(ctx context.Context, text string, mode summary.Mode, length summary.Length) (*summary.Result, error) {
	key := cacheKey(text, mode, length)
	if s.cacheTTL > 0 {
		if val, ok := s.cache.Load(key); ok {
			entry := val.(*cacheEntry)
			if time.Now().Before(entry.expiresAt) {
				s.logger.Debug("text summary served from cache")
				result := entry.result
				return &result, nil
			}
			s.cache.Delete(key)
		}
	}

	result, err := s.client.SummarizeText(ctx, text, mode, length)
	if err != nil {
		s.handleAuthRejected(err)
		return nil, err
	}

	if s.cacheTTL > 0 {
		s.cache.Store(key, &cacheEntry{result: *result, expiresAt: time.Now().Add(s.cacheTTL)})
	}
	s.record(ctx, "text", mode, length, result)
	return result, nil
}

// File summarizes an uploaded document. File summaries are not cached.
func (s *SummarizeService) File(ctx context.Context, filename string, file io.Reader, mode summary.Mode, length summary.Length) (*summary.Result, error) {
	result, err := s.client.SummarizeFile(ctx, filename, file, mode, length)
	if err != nil {
		s.handleAuthRejected(err)
		return nil, err
	}
	s.record(ctx, filename, mode, length, result)
	return result, nil
}

// handleAuthRejected applies the clear-on-reject policy: a 401/403 from the
// server means the token is no longer good, and the session is optionally
// dropped so the next protected call fails fast instead of retrying a dead
// credential.
func (s *SummarizeService) handleAuthRejected(err error) {
	if !errors.Is(err, api.ErrAuthRejected) {
		return
	}
	s.logger.Info("server rejected token")
	if s.clearOnReject && s.sessions != nil {
		s.sessions.Invalidate()
		s.logger.Info("session cleared after rejection")
	}
}

// record appends the summary to the local history log, best effort.
func (s *SummarizeService) record(ctx context.Context, source string, mode summary.Mode, length summary.Length, result *summary.Result) {
	if s.history == nil {
		return
	}
	err := s.history.Append(ctx, history.Entry{
		Source:        source,
		Mode:          mode.Wire(),
		Length:        length.Wire(),
		Summary:       result.Summary,
		SentenceCount: result.SentenceCount,
		WordCount:     result.WordCount,
	})
	if err != nil {
		s.logger.Warn("failed to record summary in local history", "error", err)
	}
}

// cacheKey hashes the request parameters into a cache key.
func cacheKey(text string, mode summary.Mode, length summary.Length) uint64 {
	h := xxhash.New()
	_, _ = io.WriteString(h, fmt.Sprintf("%s|%s|", mode.Wire(), length.Wire()))
	_, _ = io.WriteString(h, text)
	return h.Sum64()
}
