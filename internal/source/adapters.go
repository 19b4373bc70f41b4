package source

import (
	"context"
	"net/url"

	"github.com/sells-group/intel-cli/internal/model"
)

// HTTPCompetitorSource adapts a JSON competitor-discovery endpoint to the
// CompetitorSource contract. The endpoint returns rows already shaped like
// model.RawCompetitor; provider-specific translation layers live outside
// this module.
type HTTPCompetitorSource struct {
	*HTTPBase
}

// NewHTTPCompetitorSource builds a competitor source over the shared
// transport.
func NewHTTPCompetitorSource(opts HTTPBaseOptions) *HTTPCompetitorSource {
	return &HTTPCompetitorSource{HTTPBase: NewHTTPBase(opts)}
}

// FindCompetitors queries /competitors?domain=... and returns raw rows.
func (s *HTTPCompetitorSource) FindCompetitors(ctx context.Context, domain string) ([]model.RawCompetitor, error) {
	var payload struct {
		Competitors []model.RawCompetitor `json:"competitors"`
	}
	path := "/competitors?domain=" + url.QueryEscape(domain)
	if err := s.GetJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Competitors, nil
}

// HTTPMetricsSource adapts a JSON metrics endpoint to the MetricsSource
// contract.
type HTTPMetricsSource struct {
	*HTTPBase
}

// NewHTTPMetricsSource builds a metrics source over the shared transport.
func NewHTTPMetricsSource(opts HTTPBaseOptions) *HTTPMetricsSource {
	return &HTTPMetricsSource{HTTPBase: NewHTTPBase(opts)}
}

// FetchSections queries /metrics?domain=... and returns whichever sections
// the provider covers.
func (s *HTTPMetricsSource) FetchSections(ctx context.Context, domain string) ([]model.PartialSection, error) {
	var payload struct {
		Sections []model.PartialSection `json:"sections"`
	}
	path := "/metrics?domain=" + url.QueryEscape(domain)
	if err := s.GetJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Sections, nil
}
