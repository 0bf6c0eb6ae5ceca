// Package http serves the dashboard detection views
package http

import (
	"fmt"
	"net/http"
	"strings"

	"wildwatch/internal/modkit/httpkit"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/net/http/bind"
	"wildwatch/internal/services/detections/domain"
)

type handlers struct {
	q domain.QueryPort
}

// Register mounts the detection view routes
func Register(r httpkit.Router, q domain.QueryPort) {
	h := &handlers{q: q}

	httpkit.Get(r, "/stats-box", h.statsBox)
	httpkit.Get(r, "/overview", h.overview)
	httpkit.Get(r, "/breakdown", h.breakdown)
	httpkit.Get(r, "/data", h.data)
	httpkit.Get(r, "/list", h.list)
}

// SortParam is the JSON accepted by the list sort query parameter
type SortParam struct {
	Field string `json:"field" validate:"required" example:"createdAt"`
	Sort  string `json:"sort"  validate:"omitempty,oneof=asc desc" example:"desc"`
}

// failed keeps the store's error code but replaces the message with one fit for the dashboard
func failed(err error, msg string) error {
	return perr.Wrap(err, perr.CodeOf(err), msg)
}

// @Summary Dashboard stat boxes
// @Description Totals, average confidence, most detected animal and today's breakdown
// @Tags Detections
// @Produce json
// @Success 200 {object} domain.Totals
// @Router /api/detections/stats-box [get]
func (h *handlers) statsBox(r *http.Request) (any, error) {
	out, err := h.q.Totals(r.Context())
	if err != nil {
		return nil, failed(err, "Failed to fetch statistics")
	}
	return out, nil
}

// @Summary Monthly overview
// @Description Detections per month for the most recent months, oldest first
// @Tags Detections
// @Produce json
// @Success 200 {object} domain.Overview
// @Router /api/detections/overview [get]
func (h *handlers) overview(r *http.Request) (any, error) {
	out, err := h.q.Overview(r.Context())
	if err != nil {
		return nil, failed(err, "Failed to fetch overview data")
	}
	return out, nil
}

// @Summary Species breakdown
// @Tags Detections
// @Produce json
// @Success 200 {array} domain.BreakdownRow
// @Router /api/detections/breakdown [get]
func (h *handlers) breakdown(r *http.Request) (any, error) {
	out, err := h.q.Breakdown(r.Context())
	if err != nil {
		return nil, failed(err, "Failed to fetch breakdown data")
	}
	return out, nil
}

// @Summary All detections, newest first
// @Tags Detections
// @Produce json
// @Success 200 {array} domain.DataRow
// @Router /api/detections/data [get]
func (h *handlers) data(r *http.Request) (any, error) {
	out, err := h.q.Data(r.Context())
	if err != nil {
		return nil, failed(err, "Failed to fetch detection data")
	}
	return out, nil
}

// @Summary Paginated detection list
// @Tags Detections
// @Produce json
// @Param page     query int    false "1-based page"            default(1)
// @Param pageSize query int    false "page size, max 500"      default(20)
// @Param sort     query string false "JSON sort, e.g. {\"field\":\"createdAt\",\"sort\":\"desc\"}"
// @Param search   query string false "case-insensitive substring over id, class and time"
// @Success 200 {object} domain.ListPage
// @Router /api/detections/list [get]
func (h *handlers) list(r *http.Request) (any, error) {
	q, err := parseList(r)
	if err != nil {
		return nil, err
	}
	page, err := h.q.List(r.Context(), q)
	if err != nil {
		return nil, failed(err, "Failed to fetch detection list")
	}
	msg := fmt.Sprintf("Retrieved %d detections (page %d of %d)", len(page.Detections), page.Page, page.TotalPages)
	return httpkit.Message(msg, page), nil
}

func parseList(r *http.Request) (domain.ListQuery, error) {
	var q domain.ListQuery
	var err error
	if q.Page, err = bind.QueryInt(r, "page", 1); err != nil {
		return q, err
	}
	if q.PageSize, err = bind.QueryInt(r, "pageSize", 0); err != nil {
		return q, err
	}
	q.Search = bind.QueryString(r, "search")

	sp, ok, err := bind.QueryJSON[SortParam](r, "sort")
	switch {
	case err != nil:
		return q, err
	case ok:
		col, known := domain.SortColumn(sp.Field)
		if !known {
			return q, perr.WithField(perr.Validationf("cannot sort by %q", sp.Field), "sort")
		}
		q.Sort = domain.Sort{Column: col, Asc: strings.EqualFold(sp.Sort, "asc")}
	}
	return q, nil
}
