package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/dashboard"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/dataset"
)

// Query defaults, matching the dashboard's input widgets.
const (
	DefaultCirculating = 19_700_000
	DefaultAmount      = 1000
)

// panelResponse wraps every panel payload.
type panelResponse struct {
	Source  dashboard.Origin `json:"source"`
	Warning string           `json:"warning,omitempty"`
	Data    any              `json:"data"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func respond[T any](c *gin.Context, r dashboard.Result[T]) {
	c.JSON(http.StatusOK, panelResponse{Source: r.Origin, Warning: r.Warning, Data: r.Value})
}

func respondStatic[T any](c *gin.Context, v T) {
	respond(c, dashboard.Static(v))
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownDataset), errors.Is(err, dashboard.ErrUnknownCorridor):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrNoData), errors.Is(err, dataset.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "request_id", c.GetString(ctxRequestID), "error", err)
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error(), RequestID: c.GetString(ctxRequestID)})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg, RequestID: c.GetString(ctxRequestID)})
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.cfg.Version})
}

func (s *Server) getOverview(c *gin.Context) {
	ov, err := s.panels.Overview()
	if err != nil {
		s.fail(c, err)
		return
	}
	respondStatic(c, ov)
}

// getLiveTransactions serves daily transaction counts. With ma=true the
// trailing moving average is returned instead of raw counts.
func (s *Server) getLiveTransactions(c *gin.Context) {
	ma, err := strconv.ParseBool(c.DefaultQuery("ma", "false"))
	if err != nil {
		badRequest(c, "ma must be a boolean")
		return
	}

	ctx := c.Request.Context()
	if ma {
		res, err := s.panels.TransactionCountsMA(ctx)
		if err != nil {
			s.fail(c, err)
			return
		}
		respond(c, res)
		return
	}
	res, err := s.panels.TransactionCounts(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	respond(c, res)
}

func (s *Server) getTransactionsComparison(c *gin.Context) {
	ts, err := s.panels.TransactionsComparison()
	if err != nil {
		s.fail(c, err)
		return
	}
	respondStatic(c, ts)
}

func (s *Server) getStablecoins(c *gin.Context) {
	res, err := s.panels.StablecoinCaps(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	respond(c, res)
}

func (s *Server) getIndexedAdoption(c *gin.Context) {
	points, err := s.panels.IndexedAdoption()
	if err != nil {
		s.fail(c, err)
		return
	}
	respondStatic(c, points)
}

func (s *Server) getSupply(c *gin.Context) {
	circ, err := strconv.ParseInt(c.DefaultQuery("circulating", strconv.Itoa(DefaultCirculating)), 10, 64)
	if err != nil {
		badRequest(c, "circulating must be an integer")
		return
	}
	stats, err := dashboard.Supply(circ)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondStatic(c, stats)
}

func (s *Server) getRemittance(c *gin.Context) {
	corridor := c.Query("corridor")
	if corridor == "" {
		badRequest(c, "corridor is required")
		return
	}
	amount, err := strconv.ParseFloat(c.DefaultQuery("amount", strconv.Itoa(DefaultAmount)), 64)
	if err != nil {
		badRequest(c, "amount must be a number")
		return
	}
	quote, err := s.panels.Remittance(corridor, amount)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondStatic(c, quote)
}

func (s *Server) listDatasets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"datasets": dataset.Catalog()})
}

func (s *Server) getDataset(c *gin.Context) {
	ds, err := s.panels.Dataset(c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondStatic(c, ds)
}
