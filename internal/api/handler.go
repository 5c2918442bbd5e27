//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pgEdge/pgedge-secdata/internal/model"
	"github.com/pgEdge/pgedge-secdata/internal/secdata"
	"github.com/pgEdge/pgedge-secdata/internal/validation"
)

// Service is the part of the facade the HTTP surface depends on.
type Service interface {
	Execute(ctx context.Context, op secdata.Op, kind model.Kind, decode secdata.Decoder) (any, error)
	GetAllCounterparties(ctx context.Context) ([]model.Counterparty, error)
	ClearAll(ctx context.Context) error
	Status(ctx context.Context) (*secdata.Status, error)
	Mode() secdata.Mode
}

// Handler serves the security data endpoints.
type Handler struct {
	svc Service
}

// NewHandler creates a Handler over svc.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Health)
	r.GET("/readyz", h.Ready)

	v1 := r.Group("/api/v1")
	v1.GET("/status", h.Status)
	v1.GET("/counterparties", h.Counterparties)
	v1.DELETE("/records", h.Clear)
	v1.GET("/records/:kind", h.Get)
	v1.POST("/records/:kind", h.Add)
	v1.PATCH("/records/:kind", h.Update)
}

// Health reports process liveness.
func (h *Handler) Health(c *gin.Context) {
	Ok(c, gin.H{"status": "ok"})
}

// Ready reports whether a datastore is bound.
func (h *Handler) Ready(c *gin.Context) {
	mode := h.svc.Mode()
	if mode == secdata.ModeUninitialized {
		Error(c, http.StatusServiceUnavailable, secdata.ErrNotInitialized.Error(), nil)
		return
	}
	Ok(c, gin.H{"status": "ready", "mode": mode.String()})
}

// Status returns the bound mode and the row counts.
func (h *Handler) Status(c *gin.Context) {
	status, err := h.svc.Status(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	Ok(c, status)
}

// Get looks a record up by the natural key given as query parameters. A
// miss is answered with an empty object.
func (h *Handler) Get(c *gin.Context) {
	rec, err := h.svc.Execute(c.Request.Context(), secdata.OpGet, kindParam(c), queryDecoder(c))
	if err != nil {
		fail(c, err)
		return
	}
	if rec == nil {
		Ok(c, gin.H{})
		return
	}
	Ok(c, rec)
}

// Add creates a record from the JSON body.
func (h *Handler) Add(c *gin.Context) {
	if _, err := h.svc.Execute(c.Request.Context(), secdata.OpAdd, kindParam(c), bodyDecoder(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, apiResponse{Code: 0, Message: "created"})
}

// Update merges the JSON body into an existing record.
func (h *Handler) Update(c *gin.Context) {
	if _, err := h.svc.Execute(c.Request.Context(), secdata.OpUpdate, kindParam(c), bodyDecoder(c)); err != nil {
		fail(c, err)
		return
	}
	Ok(c, nil)
}

// Counterparties lists every counterparty.
func (h *Handler) Counterparties(c *gin.Context) {
	list, err := h.svc.GetAllCounterparties(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if list == nil {
		list = []model.Counterparty{}
	}
	Ok(c, list)
}

// Clear empties every table of the bound datastore.
func (h *Handler) Clear(c *gin.Context) {
	if err := h.svc.ClearAll(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	Ok(c, nil)
}

func kindParam(c *gin.Context) model.Kind {
	return model.Kind(c.Param("kind"))
}

// bodyDecoder fills an input from the JSON request body. Fields the input
// does not declare are rejected with a field-level error.
func bodyDecoder(c *gin.Context) secdata.Decoder {
	return func(input any) error {
		body := c.Request.Body
		if body == nil {
			body = http.NoBody
		}
		return strictDecode(body, input)
	}
}

// queryDecoder fills a key input from the query string. Only the first
// value of a repeated parameter is used.
func queryDecoder(c *gin.Context) secdata.Decoder {
	return func(input any) error {
		params := make(map[string]string)
		for name, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				params[name] = values[0]
			}
		}
		raw, err := json.Marshal(params)
		if err != nil {
			return &decodeError{err: err}
		}
		return strictDecode(bytes.NewReader(raw), input)
	}
}

// strictDecode passes field-level rejections through so they answer 400
// with the offending field named; other failures become a decodeError.
func strictDecode(r io.Reader, input any) error {
	err := validation.DecodeJSON(r, input)
	if err == nil || errors.Is(err, validation.ErrInvalidInput) {
		return err
	}
	return &decodeError{err: err}
}
