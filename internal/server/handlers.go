// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/AleutianEnigma/internal/cipher"
	"github.com/AleutianAI/AleutianEnigma/pkg/enigma"
)

// Codes reported in ErrorResponse besides the cipher.ErrorCode values.
const (
	CodeInvalidRequest = "invalid_request"
	CodeRateLimited    = "rate_limited"
)

// =============================================================================
// Wire types
// =============================================================================

// TransformRequest is the body of POST /v1/transform and /v1/roundtrip.
type TransformRequest struct {
	Text      string   `json:"text" binding:"max=65536"`
	Rotors    []string `json:"rotors"`
	Position  []int    `json:"position" binding:"required,len=3"`
	Plugboard string   `json:"plugboard" binding:"max=64"`
}

func (r TransformRequest) toCipher() cipher.Request {
	var pos enigma.Position
	copy(pos[:], r.Position)
	return cipher.Request{
		Text:      r.Text,
		Rotors:    r.Rotors,
		Position:  pos,
		Plugboard: r.Plugboard,
	}
}

// TransformResponse is one enciphered text.
type TransformResponse struct {
	SessionID     string          `json:"session_id"`
	Output        string          `json:"output"`
	Enciphered    int             `json:"enciphered"`
	PassThrough   int             `json:"pass_through"`
	Rotors        []string        `json:"rotors"`
	FinalPosition enigma.Position `json:"final_position"`
}

func newTransformResponse(res *cipher.Result) TransformResponse {
	return TransformResponse{
		SessionID:     res.SessionID,
		Output:        res.Output,
		Enciphered:    res.Enciphered,
		PassThrough:   res.PassThrough,
		Rotors:        res.Rotors,
		FinalPosition: res.FinalPosition,
	}
}

// RoundTripResponse pairs an encryption with its decryption.
type RoundTripResponse struct {
	Encrypted TransformResponse `json:"encrypted"`
	Decrypted TransformResponse `json:"decrypted"`
	Match     bool              `json:"match"`
}

// RotorInfo describes one catalog rotor.
type RotorInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Wiring string `json:"wiring"`
}

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// =============================================================================
// Handlers
// =============================================================================

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListRotors returns the stock rotor catalog.
func ListRotors(c *gin.Context) {
	catalog := enigma.Catalog()
	out := make([]RotorInfo, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, RotorInfo{ID: r.ID, Name: r.Name, Wiring: r.Wiring()})
	}
	c.JSON(http.StatusOK, gin.H{"rotors": out})
}

// HandleTransform enciphers (or deciphers, the operation is reciprocal) one text.
func HandleTransform(svc *cipher.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransformRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ctx := c.Request.Context()
		res, err := svc.Transform(ctx, req.toCipher())
		if err != nil {
			writeCipherError(c, err)
			return
		}
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("enigma.session_id", res.SessionID))

		c.JSON(http.StatusOK, newTransformResponse(res))
	}
}

// HandleRoundTrip encrypts the text and decrypts the result with the same settings.
func HandleRoundTrip(svc *cipher.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransformRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		res, err := svc.RoundTrip(c.Request.Context(), req.toCipher())
		if err != nil {
			writeCipherError(c, err)
			return
		}

		c.JSON(http.StatusOK, RoundTripResponse{
			Encrypted: newTransformResponse(res.Encrypted),
			Decrypted: newTransformResponse(res.Decrypted),
			Match:     res.Match,
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: err.Error(),
		Code:  CodeInvalidRequest,
	})
}

func writeCipherError(c *gin.Context, err error) {
	if cipher.IsConfigError(err) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  string(cipher.Code(err)),
		})
		return
	}
	_ = c.Error(err)
	msg := "internal error"
	if c.Request.Context().Err() != nil {
		msg = "request canceled"
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error: msg,
		Code:  string(cipher.CodeInternal),
	})
}
