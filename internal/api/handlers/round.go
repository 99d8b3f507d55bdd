package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/puttputt/internal/auth"
	"github.com/playmatatu/puttputt/internal/logger"
	"github.com/playmatatu/puttputt/internal/models"
	"github.com/playmatatu/puttputt/internal/physics"
	"github.com/playmatatu/puttputt/internal/round"
)

// Rounds is the round manager as seen by the HTTP layer.
type Rounds interface {
	Start(ctx context.Context, courseID string, hole int, now time.Time) (round.Snapshot, error)
	Get(ctx context.Context, id string) (round.Snapshot, error)
	Hit(ctx context.Context, id string, v physics.Vec2, now time.Time) (round.Snapshot, error)
	Shots(ctx context.Context, id string) (models.Round, []models.Shot, error)
}

type startRoundRequest struct {
	Course string `json:"course" binding:"required"`
	Hole   int    `json:"hole" binding:"required,min=1"`
}

type hitRequest struct {
	VX *float64 `json:"vx" binding:"required"`
	VY *float64 `json:"vy" binding:"required"`
}

// StartRound places a ball on a tee and returns a token for driving it
func StartRound(rounds Rounds, issuer *auth.Issuer, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req startRoundRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		snap, err := rounds.Start(c.Request.Context(), req.Course, req.Hole, now)
		if err != nil {
			writeError(c, err)
			return
		}

		token, exp, err := issuer.Issue(snap.RoundID, now)
		if err != nil {
			log.Errorw("issue round token", "round", snap.RoundID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}

		c.Header("X-Round-ID", snap.RoundID)
		c.JSON(http.StatusCreated, gin.H{
			"round":      snap,
			"token":      token,
			"expires_at": exp.Format(time.RFC3339),
		})
	}
}

// GetRound returns the current round snapshot
func GetRound(rounds Rounds) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := rounds.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// HitRound strikes the ball of an authorised round
func HitRound(rounds Rounds) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req hitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		snap, err := rounds.Hit(c.Request.Context(), c.Param("id"), physics.NewVec2(*req.VX, *req.VY), time.Now())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// ListShots returns the recorded shots of a round, finished or not
func ListShots(rounds Rounds) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd, shots, err := rounds.Shots(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		if shots == nil {
			shots = []models.Shot{}
		}
		c.JSON(http.StatusOK, gin.H{"round": rd, "shots": shots})
	}
}
