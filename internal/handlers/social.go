package handlers

import (
	"context"
	"database/sql"
	"errors"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"streamify/internal/metrics"
	"streamify/internal/repositories"
	"streamify/internal/services"
	"streamify/internal/telemetry"
)

type SocialHandler struct {
	social *services.SocialService
	audit  *telemetry.AuditEmitter
}

func NewSocialHandler(social *services.SocialService, audit *telemetry.AuditEmitter) *SocialHandler {
	return &SocialHandler{social: social, audit: audit}
}

func (h *SocialHandler) GetRecommendedUsers(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	users, err := h.social.GetRecommendedUsers(c.Request.Context(), *userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(nethttp.StatusOK, users)
}

func (h *SocialHandler) GetMyFriends(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	friends, err := h.social.GetMyFriends(c.Request.Context(), *userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(nethttp.StatusOK, friends)
}

func (h *SocialHandler) SendFriendRequest(c *gin.Context) {
	requestID := requestIDFromHeader(c)
	userID := userIDFromContext(c)
	if userID == nil {
		metrics.IncFriendRequest(metrics.StatusFailed)
		c.JSON(nethttp.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	recipientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		metrics.IncFriendRequest(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	ctx := c.Request.Context()
	req, err := h.social.SendFriendRequest(ctx, *userID, recipientID)
	if err != nil {
		metrics.IncFriendRequest(metrics.StatusFailed)
		switch {
		case errors.Is(err, services.ErrSelfRequest):
			h.emitAudit(ctx, "ERROR", "friend request to self rejected", requestID, userID)
			c.JSON(nethttp.StatusBadRequest, gin.H{"message": "You cannot send a friend request to yourself."})
		case errors.Is(err, sql.ErrNoRows):
			h.emitAudit(ctx, "ERROR", "friend request recipient not found", requestID, userID)
			c.JSON(nethttp.StatusNotFound, gin.H{"message": "Recipient not found."})
		case errors.Is(err, services.ErrAlreadyFriends):
			h.emitAudit(ctx, "ERROR", "friend request to existing friend rejected", requestID, userID)
			c.JSON(nethttp.StatusBadRequest, gin.H{"message": "You are already friends with this user."})
		case errors.Is(err, services.ErrRequestExists):
			h.emitAudit(ctx, "ERROR", "duplicate friend request rejected", requestID, userID)
			c.JSON(nethttp.StatusBadRequest, gin.H{"message": "Friend request already exists."})
		default:
			h.emitAudit(ctx, "ERROR", "internal error", requestID, userID)
			c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	h.emitAudit(ctx, "INFO", "Friend request sent to '"+strconv.FormatInt(recipientID, 10)+"'", requestID, userID)
	metrics.IncFriendRequest(metrics.StatusSuccess)
	c.JSON(nethttp.StatusCreated, req)
}

func (h *SocialHandler) AcceptFriendRequest(c *gin.Context) {
	requestID := requestIDFromHeader(c)
	userID := userIDFromContext(c)
	if userID == nil {
		metrics.IncFriendAccept(metrics.StatusFailed)
		c.JSON(nethttp.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	reqID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		metrics.IncFriendAccept(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"message": "Invalid request id"})
		return
	}

	ctx := c.Request.Context()
	if err := h.social.AcceptFriendRequest(ctx, *userID, reqID); err != nil {
		metrics.IncFriendAccept(metrics.StatusFailed)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.emitAudit(ctx, "ERROR", "friend request not found", requestID, userID)
			c.JSON(nethttp.StatusNotFound, gin.H{"message": "Friend request not found."})
		case errors.Is(err, repositories.ErrRequestForbidden):
			h.emitAudit(ctx, "ERROR", "not authorized to accept this request", requestID, userID)
			c.JSON(nethttp.StatusForbidden, gin.H{"message": "You are not authorized to accept this friend request."})
		default:
			h.emitAudit(ctx, "ERROR", "internal error", requestID, userID)
			c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	h.emitAudit(ctx, "INFO", "Friend request "+c.Param("id")+" accepted", requestID, userID)
	metrics.IncFriendAccept(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, gin.H{"message": "Friend request accepted successfully."})
}

func (h *SocialHandler) GetFriendRequests(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	reqs, err := h.social.GetFriendRequests(c.Request.Context(), *userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(nethttp.StatusOK, reqs)
}

func (h *SocialHandler) GetOutgoingFriendRequests(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	reqs, err := h.social.GetOutgoingFriendRequests(c.Request.Context(), *userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(nethttp.StatusOK, reqs)
}

func (h *SocialHandler) emitAudit(ctx context.Context, level, text, requestID string, userID *int64) {
	if h.audit == nil {
		return
	}
	h.audit.EmitAudit(ctx, level, text, requestID, userID)
}
