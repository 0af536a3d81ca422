package v1

import (
	"fmt"
	"net/http"

	"github.com/eskiturk2021/api-gateway/internal/domain/messages"

	"github.com/gin-gonic/gin"
)

// MessageHandler defines the interface for the conversation history endpoints
type MessageHandler interface {
	Recent(ctx *gin.Context)
	Conversations(ctx *gin.Context)
	ByPhone(ctx *gin.Context)
	ByThread(ctx *gin.Context)
	Create(ctx *gin.Context)
}

type messageHandler struct {
	messageService messages.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService messages.MessageService) MessageHandler {
	return &messageHandler{messageService: messageService}
}

// Recent handles GET /messages/recent
func (handler *messageHandler) Recent(ctx *gin.Context) {
	limit, err := boundedIntQuery(ctx, "limit", 20, 1, 100)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	list, err := handler.messageService.Recent(ctx.Request.Context(), limit)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMessageResponses(list))
}

// Conversations handles GET /messages/conversations
func (handler *messageHandler) Conversations(ctx *gin.Context) {
	limit, err := boundedIntQuery(ctx, "limit", 20, 1, 100)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	list, err := handler.messageService.Conversations(ctx.Request.Context(), limit)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMessageResponses(list))
}

// ByPhone handles GET /messages/phone/:phone
func (handler *messageHandler) ByPhone(ctx *gin.Context) {
	limit, offset, err := pageQuery(ctx, 50, 200)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	list, err := handler.messageService.ByPhone(ctx.Request.Context(), ctx.Param("phone"), limit, offset)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMessageResponses(list))
}

// ByThread handles GET /messages/thread/:thread_id, oldest first
func (handler *messageHandler) ByThread(ctx *gin.Context) {
	limit, offset, err := pageQuery(ctx, 50, 200)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	list, err := handler.messageService.ByThread(ctx.Request.Context(), ctx.Param("thread_id"), limit, offset)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMessageResponses(list))
}

// Create handles POST /messages
func (handler *messageHandler) Create(ctx *gin.Context) {
	var request CreateMessageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid message data: %v", err))
		return
	}

	message := &messages.Message{
		PhoneID:     request.PhoneID,
		Phone:       request.Phone,
		MessageType: request.MessageType,
		MessageText: request.MessageText,
		ThreadID:    request.ThreadID,
	}
	if err := handler.messageService.Create(ctx.Request.Context(), message); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toMessageResponses([]*messages.Message{message})[0])
}
