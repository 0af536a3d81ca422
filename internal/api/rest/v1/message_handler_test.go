//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eskiturk2021/api-gateway/internal/domain/messages"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMessageHandler_Listings(t *testing.T) {
	message := &messages.Message{ID: 1, Phone: "+15550001", MessageType: "user", MessageText: "Hello", ThreadID: "thread-1"}

	tests := []struct {
		name   string
		target string
		params gin.Params
		setup  func(service *MockMessageService)
		call   func(handler MessageHandler, c *gin.Context)
	}{
		{
			name:   "recent",
			target: "/api/messages/recent",
			setup: func(service *MockMessageService) {
				service.On("Recent", mock.Anything, 20).Return([]*messages.Message{message}, nil)
			},
			call: func(handler MessageHandler, c *gin.Context) { handler.Recent(c) },
		},
		{
			name:   "conversations",
			target: "/api/messages/conversations?limit=5",
			setup: func(service *MockMessageService) {
				service.On("Conversations", mock.Anything, 5).Return([]*messages.Message{message}, nil)
			},
			call: func(handler MessageHandler, c *gin.Context) { handler.Conversations(c) },
		},
		{
			name:   "by phone",
			target: "/api/messages/phone/+15550001?offset=10",
			params: gin.Params{{Key: "phone", Value: "+15550001"}},
			setup: func(service *MockMessageService) {
				service.On("ByPhone", mock.Anything, "+15550001", 50, 10).Return([]*messages.Message{message}, nil)
			},
			call: func(handler MessageHandler, c *gin.Context) { handler.ByPhone(c) },
		},
		{
			name:   "by thread",
			target: "/api/messages/thread/thread-1",
			params: gin.Params{{Key: "thread_id", Value: "thread-1"}},
			setup: func(service *MockMessageService) {
				service.On("ByThread", mock.Anything, "thread-1", 50, 0).Return([]*messages.Message{message}, nil)
			},
			call: func(handler MessageHandler, c *gin.Context) { handler.ByThread(c) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messageService := new(MockMessageService)
			tt.setup(messageService)

			handler := NewMessageHandler(messageService)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, tt.target, nil)
			c.Params = tt.params

			tt.call(handler, c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"message_text":"Hello"`)
			messageService.AssertExpectations(t)
		})
	}
}

func TestMessageHandler_Create(t *testing.T) {
	messageService := new(MockMessageService)
	messageService.
		On("Create", mock.Anything, mock.MatchedBy(func(m *messages.Message) bool {
			return m.Phone == "+15550001" && m.MessageType == "assistant" && m.ThreadID == "thread-1"
		})).
		Run(func(args mock.Arguments) { args.Get(1).(*messages.Message).ID = 9 }).
		Return(nil)

	handler := NewMessageHandler(messageService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/messages", `{"phone": "+15550001", "message_type": "assistant", "message_text": "Hi", "thread_id": "thread-1"}`)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":9`)
	messageService.AssertExpectations(t)
}

func TestMessageHandler_Create_MissingText(t *testing.T) {
	handler := NewMessageHandler(new(MockMessageService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/messages", `{"phone": "+15550001", "message_type": "user"}`)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
