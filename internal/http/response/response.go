package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns. The transport status
// is always 200; clients read the business code.
type Response struct {
	Code     int         `json:"code"`     // business status code
	Message  string      `json:"message"`  // human readable message
	Metadata interface{} `json:"metadata"` // payload
}

// PageResponse is the envelope for paginated listings.
type PageResponse struct {
	Code       int         `json:"code"`
	Message    string      `json:"message"`
	Metadata   interface{} `json:"metadata"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination carries paging counters.
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// Success writes a success envelope.
func Success(c *gin.Context, metadata interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:     CodeOK,
		Message:  "success",
		Metadata: metadata,
	})
}

// SuccessWithMsg writes a success envelope with a custom message.
func SuccessWithMsg(c *gin.Context, msg string, metadata interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:     CodeOK,
		Message:  msg,
		Metadata: metadata,
	})
}

// SuccessWithPage writes a paginated success envelope.
func SuccessWithPage(c *gin.Context, metadata interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Code:       CodeOK,
		Message:    "success",
		Metadata:   metadata,
		Pagination: pagination,
	})
}

// Error writes an error envelope.
func Error(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, Response{
		Code:     code,
		Message:  msg,
		Metadata: attachRequestID(c, nil),
	})
}

// ErrorWithData writes an error envelope carrying extra payload.
func ErrorWithData(c *gin.Context, code int, msg string, metadata interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:     code,
		Message:  msg,
		Metadata: attachRequestID(c, metadata),
	})
}

// NotFound writes a not-found error envelope.
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized writes an unauthorized error envelope.
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden writes a forbidden error envelope.
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// BadRequest writes a bad-request error envelope.
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func attachRequestID(c *gin.Context, metadata interface{}) interface{} {
	requestID := ""
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok {
				requestID = id
			}
		}
	}
	if requestID == "" {
		return metadata
	}
	if metadata == nil {
		return gin.H{"request_id": requestID}
	}
	switch v := metadata.(type) {
	case gin.H:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	case map[string]interface{}:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	default:
		return gin.H{
			"request_id": requestID,
			"data":       metadata,
		}
	}
}
