package utils

import "github.com/gin-gonic/gin"

// envelope is the uniform response body: a success flag plus either a data
// payload or an error message, never both.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// JSONSuccess writes a successful response carrying the given payload.
func JSONSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, envelope{Success: true, Data: data})
}

// JSONError writes a failed response with a human-readable message.
func JSONError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Error: message})
}
