// Package respond writes JSON responses for the HTTP layer.
package respond

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vitormoschetta/captionai/internal/model"
)

// Pre-marshaled fallback used when a response cannot be encoded.
var fallbackErrorResponse []byte

func init() {
	var err error
	fallbackErrorResponse, err = json.Marshal(model.CaptionResponse{Error: model.MsgUnexpected})
	if err != nil {
		panic(fmt.Sprintf("failed to marshal fallback error response at startup: %v", err))
	}
}

// JSON writes response with statusCode. Encoding happens before any header is
// written so a marshal failure can still produce a clean 500.
func JSON(w http.ResponseWriter, statusCode int, response interface{}) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		slog.Error("respond.JSON: failed to marshal JSON response", "error", err)
		jsonData = fallbackErrorResponse
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(jsonData); writeErr != nil {
		slog.Error("respond.JSON: failed to write JSON response", "error", writeErr)
	}
}

// Error writes {"error": message} with statusCode.
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, model.CaptionResponse{Error: message})
}
