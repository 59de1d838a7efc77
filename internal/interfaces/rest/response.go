package rest

import (
	"net/http"

	"github.com/DanielPopoola/shelter-api/internal/domain"
)

type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type PageResponse struct {
	Success bool            `json:"success"`
	Data    any             `json:"data"`
	Meta    domain.PageMeta `json:"meta"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, DataResponse{Success: true, Data: data})
}

func WritePage[T any](w http.ResponseWriter, page domain.PageResult[T]) {
	WriteJSON(w, http.StatusOK, PageResponse{Success: true, Data: page.Items, Meta: page.Meta})
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Success: true, Message: message})
}
