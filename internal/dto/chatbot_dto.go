package dto

type ChatbotRequest struct {
	Query string   `json:"query" validate:"required"`
	Files []string `json:"files" validate:"max=50,dive,required"`
}

type ChatbotResponse struct {
	Response string `json:"response"`
}
