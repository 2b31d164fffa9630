package dto

type PredictionRequest struct {
	Category  string `json:"category" validate:"required"`
	DayOfWeek string `json:"dayOfWeek" validate:"required"`
}

type LocationPredictionResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

type TemperaturePredictionResponse struct {
	Prediction float64 `json:"prediction"`
	Unit       string  `json:"unit"`
}
