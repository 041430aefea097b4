package Iservices

import "mindhaven/internal/domain/entities"

// ISentimentService is the opaque sentiment-scoring collaborator.
type ISentimentService interface {
	AnalyzeMood(description string) (float64, entities.SentimentAnalysis)
}
