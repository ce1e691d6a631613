package service

import (
	"github.com/rs/zerolog"
)

type Services struct {
	Preprocess *PreprocessService
}

func NewServices(logger *zerolog.Logger) *Services {
	return &Services{
		Preprocess: NewPreprocessService(logger),
	}
}
