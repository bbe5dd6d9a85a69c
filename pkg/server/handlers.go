package server

import (
	"Moodboard/handler"
)

type Handlers struct {
	Auth   *handler.Auth
	Image  *handler.Image
	Prompt *handler.Prompt
	Review *handler.Review
}
