package handler

import (
	"github.com/langsb16-collab/chinafood0205/internal/usecase"
)

var (
	chatHandler      *ChatHandler
	listingHandler   *ListingHandler
	assistantHandler *AssistantHandler
	contentHandler   *ContentHandler
	profileHandler   *ProfileHandler
	healthHandler    *HealthHandler
)

func Setup(
	chatUseCase *usecase.ChatUseCase,
	listingUseCase *usecase.ListingUseCase,
	assistantUseCase *usecase.AssistantUseCase,
	contentUseCase *usecase.ContentUseCase,
	profileUseCase *usecase.ProfileUseCase,
) {
	chatHandler = NewChatHandler(chatUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	assistantHandler = NewAssistantHandler(assistantUseCase)
	contentHandler = NewContentHandler(contentUseCase)
	profileHandler = NewProfileHandler(profileUseCase)
}

func SetupHealthHandler(checks map[string]HealthCheck) {
	healthHandler = NewHealthHandler(checks)
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetAssistantHandler() *AssistantHandler {
	return assistantHandler
}

func GetContentHandler() *ContentHandler {
	return contentHandler
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
