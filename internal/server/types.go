package server

import (
	"github.com/osa911/teamchat/internal/api/middleware"
	"github.com/osa911/teamchat/internal/repository"
	"github.com/osa911/teamchat/internal/service"
	"github.com/osa911/teamchat/internal/store"
)

// Dependencies are the external systems the server talks to
type Dependencies struct {
	Store    store.Store
	Verifier middleware.TokenVerifier
	// Pictures is nil when no storage bucket is configured
	Pictures service.PictureStore
}

// Repositories holds all repository instances
type Repositories struct {
	User           repository.UserRepository
	Team           repository.TeamRepository
	Channel        repository.ChannelRepository
	Message        repository.MessageRepository
	PrivateMessage repository.PrivateMessageRepository
}

// Services holds all service instances
type Services struct {
	User           *service.UserService
	Team           *service.TeamService
	Message        *service.MessageService
	PrivateMessage *service.PrivateMessageService
}
