package main

import (
	"log/slog"
	"os"

	"github.com/minglehq/mingle/internal/api/facade"
	"github.com/minglehq/mingle/internal/api/repository"
	"github.com/minglehq/mingle/internal/api/server"
	"github.com/minglehq/mingle/internal/api/service"
	"github.com/minglehq/mingle/internal/common"
	"github.com/minglehq/mingle/internal/mailer"
)

func main() {
	common.ConfigureSlog(os.Stderr)
	cfg := common.ParseFlags()
	// Base
	db, err := repository.OpenDB(cfg)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	bgTask := common.NewBackgroundTask()
	mailr := mailer.New(cfg)
	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	// Services
	userService := service.NewUserService(userRepo)
	tokenService := service.NewTokenService(tokenRepo)
	conversationService := service.NewConversationService(conversationRepo)
	messageService := service.NewMessageService(messageRepo)
	// Service Group
	srv := service.New(userService, tokenService, conversationService, messageService)
	// Facades
	userFacade := facade.NewUserFacade(srv, db, mailr, bgTask)
	tokenFacade := facade.NewTokenFacade(srv, db, mailr, bgTask)
	conversationFacade := facade.NewConversationFacade(srv)
	messageFacade := facade.NewMessageFacade(srv, db, bgTask)
	// Facade Group
	fac := facade.New(userFacade, tokenFacade, conversationFacade, messageFacade)
	// Server
	s := server.NewServer(cfg, bgTask, fac)
	s.Serve()
}
