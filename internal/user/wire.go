//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/repository"
	"github.com/tair/user-service/internal/user/usecase/command"
	"github.com/tair/user-service/internal/user/usecase/query"
)

// ProvideUserRepository provides the default user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// Command handler providers
func ProvideCreateUserHandler(repo domain.UserRepository) *command.CreateUserHandler {
	return command.NewCreateUserHandler(repo)
}

func ProvideUpdateUserHandler(repo domain.UserRepository) *command.UpdateUserHandler {
	return command.NewUpdateUserHandler(repo)
}

func ProvideDeleteUserHandler(repo domain.UserRepository) *command.DeleteUserHandler {
	return command.NewDeleteUserHandler(repo)
}

// Query handler providers
func ProvideGetUserHandler(repo domain.UserRepository) *query.GetUserHandler {
	return query.NewGetUserHandler(repo)
}

func ProvideListUsersHandler(repo domain.UserRepository) *query.ListUsersHandler {
	return query.NewListUsersHandler(repo)
}

// CommandHandlers holds all command handlers
type CommandHandlers struct {
	CreateHandler *command.CreateUserHandler
	UpdateHandler *command.UpdateUserHandler
	DeleteHandler *command.DeleteUserHandler
}

// QueryHandlers holds all query handlers
type QueryHandlers struct {
	GetHandler  *query.GetUserHandler
	ListHandler *query.ListUsersHandler
}

// ProvideCommandHandlers provides all command handlers
func ProvideCommandHandlers(
	createHandler *command.CreateUserHandler,
	updateHandler *command.UpdateUserHandler,
	deleteHandler *command.DeleteUserHandler,
) *CommandHandlers {
	return &CommandHandlers{
		CreateHandler: createHandler,
		UpdateHandler: updateHandler,
		DeleteHandler: deleteHandler,
	}
}

// ProvideQueryHandlers provides all query handlers
func ProvideQueryHandlers(
	getHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
) *QueryHandlers {
	return &QueryHandlers{
		GetHandler:  getHandler,
		ListHandler: listHandler,
	}
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateUserHandler,
	ProvideUpdateUserHandler,
	ProvideDeleteUserHandler,
	ProvideCommandHandlers,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetUserHandler,
	ProvideListUsersHandler,
	ProvideQueryHandlers,
)

var AllSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)
