package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type AdminHandler struct {
	logger      *zap.Logger
	authService *service.AuthService
}

func NewAdminHandler(logger *zap.Logger, authService *service.AuthService) *AdminHandler {
	return &AdminHandler{
		logger:      logger,
		authService: authService,
	}
}

// CreateAdmin 以 flags 建立管理員帳號
func (handler *AdminHandler) CreateAdmin(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")
	if email == "" || len(password) < 6 || len(name) < 2 {
		return errors.New("--email, --password (min 6) and --name (min 2) are required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	user, err := handler.authService.CreateAdmin(ctx, email, password, name)
	if err != nil {
		appErr := cErr.From(err)
		return fmt.Errorf("%s: %s", appErr.Error(), appErr.ErrorDesc())
	}
	handler.logger.Info("admin created", zap.String("id", user.ID), zap.String("email", user.Email))
	cmd.Printf("admin %s created (%s)\n", user.Email, user.ID)
	return nil
}
