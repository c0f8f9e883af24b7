package command

import (
	"bytes"
	"testing"

	"shiftboard/config"
	"shiftboard/internal/auth"
	"shiftboard/internal/service"
	"shiftboard/internal/service/servicetest"
	"shiftboard/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAdminCommand(t *testing.T) (*cobra.Command, *servicetest.UserStore, *bytes.Buffer) {
	t.Helper()
	conf := &config.Configuration{Auth: config.Auth{JWTSecret: "command-secret", BcryptCost: 4}}
	conf.ApplyDefaults()
	tokens, err := auth.NewTokenManager(conf)
	require.NoError(t, err)
	users := &servicetest.UserStore{}
	trace := &telemetry.Trace{}
	handler := NewAdminHandler(zap.NewNop(), service.NewAuthService(trace, conf, users, tokens, &servicetest.Revoker{}))

	out := &bytes.Buffer{}
	cmd := &cobra.Command{Use: "create-admin", RunE: handler.CreateAdmin, SilenceUsage: true, SilenceErrors: true}
	cmd.Flags().String("email", "", "")
	cmd.Flags().String("password", "", "")
	cmd.Flags().String("name", "", "")
	cmd.SetOut(out)
	return cmd, users, out
}

func TestCreateAdmin(t *testing.T) {
	cmd, users, out := newAdminCommand(t)
	cmd.SetArgs([]string{"--email", "Boss@Example.com", "--password", "secret1", "--name", "Boss"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, users.Len())
	assert.Contains(t, out.String(), "boss@example.com")

	cmd, _, _ = newAdminCommand(t)
	cmd.SetArgs([]string{"--email", "boss@example.com"})
	assert.Error(t, cmd.Execute())
}

func TestCreateAdminDuplicate(t *testing.T) {
	cmd, users, _ := newAdminCommand(t)
	cmd.SetArgs([]string{"--email", "boss@example.com", "--password", "secret1", "--name", "Boss"})
	require.NoError(t, cmd.Execute())

	cmd.SetArgs([]string{"--email", "boss@example.com", "--password", "secret1", "--name", "Boss"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User already exists")
	assert.Equal(t, 1, users.Len())
}
