package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/walletbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegisterCommandValidation(t *testing.T) {
	reg := NewRegistry()

	reg.RegisterCommand("/wallet", commands.Command{Handler: noop, Description: "Show wallet"})
	reg.RegisterCommand("wallet", commands.Command{Handler: noop, Description: "no slash"})
	reg.RegisterCommand("/wallet", commands.Command{Handler: noop, Description: "duplicate"})
	reg.RegisterCommand("/empty", commands.Command{Handler: nil, Description: "nil handler"})

	assert.Len(t, reg.Commands(), 1)
	_, cmd, ok := reg.LookupCommand("/wallet")
	require.True(t, ok)
	assert.Equal(t, "Show wallet", cmd.Description)
}

func TestLookupCommandAliases(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/rate", commands.Command{
		Handler:     noop,
		Description: "ETH rate",
		Aliases:     []string{"price"},
	})

	key, _, ok := reg.LookupCommand("price")
	require.True(t, ok)
	assert.Equal(t, "/rate", key)

	_, _, ok = reg.LookupCommand("/unknown")
	assert.False(t, ok)
}

func TestListCommandsHidesHidden(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start"})
	reg.RegisterCommand("/debug", commands.Command{Handler: noop, Description: "Debug", Hidden: true})

	visible := reg.ListCommands(true)
	require.Len(t, visible, 1)
	assert.Equal(t, "/start", visible[0].Text)

	assert.Len(t, reg.ListCommands(false), 2)
}

func TestRegisterCallback(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.RegisterCallback("select-locale", noop))
	require.Error(t, reg.RegisterCallback("select-locale", noop))
	require.Error(t, reg.RegisterCallback("", noop))

	h, ok := reg.GetCallback("select-locale")
	assert.True(t, ok)
	assert.NotNil(t, h)
	assert.Equal(t, []string{"select-locale"}, reg.ListCallbacks())
}
