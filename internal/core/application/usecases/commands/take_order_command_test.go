package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTakeOrderCommand(t *testing.T) {
	t.Run("valid_claim", func(t *testing.T) {
		// When
		cmd, err := commands.NewTakeOrderCommand("42", "TAKEN")

		// Then
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, int64(42), cmd.OrderID())
		assert.Equal(t, order.Taken, cmd.TargetStatus())
	})

	t.Run("invalid_order_id", func(t *testing.T) {
		for _, rawID := range []string{"", "abc", "12.5", "1e3", "42abc"} {
			t.Run(rawID, func(t *testing.T) {
				_, err := commands.NewTakeOrderCommand(rawID, "TAKEN")
				require.ErrorIs(t, err, commands.ErrInvalidOrderID)
			})
		}
	})

	t.Run("invalid_status", func(t *testing.T) {
		// Only the forward claim is exposed: even the otherwise valid
		// "UNASSIGNED" value must be rejected.
		for _, rawStatus := range []string{"", "taken", "UNASSIGNED", "DONE", "Taken"} {
			t.Run(rawStatus, func(t *testing.T) {
				_, err := commands.NewTakeOrderCommand("42", rawStatus)
				require.ErrorIs(t, err, commands.ErrInvalidOrderStatus)
			})
		}
	})

	t.Run("id_is_validated_before_status", func(t *testing.T) {
		_, err := commands.NewTakeOrderCommand("abc", "BOGUS")
		require.ErrorIs(t, err, commands.ErrInvalidOrderID)
	})

	t.Run("not_constructed_command_fails_validation", func(t *testing.T) {
		var cmd commands.TakeOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrTakeOrderCommandIsNotConstructed)
	})
}
