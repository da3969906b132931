package shipment_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipment(t *testing.T) {
	t.Run("creates an empty claim", func(t *testing.T) {
		s, err := shipment.NewShipment("BB-1001")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, s.ID())
		assert.Equal(t, "BB-1001", s.OrderID())
		assert.False(t, s.HasLabel())
		assert.Nil(t, s.TrackingPin())
		assert.Nil(t, s.LabelURL())
		assert.False(t, s.CreatedAt().IsZero())
	})

	t.Run("rejects empty order id", func(t *testing.T) {
		_, err := shipment.NewShipment("")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestShipment_Validate(t *testing.T) {
	t.Run("zero value shipment is rejected", func(t *testing.T) {
		var s shipment.Shipment

		err := s.Validate()

		require.Error(t, err)
		assert.Equal(t, shipment.ErrShipmentIsNotConstructed, err)
	})

	t.Run("nil shipment is rejected", func(t *testing.T) {
		var s *shipment.Shipment

		assert.Equal(t, shipment.ErrShipmentIsNotConstructed, s.Validate())
	})
}

func TestShipment_AttachLabel(t *testing.T) {
	t.Run("attaches label exactly once", func(t *testing.T) {
		s, err := shipment.NewShipment("BB-1001")
		require.NoError(t, err)

		err = s.AttachLabel("1Z9999", "https://carrier.example/shipment/77/label", "/labels/BB-1001.pdf", "<shipment/>")

		require.NoError(t, err)
		assert.True(t, s.HasLabel())
		require.NotNil(t, s.TrackingPin())
		assert.Equal(t, "1Z9999", *s.TrackingPin())
		require.NotNil(t, s.LabelURL())
		assert.Equal(t, "https://carrier.example/shipment/77/label", *s.LabelURL())
		require.NotNil(t, s.LabelPath())
		assert.Equal(t, "/labels/BB-1001.pdf", *s.LabelPath())
		require.NotNil(t, s.CarrierResponse())
		assert.Equal(t, "<shipment/>", *s.CarrierResponse())
	})

	t.Run("rejects a second attach", func(t *testing.T) {
		s, err := shipment.NewShipment("BB-1001")
		require.NoError(t, err)
		require.NoError(t, s.AttachLabel("1Z9999", "https://carrier.example/label", "", ""))

		err = s.AttachLabel("1Z0000", "https://carrier.example/other", "", "")

		require.Error(t, err)
		assert.Equal(t, shipment.ErrLabelAlreadyAttached, err)
		assert.Equal(t, "1Z9999", *s.TrackingPin())
	})

	t.Run("requires tracking pin and label url", func(t *testing.T) {
		s, err := shipment.NewShipment("BB-1001")
		require.NoError(t, err)

		require.Error(t, s.AttachLabel("", "https://carrier.example/label", "", ""))
		require.Error(t, s.AttachLabel("1Z9999", "", "", ""))
		assert.False(t, s.HasLabel())
	})
}

func TestRestoreShipment(t *testing.T) {
	t.Run("restores a claim with a label", func(t *testing.T) {
		pin := "1Z9999"
		url := "https://carrier.example/label"
		s, err := shipment.NewShipment("BB-1001")
		require.NoError(t, err)

		restored, err := shipment.RestoreShipment(s.ID(), "BB-1001", &pin, &url, nil, nil, s.CreatedAt())

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.Equal(t, s.ID(), restored.ID())
		assert.True(t, restored.HasLabel())
	})
}
