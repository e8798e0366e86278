package lib_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdklib "github.com/slok/tokactl/pkg/lib"
	intlib "github.com/slok/tokactl/test/integration/lib"
)

func TestSDKReservationLifecycle(t *testing.T) {
	config := intlib.NewConfig(t)
	client := intlib.NewTestClient(t, config)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	intlib.CleanupRelease(t, client)

	res, err := client.Reserve(ctx, &sdklib.ReserveOpts{ForceTakeOwnership: true, Timeout: 5 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, config.Sandbox, res.Sandbox)
	assert.Empty(t, res.Child)

	status, err := client.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, sdklib.ReservationStatusReserved, status)

	require.NoError(t, client.WaitForDevicesReserved(ctx))

	devices, err := client.Devices()
	require.NoError(t, err)
	assert.Len(t, devices, res.Devices)
	for _, d := range devices {
		exists, err := client.DeviceExists(ctx, d.Name)
		require.NoError(t, err)
		assert.True(t, exists, d.Name)
	}

	name, err := client.Release(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.Sandbox, name)

	status, err = client.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, sdklib.ReservationStatusAvailable, status)

	_, err = client.Devices()
	assert.ErrorIs(t, err, sdklib.ErrNotReserved)
}

func TestSDKMissingSandbox(t *testing.T) {
	config := intlib.NewConfig(t)
	client := intlib.NewTestClient(t, config)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	require.NoError(t, client.Select(ctx, "tokactl-integration-missing-sandbox"))
	_, err := client.Status(ctx)
	assert.ErrorIs(t, err, sdklib.ErrNotFound)
}
